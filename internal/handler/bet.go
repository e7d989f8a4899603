package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/bettable"
	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/engine"
	"github.com/osse101/Tippspiel_Go/internal/logger"
)

// BetReader looks up existing bets for deadline checks
type BetReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
}

// PlaceBetRequest represents the request to place a bet. Goal counts are
// for match bettables, the answer for extras.
type PlaceBetRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	BettableID string `json:"bettable_id" validate:"required,uuid"`

	HomeGoals *int   `json:"home_goals" validate:"omitempty,min=0"`
	AwayGoals *int   `json:"away_goals" validate:"omitempty,min=0"`
	Answer    string `json:"answer" validate:"max=200"`
}

// UpdateBetRequest represents the request to change a bet's prediction
type UpdateBetRequest struct {
	HomeGoals *int   `json:"home_goals" validate:"omitempty,min=0"`
	AwayGoals *int   `json:"away_goals" validate:"omitempty,min=0"`
	Answer    string `json:"answer" validate:"max=200"`
}

// HandlePlaceBet handles POST requests to place a bet. The deadline is
// enforced here; once the engine is called the bet is placed and scored
// in one cascade.
func HandlePlaceBet(eng engine.Service, bettables bettable.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PlaceBetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Place bet"); err != nil {
			return
		}
		userID := uuid.MustParse(req.UserID)
		bettableID := uuid.MustParse(req.BettableID)

		target, ok := loadOpenBettable(w, r, bettables, bettableID)
		if !ok {
			return
		}

		goals, answer, err := buildPrediction(target, req.HomeGoals, req.AwayGoals, req.Answer)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		bet := &domain.Bet{
			UserID:     userID,
			BettableID: bettableID,
			Goals:      goals,
			Answer:     answer,
		}
		if err := eng.PlaceBet(r.Context(), bet); err != nil {
			log.Error("Failed to place bet", "error", err, "user_id", userID, "bettable_id", bettableID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Bet placed", "bet_id", bet.ID, "user_id", userID, "bettable_id", bettableID)
		respondJSON(w, http.StatusCreated, bet)
	}
}

// HandleUpdateBet handles PUT requests to change a bet's prediction
// before the deadline
func HandleUpdateBet(eng engine.Service, bettables bettable.Service, bets BetReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		betID, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		var req UpdateBetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update bet"); err != nil {
			return
		}

		existing, err := bets.GetByID(r.Context(), betID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		target, ok := loadOpenBettable(w, r, bettables, existing.BettableID)
		if !ok {
			return
		}

		goals, answer, err := buildPrediction(target, req.HomeGoals, req.AwayGoals, req.Answer)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		existing.Goals = goals
		existing.Answer = answer
		if err := eng.UpdateBet(r.Context(), existing); err != nil {
			log.Error("Failed to update bet", "error", err, "bet_id", betID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Bet updated", "bet_id", betID)
		respondJSON(w, http.StatusOK, existing)
	}
}

// HandleDeleteBet handles DELETE requests to withdraw a bet before the
// deadline
func HandleDeleteBet(eng engine.Service, bettables bettable.Service, bets BetReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		betID, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		existing, err := bets.GetByID(r.Context(), betID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		if _, ok := loadOpenBettable(w, r, bettables, existing.BettableID); !ok {
			return
		}

		if err := eng.RemoveBet(r.Context(), betID); err != nil {
			log.Error("Failed to delete bet", "error", err, "bet_id", betID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Bet deleted", "bet_id", betID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Bet deleted"})
	}
}

// loadOpenBettable fetches the bettable and rejects the request when the
// deadline has passed. On failure the response is already written.
func loadOpenBettable(w http.ResponseWriter, r *http.Request, bettables bettable.Service, id uuid.UUID) (*domain.Bettable, bool) {
	target, err := bettables.Get(r.Context(), id)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return nil, false
	}
	if time.Now().After(target.Deadline) {
		respondError(w, http.StatusForbidden, ErrMsgDeadlinePassedError)
		return nil, false
	}
	return target, true
}

// buildPrediction validates the prediction fields against the bettable's
// kind and returns the normalized goal pair and answer
func buildPrediction(target *domain.Bettable, home, away *int, answer string) (domain.Score, string, error) {
	switch target.Kind {
	case domain.KindMatch:
		if home == nil || away == nil || answer != "" {
			return domain.Score{}, "", domain.ErrInvalidScore
		}
		return domain.Score{Home: *home, Away: *away}, "", nil
	case domain.KindExtra:
		if home != nil || away != nil {
			return domain.Score{}, "", domain.ErrInvalidKind
		}
		for _, choice := range target.Extra.Choices {
			if choice == answer {
				return domain.UnsetScore(), answer, nil
			}
		}
		return domain.Score{}, "", domain.ErrInvalidChoice
	}
	return domain.Score{}, "", domain.ErrInvalidKind
}
