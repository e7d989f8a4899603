package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/Tippspiel_Go/internal/bettable"
	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/engine"
	"github.com/osse101/Tippspiel_Go/internal/logger"
)

// CreateBettableRequest represents the request to create a bettable.
// Match and Extra select the variant; exactly one must be present.
type CreateBettableRequest struct {
	Kind     string    `json:"kind" validate:"required,oneof=match extra"`
	Name     string    `json:"name" validate:"required,max=200"`
	Deadline time.Time `json:"deadline" validate:"required"`

	Match *struct {
		HomeTeam string    `json:"home_team" validate:"required,max=100"`
		AwayTeam string    `json:"away_team" validate:"required,max=100"`
		Kickoff  time.Time `json:"kickoff" validate:"required"`
	} `json:"match,omitempty"`

	Extra *struct {
		Points  int      `json:"points" validate:"min=0"`
		Choices []string `json:"choices" validate:"required,min=1,dive,required"`
	} `json:"extra,omitempty"`
}

// HandleCreateBettable handles POST requests to create a bettable
func HandleCreateBettable(svc bettable.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateBettableRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create bettable"); err != nil {
			return
		}

		b := &domain.Bettable{
			Kind:     domain.BettableKind(req.Kind),
			Name:     req.Name,
			Deadline: req.Deadline,
		}
		if req.Match != nil {
			b.Match = &domain.MatchDetails{
				HomeTeam: req.Match.HomeTeam,
				AwayTeam: req.Match.AwayTeam,
				Kickoff:  req.Match.Kickoff,
				Goals:    domain.UnsetScore(),
			}
		}
		if req.Extra != nil {
			b.Extra = &domain.ExtraDetails{
				Points:  req.Extra.Points,
				Choices: req.Extra.Choices,
			}
		}

		if err := svc.Create(r.Context(), b); err != nil {
			log.Error("Failed to create bettable", "error", err, "name", req.Name)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusCreated, b)
	}
}

// HandleListBettables handles GET requests for all bettables
func HandleListBettables(svc bettable.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bettables, err := svc.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list bettables", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, bettables)
	}
}

// HandleGetBettable handles GET requests for one bettable
func HandleGetBettable(svc bettable.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		b, err := svc.Get(r.Context(), id)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, b)
	}
}

// HandleDeleteBettable handles DELETE requests for one bettable
func HandleDeleteBettable(svc bettable.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			log.Error("Failed to delete bettable", "error", err, "bettable_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Bettable deleted"})
	}
}

// HandleGetBettableBets handles GET requests for all bets on one bettable
func HandleGetBettableBets(svc bettable.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		bets, err := svc.Bets(r.Context(), id)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, bets)
	}
}

// SetMatchResultRequest carries a match's official score. Omitting both
// goal counts (or sending null) clears the result.
type SetMatchResultRequest struct {
	HomeGoals *int `json:"home_goals" validate:"omitempty,min=0"`
	AwayGoals *int `json:"away_goals" validate:"omitempty,min=0"`
}

// HandleSetMatchResult handles PUT requests that set or clear a match's
// official score. The cascade into bet scores and statistics runs before
// the response is written.
func HandleSetMatchResult(svc engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		var req SetMatchResultRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set match result"); err != nil {
			return
		}

		goals := domain.UnsetScore()
		if req.HomeGoals != nil {
			goals.Home = *req.HomeGoals
		}
		if req.AwayGoals != nil {
			goals.Away = *req.AwayGoals
		}

		if err := svc.SetMatchResult(r.Context(), id, goals); err != nil {
			log.Error("Failed to set match result", "error", err, "bettable_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Match result updated", "bettable_id", id, "result", goals.String())
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Result updated"})
	}
}

// SetExtraResultRequest carries an extra's official outcome. A blank
// outcome clears the result.
type SetExtraResultRequest struct {
	Outcome string `json:"outcome" validate:"max=200"`
}

// HandleSetExtraResult handles PUT requests that set or clear an extra's
// official outcome
func HandleSetExtraResult(svc engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		var req SetExtraResultRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set extra result"); err != nil {
			return
		}

		if err := svc.SetExtraResult(r.Context(), id, req.Outcome); err != nil {
			log.Error("Failed to set extra result", "error", err, "bettable_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Extra result updated", "bettable_id", id, "outcome", req.Outcome)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Result updated"})
	}
}
