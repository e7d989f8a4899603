package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/statistics"
)

// HandleGetUserStatistics handles GET requests for one user's statistics
func HandleGetUserStatistics(svc statistics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		stats, err := svc.GetUserStatistics(r.Context(), id)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

// HandleGetLeaderboard handles GET requests for the points leaderboard.
// An optional limit query parameter caps the number of entries.
func HandleGetLeaderboard(svc statistics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := statistics.DefaultLeaderboardLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondError(w, http.StatusBadRequest, "Invalid limit")
				return
			}
			limit = parsed
		}

		board, err := svc.GetLeaderboard(r.Context(), limit)
		if err != nil {
			log.Error("Failed to get leaderboard", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, board)
	}
}

// HandleRecomputeStatistics handles POST requests that force a full
// recompute of one user's statistics from their stored bets
func HandleRecomputeStatistics(svc statistics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		stats, err := svc.Recompute(r.Context(), id)
		if err != nil {
			log.Error("Failed to recompute statistics", "error", err, "user_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Statistics recomputed", "user_id", id)
		respondJSON(w, http.StatusOK, stats)
	}
}
