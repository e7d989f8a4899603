package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/user"
)

// RegisterUserRequest represents the request to register a user
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=50,excludesall=\x00\n\r\t"`
}

// HandleRegisterUser handles POST requests to register a new user
func HandleRegisterUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		u, err := svc.Register(r.Context(), req.Username)
		if err != nil {
			log.Error("Failed to register user", "error", err, "username", req.Username)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusCreated, u)
	}
}

// HandleGetUser handles GET requests for one user
func HandleGetUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		u, err := svc.Get(r.Context(), id)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, u)
	}
}

// HandleListUsers handles GET requests for all users
func HandleListUsers(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list users", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, users)
	}
}

// HandleGetUserBets handles GET requests for all bets of one user
func HandleGetUserBets(svc user.Service) http.HandlerFunc {
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
