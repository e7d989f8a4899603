package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries per-field validation messages
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgInvalidID          = "Invalid ID"

	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgBettableNotFoundError  = "Bettable not found"
	ErrMsgBetNotFoundError       = "Bet not found"
	ErrMsgDuplicateBetError      = "You already have a bet on this"
	ErrMsgDuplicateUsernameError = "Username is already taken"
	ErrMsgDeadlinePassedError    = "The betting deadline has passed"
	ErrMsgInvalidScoreError      = "Both goal counts must be set, or both left open"
	ErrMsgInvalidKindError       = "Operation does not match the bettable's kind"
	ErrMsgInvalidChoiceError     = "Answer is not one of the offered choices"
)

// mapServiceErrorToUserMessage maps domain errors to user-facing HTTP
// status codes and messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrBettableNotFound):
		return http.StatusNotFound, ErrMsgBettableNotFoundError
	case errors.Is(err, domain.ErrBetNotFound):
		return http.StatusNotFound, ErrMsgBetNotFoundError
	case errors.Is(err, domain.ErrDuplicateBet):
		return http.StatusConflict, ErrMsgDuplicateBetError
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict, ErrMsgDuplicateUsernameError
	case errors.Is(err, domain.ErrDeadlinePassed):
		return http.StatusForbidden, ErrMsgDeadlinePassedError
	case errors.Is(err, domain.ErrInvalidScore):
		return http.StatusBadRequest, ErrMsgInvalidScoreError
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest, ErrMsgInvalidKindError
	case errors.Is(err, domain.ErrInvalidChoice):
		return http.StatusBadRequest, ErrMsgInvalidChoiceError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	if unwrapped := errors.Unwrap(err); unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
