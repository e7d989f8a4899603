package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/schedule"
)

// HandleImportSchedule handles POST requests that upload a tournament
// schedule document. Every fixture and extra question in the document
// becomes a bettable.
func HandleImportSchedule(svc schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		result, err := svc.Import(r.Context(), body)
		if err != nil {
			if errors.Is(err, schedule.ErrInvalidSchedule) {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("Failed to import schedule", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusCreated, result)
	}
}
