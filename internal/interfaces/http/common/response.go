package common

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/reviewly/api/internal/apierror"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger zerolog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("JSON encode failed")
	}
}

// WriteMessage writes the {message} envelope.
func WriteMessage(logger zerolog.Logger, w http.ResponseWriter, status int, msg string) {
	WriteJSON(logger, w, status, apierror.New(msg))
}
