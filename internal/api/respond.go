package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
)

type errorBody struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("error encoding response")
	}
}

// writeError is the single translation point from service errors to HTTP.
// Typed HTTPErrors keep their status and code; anything else is logged and
// becomes an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *httperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Status, errorBody{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
			Details:   httpErr.Details,
		})
		return
	}
	log.Error().Err(err).Msg("unhandled error")
	writeJSON(w, http.StatusInternalServerError, errorBody{
		ErrorCode: httperrors.CodeInternal,
		Message:   "Internal server error",
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, httperrors.BadRequest(message))
}
