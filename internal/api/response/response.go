// Package response provides utilities for sending consistent HTTP responses.
// Every error body has the shape {"error": message, "details": ...}.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/validation"
)

// ErrorResponse represents a structured error response returned by the API.
// Details is either a string or, for validation failures, a field to message map.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// If data is nil only the status code is sent. The body is encoded before the
// status is written; data that cannot be encoded is answered with 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to encode JSON response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{
			Error:   apperrors.ErrFailedToEncodeResponse.Error(),
			Details: err.Error(),
		})
	}

	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// RespondError sends a structured error response with the given status code.
//
//	response.RespondError(w, http.StatusNotFound, apperrors.ErrTickerNotFound.Error(), err.Error())
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// RespondValidationError sends 400 Bad Request for err. A *validation.Error is
// reported field by field; any other error as its message.
func RespondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}
	RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}
