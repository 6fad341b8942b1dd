package utils

import (
	"encoding/json"
	"net/http"

	"yt-transcript/errors"
	"yt-transcript/middleware"
	"yt-transcript/models"
)

func RespondJSON(w http.ResponseWriter, statusCode int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(payload)
}

// RespondWithError translates an error into the JSON failure shape, using
// the AppError status and message when present and a generic 500 otherwise.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.GetLogger(r.Context())

	code := errors.Code(err)
	if code >= http.StatusInternalServerError {
		logger.WithError(err).Error("Request failed")
	} else {
		logger.WithError(err).Warn("Request rejected")
	}

	if encodeErr := RespondJSON(w, code, models.ErrorResponse{
		Success: false,
		Error:   errors.Message(err),
	}); encodeErr != nil {
		logger.WithError(encodeErr).Error("Failed to encode error response")
	}
}
