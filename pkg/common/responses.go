// Package common holds the HTTP response envelope shared by all handlers.
package common

import (
	"encoding/json"
	"net/http"

	appErrors "forum-backend/pkg/errors"
)

// ErrorResponse is the body returned for any failed request. Internal
// detail is logged by the handler, never serialized here.
type ErrorResponse struct {
	Message string `json:"message"`
}

// DefaultErrorMessage is returned for unclassified failures.
const DefaultErrorMessage = "Something went wrong"

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondNoContent sends an empty 204 response
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError sends an error response with the given status
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

// RespondAppError classifies err through the application error taxonomy
// and writes the matching response. Unclassified errors become a generic
// 500 so storage detail never leaks to the caller.
func RespondAppError(w http.ResponseWriter, err error) {
	if appErr := appErrors.GetAppError(err); appErr != nil {
		status := appErr.HTTPStatus
		message := appErr.Message
		if status >= http.StatusInternalServerError {
			message = DefaultErrorMessage
		}
		RespondError(w, status, message)
		return
	}
	RespondError(w, http.StatusInternalServerError, DefaultErrorMessage)
}
