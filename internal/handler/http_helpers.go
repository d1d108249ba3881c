// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"pdf-text-pipeline/internal/domain"
	apperrors "pdf-text-pipeline/pkg/errors"
)

// writeError writes a JSON error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps an application error to its HTTP status.
func writeServiceError(w http.ResponseWriter, logger domain.Logger, err error) {
	status := apperrors.GetStatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err)
	}
	writeError(w, status, err.Error())
}

// decodeJSONBody decodes a JSON request body into dst.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
