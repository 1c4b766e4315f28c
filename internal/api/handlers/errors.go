package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"Agora/internal/core/platform"
)

// MaxBodyBytes bounds every JSON request body; captions and comments are tiny
const MaxBodyBytes = 64 * 1024

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// WriteJSON writes v as a JSON response body
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent
		log.Printf("Failed to encode response: %v", err)
	}
}

// WriteServiceError maps platform errors to HTTP responses.
// The message is always the platform's stable reason string.
// tag prefixes the log line for unexpected errors, e.g. "[POST-CREATE]".
func WriteServiceError(w http.ResponseWriter, err error, tag string) {
	kind := platform.KindOf(err)
	if kind == 0 {
		// Don't leak internal error details to clients
		log.Printf("%s unexpected error: %v", tag, err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	WriteError(w, StatusForKind(kind), kind.String(), platform.ReasonOf(err))
}

// StatusForKind returns the HTTP status for a platform error kind
func StatusForKind(kind platform.Kind) int {
	switch kind {
	case platform.KindValidation:
		return http.StatusBadRequest
	case platform.KindNotFound:
		return http.StatusNotFound
	case platform.KindNotVisible:
		return http.StatusGone
	case platform.KindForbidden:
		return http.StatusForbidden
	case platform.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a size-limited JSON body into v.
// On failure it writes the error response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Check if error is due to body size limit
		if err.Error() == "http: request body too large" {
			WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large")
			return false
		}
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}
