package post

import (
	"net/http"
	"strconv"

	"Agora/internal/api/handlers"
)

// handleServiceError maps platform errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	handlers.WriteServiceError(w, err, "[POST]")
}

// parseIDParam reads a required integer query parameter.
// Range checks belong to the platform, which answers "Invalid post ID".
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" must be an integer")
		return 0, false
	}
	return id, true
}

// requireDID returns the authenticated caller or writes 401
func requireDID(w http.ResponseWriter, did string) bool {
	if did == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return false
	}
	return true
}
