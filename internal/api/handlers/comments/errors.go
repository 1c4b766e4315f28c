package comments

import (
	"net/http"
	"strconv"

	"Agora/internal/api/handlers"
)

// handleServiceError maps platform errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	handlers.WriteServiceError(w, err, "[COMMENT]")
}

// parseInt64Param reads a required integer query parameter
func parseInt64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" is required")
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" must be an integer")
		return 0, false
	}
	return v, true
}
