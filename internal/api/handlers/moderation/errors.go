package moderation

import (
	"net/http"
	"strconv"

	"github.com/bluesky-social/indigo/atproto/syntax"

	"Agora/internal/api/handlers"
)

// handleServiceError maps platform errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	handlers.WriteServiceError(w, err, "[MODERATION]")
}

// validIdentity checks that a moderator identity is a DID.
// The empty identity is passed through so the platform answers with its own reason.
func validIdentity(w http.ResponseWriter, identity string) bool {
	if identity == "" {
		return true
	}
	if _, err := syntax.ParseDID(identity); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "identity must be a valid DID")
		return false
	}
	return true
}

func requireDID(w http.ResponseWriter, did string) bool {
	if did == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return false
	}
	return true
}

func parsePostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("postId")
	if raw == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postId is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postId must be an integer")
		return 0, false
	}
	return id, true
}
