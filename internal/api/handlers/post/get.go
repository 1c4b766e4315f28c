package post

import (
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/core/platform"
	"Agora/internal/core/posts"
)

// GetHandler serves single post views
type GetHandler struct {
	service platform.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service platform.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /xrpc/social.agora.post.get?id=<postId>
// The ETag is a CID over the served view, so it changes on every transition of the post.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	viewCID, err := posts.ViewCID(post)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	etag := `"` + viewCID + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	handlers.WriteJSON(w, http.StatusOK, post)
}
