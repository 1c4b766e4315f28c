package post

import (
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// EditHandler handles post edits
type EditHandler struct {
	service platform.Service
}

// NewEditHandler creates a new edit handler
func NewEditHandler(service platform.Service) *EditHandler {
	return &EditHandler{service: service}
}

// EditPostInput is the request body of social.agora.post.edit
type EditPostInput struct {
	Caption  string `json:"caption"`
	MediaRef string `json:"mediaRef"`
	PostID   int64  `json:"postId"`
}

// HandleEdit handles POST /xrpc/social.agora.post.edit
// Only the post author may edit. Response: {}
func (h *EditHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input EditPostInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	userDID := middleware.GetUserDID(r)
	if !requireDID(w, userDID) {
		return
	}

	if err := h.service.EditPost(r.Context(), userDID, input.PostID, input.Caption, input.MediaRef); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}
