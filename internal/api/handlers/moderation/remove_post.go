package moderation

import (
	"log"
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// RemovePostHandler handles moderator removal of flagged posts
type RemovePostHandler struct {
	service platform.Service
}

// NewRemovePostHandler creates a new remove handler
func NewRemovePostHandler(service platform.Service) *RemovePostHandler {
	return &RemovePostHandler{service: service}
}

// HandleRemovePost handles POST /xrpc/social.agora.moderation.removePost
//
// Request body: { "postId": 1 }
// Response: {}
func (h *RemovePostHandler) HandleRemovePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input PostInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	userDID := middleware.GetUserDID(r)
	if !requireDID(w, userDID) {
		return
	}

	if err := h.service.RemovePost(r.Context(), userDID, input.PostID); err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[MODERATION-REMOVE] post=%d moderator=%s", input.PostID, userDID)
	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}
