package post

import (
	"log"
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service platform.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service platform.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// DeletePostInput is the request body of social.agora.post.delete
type DeletePostInput struct {
	PostID int64 `json:"postId"`
}

// HandleDelete handles post deletion requests
// POST /xrpc/social.agora.post.delete
//
// Request body: { "postId": 1 }
// Response: {}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input DeletePostInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	userDID := middleware.GetUserDID(r)
	if !requireDID(w, userDID) {
		return
	}

	if err := h.service.DeletePost(r.Context(), userDID, input.PostID); err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[POST-DELETE] id=%d author=%s", input.PostID, userDID)
	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}
