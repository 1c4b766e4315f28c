package comments

import (
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// DeleteCommentHandler handles comment removal
type DeleteCommentHandler struct {
	service platform.Service
}

// NewDeleteCommentHandler creates a new handler for removing comments
func NewDeleteCommentHandler(service platform.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		service: service,
	}
}

// DeleteCommentInput is the request body of social.agora.comment.delete
type DeleteCommentInput struct {
	PostID    int64 `json:"postId"`
	CommentID int64 `json:"id"`
}

// HandleDelete handles POST /xrpc/social.agora.comment.delete
// Only the comment author may remove it. Response: {}
func (h *DeleteCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input DeleteCommentInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	userDID := middleware.GetUserDID(r)
	if userDID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.RemoveComment(r.Context(), userDID, input.PostID, input.CommentID); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}
