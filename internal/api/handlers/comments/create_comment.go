package comments

import (
	"log"
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// CreateCommentHandler handles comment creation requests
type CreateCommentHandler struct {
	service platform.Service
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(service platform.Service) *CreateCommentHandler {
	return &CreateCommentHandler{
		service: service,
	}
}

// CreateCommentInput is the request body of social.agora.comment.create
type CreateCommentInput struct {
	Content string `json:"content"`
	PostID  int64  `json:"postId"`
}

// CreateCommentOutput carries the post-scoped id of the new comment
type CreateCommentOutput struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"postId"`
}

// HandleCreate handles comment creation requests
// POST /xrpc/social.agora.comment.create
//
// Request body: { "postId": 1, "content": "..." }
// Response: { "postId": 1, "id": 0 }
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input CreateCommentInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	userDID := middleware.GetUserDID(r)
	if userDID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	commentID, err := h.service.AddComment(r.Context(), userDID, input.PostID, input.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[COMMENT-CREATE] post=%d id=%d author=%s", input.PostID, commentID, userDID)
	handlers.WriteJSON(w, http.StatusOK, CreateCommentOutput{ID: commentID, PostID: input.PostID})
}
