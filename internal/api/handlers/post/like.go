package post

import (
	"context"
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// LikeHandler handles like and unlike requests
type LikeHandler struct {
	service platform.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service platform.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// LikeInput is the request body of social.agora.post.like and social.agora.post.unlike
type LikeInput struct {
	PostID int64 `json:"postId"`
}

// HandleLike handles POST /xrpc/social.agora.post.like
// Liking an already liked post succeeds without change.
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.LikePost)
}

// HandleUnlike handles POST /xrpc/social.agora.post.unlike
// Unliking a post that was not liked succeeds without change.
func (h *LikeHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.RemoveLike)
}

func (h *LikeHandler) handle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, requester string, postID int64) (int, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input LikeInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	userDID := middleware.GetUserDID(r)
	if !requireDID(w, userDID) {
		return
	}

	likeCount, err := op(r.Context(), userDID, input.PostID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"likeCount": likeCount,
	})
}
