package comments

import (
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/core/platform"
)

// GetCommentsHandler serves comment reads
type GetCommentsHandler struct {
	service platform.Service
}

// NewGetCommentsHandler creates a new handler for reading comments
func NewGetCommentsHandler(service platform.Service) *GetCommentsHandler {
	return &GetCommentsHandler{
		service: service,
	}
}

// HandleList handles GET /xrpc/social.agora.comment.list?postId=<id>
//
// Response: { "authors": [...], "comments": [...], "timestamps": [...] }
// The three arrays are parallel and in append order.
func (h *GetCommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := parseInt64Param(w, r, "postId")
	if !ok {
		return
	}

	listing, err := h.service.GetPostComments(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, listing)
}

// HandleGet handles GET /xrpc/social.agora.comment.get?postId=<id>&id=<commentId>
func (h *GetCommentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := parseInt64Param(w, r, "postId")
	if !ok {
		return
	}
	commentID, ok := parseInt64Param(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.service.GetComment(r.Context(), postID, commentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, comment)
}
