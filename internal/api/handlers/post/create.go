package post

import (
	"log"
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service platform.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service platform.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// CreatePostInput is the request body of social.agora.post.create
type CreatePostInput struct {
	Caption  string `json:"caption"`
	MediaRef string `json:"mediaRef"`
	Author   string `json:"author,omitempty"`
}

// HandleCreate handles POST /xrpc/social.agora.post.create
//
// Request body: { "caption": "...", "mediaRef": "..." }
// Response: the created post view
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input CreatePostInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	userDID := middleware.GetUserDID(r)
	if !requireDID(w, userDID) {
		return
	}

	// SECURITY: the author is always the authenticated caller
	if input.Author != "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest",
			"author must not be provided - derived from authenticated user")
		return
	}

	post, err := h.service.CreatePost(r.Context(), userDID, input.Caption, input.MediaRef)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[POST-CREATE] id=%d author=%s", post.ID, userDID)
	handlers.WriteJSON(w, http.StatusOK, post)
}
