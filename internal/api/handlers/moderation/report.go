package moderation

import (
	"log"
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// ReportHandler handles reports and the reports view
type ReportHandler struct {
	service platform.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(service platform.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// PostInput is the request body of post-scoped moderation procedures
type PostInput struct {
	PostID int64 `json:"postId"`
}

// HandleReport handles POST /xrpc/social.agora.moderation.report
// Any authenticated identity may report; a single report flags the post.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.ReportPost(r.Context(), userDID, input.PostID); err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[MODERATION-REPORT] post=%d reporter=%s", input.PostID, userDID)
	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}

// HandleGetReports handles GET /xrpc/social.agora.moderation.getReports?postId=<id>
//
// Response: { "flagged": bool, "reporters": [...], "visible": bool, "moderatorAgent": "" }
func (h *ReportHandler) HandleGetReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	info, err := h.service.GetPostReportsInfo(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, info)
}
