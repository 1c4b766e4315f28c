package moderation

import (
	"log"
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// ModeratorsHandler manages the moderator set. Mutations are owner-only.
type ModeratorsHandler struct {
	service platform.Service
}

// NewModeratorsHandler creates a new moderators handler
func NewModeratorsHandler(service platform.Service) *ModeratorsHandler {
	return &ModeratorsHandler{service: service}
}

// ModeratorInput is the request body of addModerator and removeModerator
type ModeratorInput struct {
	Identity string `json:"identity"`
}

// ListModeratorsOutput is the response of listModerators
type ListModeratorsOutput struct {
	Owner      string   `json:"owner"`
	Moderators []string `json:"moderators"`
}

// HandleAdd handles POST /xrpc/social.agora.moderation.addModerator
func (h *ModeratorsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	identity, userDID, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.AddModerator(r.Context(), userDID, identity); err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[MODERATION-ROLE] added moderator=%s by=%s", identity, userDID)
	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}

// HandleRemove handles POST /xrpc/social.agora.moderation.removeModerator
func (h *ModeratorsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	identity, userDID, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveModerator(r.Context(), userDID, identity); err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[MODERATION-ROLE] removed moderator=%s by=%s", identity, userDID)
	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}

// HandleList handles GET /xrpc/social.agora.moderation.listModerators
func (h *ModeratorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ListModeratorsOutput{
		Owner:      h.service.Owner(),
		Moderators: h.service.Moderators(r.Context()),
	})
}

func (h *ModeratorsHandler) decode(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return "", "", false
	}

	var input ModeratorInput
	if !handlers.DecodeJSON(w, r, &input) {
		return "", "", false
	}

	userDID := middleware.GetUserDID(r)
	if !requireDID(w, userDID) {
		return "", "", false
	}

	if !validIdentity(w, input.Identity) {
		return "", "", false
	}

	return input.Identity, userDID, true
}
