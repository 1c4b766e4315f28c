package routes

import (
	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers/stream"
)

// RegisterStreamRoutes registers the committed-event websocket stream
func RegisterStreamRoutes(r chi.Router, hub *stream.Hub) {
	r.Get("/xrpc/social.agora.sync.subscribeEvents", hub.HandleSubscribe)
}
