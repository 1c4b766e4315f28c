package routes

import (
	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers/moderation"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// RegisterModerationRoutes registers social.agora.moderation.* endpoints.
// Role checks (moderator, owner) happen in the platform, not in routing.
func RegisterModerationRoutes(r chi.Router, service platform.Service, authMiddleware *middleware.AuthMiddleware) {
	reportHandler := moderation.NewReportHandler(service)
	removeHandler := moderation.NewRemovePostHandler(service)
	moderatorsHandler := moderation.NewModeratorsHandler(service)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/xrpc/social.agora.moderation.report", reportHandler.HandleReport)
		r.Post("/xrpc/social.agora.moderation.removePost", removeHandler.HandleRemovePost)
		r.Post("/xrpc/social.agora.moderation.addModerator", moderatorsHandler.HandleAdd)
		r.Post("/xrpc/social.agora.moderation.removeModerator", moderatorsHandler.HandleRemove)
	})

	r.Get("/xrpc/social.agora.moderation.getReports", reportHandler.HandleGetReports)
	r.Get("/xrpc/social.agora.moderation.listModerators", moderatorsHandler.HandleList)
}
