package routes

import (
	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers/post"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// RegisterPostRoutes registers post-related XRPC endpoints on the router
// Implements social.agora.post.* endpoints
func RegisterPostRoutes(r chi.Router, service platform.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	editHandler := post.NewEditHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	getHandler := post.NewGetHandler(service)
	likeHandler := post.NewLikeHandler(service)

	// Procedure endpoints (POST) - require authentication
	r.With(authMiddleware.RequireAuth).Post("/xrpc/social.agora.post.create", createHandler.HandleCreate)

	// Only post authors can edit or delete their own posts
	r.With(authMiddleware.RequireAuth).Post("/xrpc/social.agora.post.edit", editHandler.HandleEdit)
	r.With(authMiddleware.RequireAuth).Post("/xrpc/social.agora.post.delete", deleteHandler.HandleDelete)

	r.With(authMiddleware.RequireAuth).Post("/xrpc/social.agora.post.like", likeHandler.HandleLike)
	r.With(authMiddleware.RequireAuth).Post("/xrpc/social.agora.post.unlike", likeHandler.HandleUnlike)

	// Query endpoints (GET) - public
	r.With(authMiddleware.OptionalAuth).Get("/xrpc/social.agora.post.get", getHandler.HandleGet)
}
