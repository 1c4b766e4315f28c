package routes

import (
	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers/comments"
	"Agora/internal/api/middleware"
	"Agora/internal/core/platform"
)

// RegisterCommentRoutes registers comment-related XRPC endpoints on the router
// Implements social.agora.comment.* endpoints
// All write operations (create, delete) require authentication
func RegisterCommentRoutes(r chi.Router, service platform.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := comments.NewCreateCommentHandler(service)
	deleteHandler := comments.NewDeleteCommentHandler(service)
	getHandler := comments.NewGetCommentsHandler(service)

	r.With(authMiddleware.RequireAuth).Post(
		"/xrpc/social.agora.comment.create",
		createHandler.HandleCreate)

	// social.agora.comment.delete - soft delete, author only
	r.With(authMiddleware.RequireAuth).Post(
		"/xrpc/social.agora.comment.delete",
		deleteHandler.HandleDelete)

	r.With(authMiddleware.OptionalAuth).Get(
		"/xrpc/social.agora.comment.list",
		getHandler.HandleList)

	r.With(authMiddleware.OptionalAuth).Get(
		"/xrpc/social.agora.comment.get",
		getHandler.HandleGet)
}
