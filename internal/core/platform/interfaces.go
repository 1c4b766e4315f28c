package platform

import (
	"context"

	"Agora/internal/core/comments"
	"Agora/internal/core/events"
	"Agora/internal/core/posts"
)

// Service is the single public surface over posts, comments and moderation.
// requester is the authenticated identity (DID) of the caller.
// Each call runs atomically and in total order with every other call; a
// returned error means no state changed and no event was emitted.
type Service interface {
	// CreatePost stores a new post authored by requester and returns it
	CreatePost(ctx context.Context, requester, caption, mediaRef string) (*posts.Post, error)

	// EditPost replaces caption and media of a post; only its author may edit
	EditPost(ctx context.Context, requester string, postID int64, caption, mediaRef string) error

	// DeletePost hides a post permanently; only its author may delete
	DeletePost(ctx context.Context, requester string, postID int64) error

	// GetPost returns a visible post
	GetPost(ctx context.Context, postID int64) (*posts.Post, error)

	// LikePost adds requester to the supporters and returns the resulting like count.
	// Liking twice is a no-op.
	LikePost(ctx context.Context, requester string, postID int64) (int, error)

	// RemoveLike removes requester from the supporters and returns the resulting like count.
	// Unliking a post not liked is a no-op.
	RemoveLike(ctx context.Context, requester string, postID int64) (int, error)

	// AddComment appends a comment and returns its post-scoped id
	AddComment(ctx context.Context, requester string, postID int64, content string) (int64, error)

	// RemoveComment soft-deletes a comment; only its author may remove it
	RemoveComment(ctx context.Context, requester string, postID, commentID int64) error

	// GetPostComments lists non-removed comments in append order
	GetPostComments(ctx context.Context, postID int64) (comments.Listing, error)

	// GetComment returns a single non-removed comment
	GetComment(ctx context.Context, postID, commentID int64) (comments.Comment, error)

	// ReportPost records requester as a reporter and flags the post
	ReportPost(ctx context.Context, requester string, postID int64) error

	// GetPostReportsInfo returns the moderation view of a visible post
	GetPostReportsInfo(ctx context.Context, postID int64) (posts.ReportsInfo, error)

	// RemovePost hides a flagged post; only moderators may remove
	RemovePost(ctx context.Context, requester string, postID int64) error

	// AddModerator grants the moderator role; only the owner may call it
	AddModerator(ctx context.Context, requester, identity string) error

	// RemoveModerator revokes the moderator role; only the owner may call it
	RemoveModerator(ctx context.Context, requester, identity string) error

	// IsModerator reports whether identity holds the moderator role
	IsModerator(ctx context.Context, identity string) bool

	// Moderators lists moderator identities in sorted order
	Moderators(ctx context.Context) []string

	// Owner returns the platform owner identity
	Owner() string

	// Restore replays journaled events into a fresh platform without re-emitting them
	Restore(ctx context.Context, journal []events.Event) error
}
