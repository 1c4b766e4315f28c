package events

import (
	"context"
	"time"
)

// Type names a committed state transition
type Type string

const (
	PostCreated      Type = "PostCreated"
	PostModified     Type = "PostModified"
	PostDeleted      Type = "PostDeleted"
	PostLiked        Type = "PostLiked"
	PostUnliked      Type = "PostUnliked"
	CommentAdded     Type = "CommentAdded"
	CommentRemoved   Type = "CommentRemoved"
	PostReported     Type = "PostReported"
	PostRemoved      Type = "PostRemoved"
	ModeratorAdded   Type = "ModeratorAdded"
	ModeratorRemoved Type = "ModeratorRemoved"
)

// Valid reports whether t is one of the known event types
func (t Type) Valid() bool {
	switch t {
	case PostCreated, PostModified, PostDeleted, PostLiked, PostUnliked,
		CommentAdded, CommentRemoved, PostReported, PostRemoved,
		ModeratorAdded, ModeratorRemoved:
		return true
	}
	return false
}

// Event is emitted once per committed transition.
// The payload carries enough to replay the transition against an empty platform.
type Event struct {
	OccurredAt time.Time `json:"occurredAt"`
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Actor      string    `json:"actor"`
	Subject    string    `json:"subject,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	MediaRef   string    `json:"mediaRef,omitempty"`
	Content    string    `json:"content,omitempty"`
	Seq        int64     `json:"seq"`
	PostID     int64     `json:"postId,omitempty"`
	CommentID  int64     `json:"commentId,omitempty"`
}

// Observer receives committed events.
// Notify is called after the platform lock is released, one event at a time in seq order.
// It may read the platform but must not mutate it.
type Observer interface {
	Notify(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ctx context.Context, e Event)

// Notify calls f(ctx, e)
func (f ObserverFunc) Notify(ctx context.Context, e Event) {
	f(ctx, e)
}
