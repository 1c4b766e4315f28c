package platform

import (
	"context"
	"errors"
	"fmt"

	"Agora/internal/core/events"
	"Agora/internal/core/posts"
)

// ErrNotFresh is returned when Restore is called on a platform that already committed transitions
var ErrNotFresh = errors.New("restore requires a platform with no committed transitions")

// ReplayError reports the journal entry that could not be applied
type ReplayError struct {
	Err  error
	Type events.Type
	Seq  int64
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay failed at seq %d (%s): %v", e.Seq, e.Type, e.Err)
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

// Restore rebuilds state from a journal ordered by sequence number.
// Each event is re-applied with its recorded actor and timestamp; observers are not notified.
func (s *service) Restore(ctx context.Context, journal []events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq != 0 {
		return ErrNotFresh
	}

	for _, e := range journal {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.Seq != s.seq+1 {
			return &ReplayError{Seq: e.Seq, Type: e.Type, Err: fmt.Errorf("expected seq %d", s.seq+1)}
		}
		if err := s.replay(e); err != nil {
			return &ReplayError{Seq: e.Seq, Type: e.Type, Err: err}
		}
		s.seq = e.Seq
	}

	if err := s.verifyCounters(); err != nil {
		return err
	}

	s.deliverMu.Lock()
	s.delivered = s.seq
	s.deliverMu.Unlock()

	s.logger.Info("platform restored from journal",
		"events", len(journal),
		"next_post_id", s.posts.NextID())
	return nil
}

func (s *service) replay(e events.Event) error {
	var (
		applied *events.Event
		err     error
	)

	switch e.Type {
	case events.PostCreated:
		var p *posts.Post
		p, applied, err = s.createPost(e.Actor, e.Caption, e.MediaRef, e.OccurredAt)
		if err == nil && p.ID != e.PostID {
			return fmt.Errorf("post id drift: journal %d, restored %d", e.PostID, p.ID)
		}
	case events.PostModified:
		applied, err = s.editPost(e.Actor, e.PostID, e.Caption, e.MediaRef)
	case events.PostDeleted:
		applied, err = s.deletePost(e.Actor, e.PostID)
	case events.PostLiked:
		applied, err = s.likePost(e.Actor, e.PostID)
	case events.PostUnliked:
		applied, err = s.removeLike(e.Actor, e.PostID)
	case events.CommentAdded:
		applied, err = s.addComment(e.Actor, e.PostID, e.Content, e.OccurredAt)
		if err == nil && applied.CommentID != e.CommentID {
			return fmt.Errorf("comment id drift: journal %d, restored %d", e.CommentID, applied.CommentID)
		}
	case events.CommentRemoved:
		applied, err = s.removeComment(e.Actor, e.PostID, e.CommentID)
	case events.PostReported:
		applied, err = s.reportPost(e.Actor, e.PostID)
	case events.PostRemoved:
		applied, err = s.removePost(e.Actor, e.PostID)
	case events.ModeratorAdded:
		applied, err = s.addModerator(e.Actor, e.Subject)
	case events.ModeratorRemoved:
		applied, err = s.removeModerator(e.Actor, e.Subject)
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}

	if err != nil {
		return err
	}
	if applied == nil {
		return errors.New("event did not produce a transition")
	}
	return nil
}

// verifyCounters checks every post row, including deleted and removed ones,
// against the comment store after a replay
func (s *service) verifyCounters() error {
	for id := posts.FirstPostID; id < s.posts.NextID(); id++ {
		record, err := s.posts.Record(id)
		if err != nil {
			return fmt.Errorf("restored post %d: %w", id, err)
		}
		if active := s.comments.ActiveCount(id); record.CommentCount != active {
			return fmt.Errorf("restored post %d: comment count %d, store holds %d", id, record.CommentCount, active)
		}
		if record.LikeCount != len(record.Supporters) {
			return fmt.Errorf("restored post %d: like count %d, %d supporters", id, record.LikeCount, len(record.Supporters))
		}
	}
	return nil
}
