package platform

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"Agora/internal/core/comments"
	"Agora/internal/core/events"
	"Agora/internal/core/posts"
	"Agora/internal/core/roles"
)

// Option configures a platform service
type Option func(*service)

// WithClock overrides the time source read once at the start of every operation
func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers an observer notified after every committed transition
func WithObserver(o events.Observer) Option {
	return func(s *service) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// service composes the role registry, post engine and comment store.
// mu serialises every public operation so each one is atomic and totally ordered.
// Events are delivered after mu is released; delivered and deliverCond hand
// delivery from one commit to the next so observers still see seq order.
type service struct {
	clock       func() time.Time
	roles       *roles.Registry
	posts       *posts.Engine
	comments    *comments.Store
	logger      *slog.Logger
	dispatcher  *events.Dispatcher
	deliverCond *sync.Cond
	observers   []events.Observer
	seq         int64
	delivered   int64
	mu          sync.Mutex
	deliverMu   sync.Mutex
}

// NewService creates a platform owned by owner
func NewService(owner string, opts ...Option) (Service, error) {
	registry, err := roles.NewRegistry(owner)
	if err != nil {
		return nil, err
	}

	s := &service{
		clock:    func() time.Time { return time.Now().UTC() },
		roles:    registry,
		posts:    posts.NewEngine(),
		comments: comments.NewStore(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.deliverCond = sync.NewCond(&s.deliverMu)
	s.dispatcher = events.NewDispatcher(s.logger)
	for _, o := range s.observers {
		s.dispatcher.Subscribe(o)
	}
	return s, nil
}

// mutate runs op under the state lock and stamps the transition it returns.
// The event is delivered after the lock is released, in seq order.
// A nil event with a nil error is a successful no-op.
func (s *service) mutate(ctx context.Context, name, requester string, op func(now time.Time) (*events.Event, error)) error {
	s.mu.Lock()
	now := s.clock()
	e, err := op(now)
	if err != nil {
		s.mu.Unlock()
		s.rejected(name, requester, err)
		return err
	}
	if e == nil {
		s.mu.Unlock()
		return nil
	}
	s.commit(e, now)
	s.mu.Unlock()

	s.deliver(ctx, *e)
	return nil
}

// commit stamps a transition. Callers hold mu.
func (s *service) commit(e *events.Event, now time.Time) {
	s.seq++
	e.Seq = s.seq
	e.ID = uuid.NewString()
	e.OccurredAt = now

	s.logger.Debug("transition committed",
		"event_type", e.Type,
		"seq", e.Seq,
		"actor", e.Actor,
		"post_id", e.PostID)
}

// deliver waits for every earlier event to be delivered, then notifies observers.
// Observers may read the platform; a mutation from inside Notify would wait on itself.
func (s *service) deliver(ctx context.Context, e events.Event) {
	s.deliverMu.Lock()
	for s.delivered != e.Seq-1 {
		s.deliverCond.Wait()
	}
	s.deliverMu.Unlock()

	s.dispatcher.Notify(ctx, e)

	s.deliverMu.Lock()
	s.delivered = e.Seq
	s.deliverCond.Broadcast()
	s.deliverMu.Unlock()
}

func (s *service) rejected(op string, requester string, err error) {
	s.logger.Debug("operation rejected",
		"op", op,
		"actor", requester,
		"reason", err.Error())
}

func (s *service) CreatePost(ctx context.Context, requester, caption, mediaRef string) (*posts.Post, error) {
	var post *posts.Post
	err := s.mutate(ctx, "createPost", requester, func(now time.Time) (*events.Event, error) {
		p, e, err := s.createPost(requester, caption, mediaRef, now)
		post = p
		return e, err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *service) createPost(requester, caption, mediaRef string, now time.Time) (*posts.Post, *events.Event, error) {
	if err := posts.ValidateCaption(caption); err != nil {
		return nil, nil, translate(err)
	}
	post, err := s.posts.Create(requester, caption, mediaRef, now)
	if err != nil {
		return nil, nil, translate(err)
	}
	return post, &events.Event{
		Type:     events.PostCreated,
		Actor:    requester,
		PostID:   post.ID,
		Caption:  caption,
		MediaRef: mediaRef,
	}, nil
}

func (s *service) EditPost(ctx context.Context, requester string, postID int64, caption, mediaRef string) error {
	return s.mutate(ctx, "editPost", requester, func(time.Time) (*events.Event, error) {
		return s.editPost(requester, postID, caption, mediaRef)
	})
}

func (s *service) editPost(requester string, postID int64, caption, mediaRef string) (*events.Event, error) {
	post, err := s.posts.Lookup(postID)
	if err != nil {
		return nil, translate(err)
	}
	if d := s.roles.Authorize(requester, roles.RoleAuthor, post.Author); !d.Allowed() {
		return nil, denied(d)
	}
	if err := posts.ValidateCaption(caption); err != nil {
		return nil, translate(err)
	}
	if err := s.posts.Edit(postID, caption, mediaRef); err != nil {
		return nil, translate(err)
	}
	return &events.Event{
		Type:     events.PostModified,
		Actor:    requester,
		PostID:   postID,
		Caption:  caption,
		MediaRef: mediaRef,
	}, nil
}

func (s *service) DeletePost(ctx context.Context, requester string, postID int64) error {
	return s.mutate(ctx, "deletePost", requester, func(time.Time) (*events.Event, error) {
		return s.deletePost(requester, postID)
	})
}

func (s *service) deletePost(requester string, postID int64) (*events.Event, error) {
	post, err := s.posts.Lookup(postID)
	if err != nil {
		return nil, translate(err)
	}
	if d := s.roles.Authorize(requester, roles.RoleAuthor, post.Author); !d.Allowed() {
		return nil, denied(d)
	}
	if err := s.posts.Delete(postID); err != nil {
		return nil, translate(err)
	}
	return &events.Event{Type: events.PostDeleted, Actor: requester, PostID: postID}, nil
}

func (s *service) GetPost(ctx context.Context, postID int64) (*posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.posts.Lookup(postID)
	if err != nil {
		return nil, translate(err)
	}
	return post, nil
}

func (s *service) LikePost(ctx context.Context, requester string, postID int64) (int, error) {
	var likeCount int
	err := s.mutate(ctx, "likePost", requester, func(time.Time) (*events.Event, error) {
		e, err := s.likePost(requester, postID)
		if err == nil {
			likeCount, err = s.likeCount(postID)
		}
		return e, err
	})
	if err != nil {
		return 0, err
	}
	return likeCount, nil
}

func (s *service) likePost(requester string, postID int64) (*events.Event, error) {
	changed, err := s.posts.Like(postID, requester)
	if err != nil {
		return nil, translate(err)
	}
	if !changed {
		return nil, nil
	}
	return &events.Event{Type: events.PostLiked, Actor: requester, PostID: postID}, nil
}

// likeCount reads the supporter count inside the operation that changed it
func (s *service) likeCount(postID int64) (int, error) {
	post, err := s.posts.Lookup(postID)
	if err != nil {
		return 0, translate(err)
	}
	return post.LikeCount, nil
}

func (s *service) RemoveLike(ctx context.Context, requester string, postID int64) (int, error) {
	var likeCount int
	err := s.mutate(ctx, "removeLike", requester, func(time.Time) (*events.Event, error) {
		e, err := s.removeLike(requester, postID)
		if err == nil {
			likeCount, err = s.likeCount(postID)
		}
		return e, err
	})
	if err != nil {
		return 0, err
	}
	return likeCount, nil
}

func (s *service) removeLike(requester string, postID int64) (*events.Event, error) {
	changed, err := s.posts.Unlike(postID, requester)
	if err != nil {
		return nil, translate(err)
	}
	if !changed {
		return nil, nil
	}
	return &events.Event{Type: events.PostUnliked, Actor: requester, PostID: postID}, nil
}

func (s *service) AddComment(ctx context.Context, requester string, postID int64, content string) (int64, error) {
	var commentID int64
	err := s.mutate(ctx, "addComment", requester, func(now time.Time) (*events.Event, error) {
		e, err := s.addComment(requester, postID, content, now)
		if err == nil {
			commentID = e.CommentID
		}
		return e, err
	})
	if err != nil {
		return 0, err
	}
	return commentID, nil
}

func (s *service) addComment(requester string, postID int64, content string, now time.Time) (*events.Event, error) {
	if _, err := s.posts.Lookup(postID); err != nil {
		return nil, translate(err)
	}
	if err := comments.ValidateContent(content); err != nil {
		return nil, translate(err)
	}
	commentID, err := s.comments.Add(postID, content, requester, now)
	if err != nil {
		return nil, translate(err)
	}
	// Cannot fail: the post was looked up above under the same lock
	_ = s.posts.AdjustCommentCount(postID, 1)

	return &events.Event{
		Type:      events.CommentAdded,
		Actor:     requester,
		PostID:    postID,
		CommentID: commentID,
		Content:   content,
	}, nil
}

func (s *service) RemoveComment(ctx context.Context, requester string, postID, commentID int64) error {
	return s.mutate(ctx, "removeComment", requester, func(time.Time) (*events.Event, error) {
		return s.removeComment(requester, postID, commentID)
	})
}

func (s *service) removeComment(requester string, postID, commentID int64) (*events.Event, error) {
	if _, err := s.posts.Lookup(postID); err != nil {
		return nil, translate(err)
	}
	if err := s.comments.CheckRemovable(postID, commentID, requester); err != nil {
		return nil, translate(err)
	}
	if err := s.comments.Remove(postID, commentID, requester); err != nil {
		return nil, translate(err)
	}
	_ = s.posts.AdjustCommentCount(postID, -1)

	return &events.Event{
		Type:      events.CommentRemoved,
		Actor:     requester,
		PostID:    postID,
		CommentID: commentID,
	}, nil
}

func (s *service) GetPostComments(ctx context.Context, postID int64) (comments.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.posts.Lookup(postID); err != nil {
		return comments.Listing{}, translate(err)
	}
	return s.comments.List(postID), nil
}

func (s *service) GetComment(ctx context.Context, postID, commentID int64) (comments.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.posts.Lookup(postID); err != nil {
		return comments.Comment{}, translate(err)
	}
	c, err := s.comments.Get(postID, commentID)
	if err != nil {
		return comments.Comment{}, translate(err)
	}
	return c, nil
}

func (s *service) ReportPost(ctx context.Context, requester string, postID int64) error {
	return s.mutate(ctx, "reportPost", requester, func(time.Time) (*events.Event, error) {
		return s.reportPost(requester, postID)
	})
}

func (s *service) reportPost(requester string, postID int64) (*events.Event, error) {
	added, err := s.posts.Report(postID, requester)
	if err != nil {
		return nil, translate(err)
	}
	if !added {
		return nil, nil
	}
	return &events.Event{Type: events.PostReported, Actor: requester, PostID: postID}, nil
}

func (s *service) GetPostReportsInfo(ctx context.Context, postID int64) (posts.ReportsInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.posts.Lookup(postID)
	if err != nil {
		return posts.ReportsInfo{}, translate(err)
	}
	return post.ReportsInfo(), nil
}

func (s *service) RemovePost(ctx context.Context, requester string, postID int64) error {
	return s.mutate(ctx, "removePost", requester, func(time.Time) (*events.Event, error) {
		return s.removePost(requester, postID)
	})
}

func (s *service) removePost(requester string, postID int64) (*events.Event, error) {
	if _, err := s.posts.Lookup(postID); err != nil {
		return nil, translate(err)
	}
	if d := s.roles.Authorize(requester, roles.RoleModerator, ""); !d.Allowed() {
		return nil, denied(d)
	}
	if err := s.posts.Remove(postID, requester); err != nil {
		return nil, translate(err)
	}
	return &events.Event{Type: events.PostRemoved, Actor: requester, PostID: postID}, nil
}

func (s *service) AddModerator(ctx context.Context, requester, identity string) error {
	return s.mutate(ctx, "addModerator", requester, func(time.Time) (*events.Event, error) {
		return s.addModerator(requester, identity)
	})
}

func (s *service) addModerator(requester, identity string) (*events.Event, error) {
	if d := s.roles.Authorize(requester, roles.RoleOwner, ""); !d.Allowed() {
		return nil, denied(d)
	}
	already := s.roles.IsModerator(identity)
	if err := s.roles.AddModerator(identity); err != nil {
		return nil, translate(err)
	}
	if already {
		return nil, nil
	}
	return &events.Event{Type: events.ModeratorAdded, Actor: requester, Subject: identity}, nil
}

func (s *service) RemoveModerator(ctx context.Context, requester, identity string) error {
	return s.mutate(ctx, "removeModerator", requester, func(time.Time) (*events.Event, error) {
		return s.removeModerator(requester, identity)
	})
}

func (s *service) removeModerator(requester, identity string) (*events.Event, error) {
	if d := s.roles.Authorize(requester, roles.RoleOwner, ""); !d.Allowed() {
		return nil, denied(d)
	}
	if err := s.roles.RemoveModerator(identity); err != nil {
		return nil, translate(err)
	}
	return &events.Event{Type: events.ModeratorRemoved, Actor: requester, Subject: identity}, nil
}

func (s *service) IsModerator(ctx context.Context, identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roles.IsModerator(identity)
}

func (s *service) Moderators(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roles.Moderators()
}

func (s *service) Owner() string {
	return s.roles.Owner()
}
