package posts

import (
	"time"

	"github.com/rivo/uniseg"
)

// row is the engine's internal post record
type row struct {
	createdAt      time.Time
	lastModifiedAt time.Time
	supporterSet   map[string]struct{}
	reporterSet    map[string]struct{}
	author         string
	caption        string
	mediaRef       string
	moderatorAgent string
	recordCID      string
	state          State
	supporters     []string
	reporters      []string
	id             int64
	commentCount   int
	flagged        bool
}

// Engine owns the post table: an arena indexed by sequential id.
// Every mutator validates before it writes, so a returned error means no change.
// Engine is not safe for concurrent use; callers serialise access.
type Engine struct {
	rows []*row
}

// NewEngine creates an empty post table
func NewEngine() *Engine {
	return &Engine{}
}

// ValidateCaption checks a caption against the length bounds
func ValidateCaption(caption string) error {
	if caption == "" {
		return ErrCaptionEmpty
	}
	if uniseg.GraphemeClusterCount(caption) > MaxCaptionLength {
		return ErrCaptionTooLong
	}
	return nil
}

// NextID returns the id the next created post will receive
func (e *Engine) NextID() int64 {
	return FirstPostID + int64(len(e.rows))
}

// Create inserts a new Active post and returns its snapshot
func (e *Engine) Create(author, caption, mediaRef string, at time.Time) (*Post, error) {
	if err := ValidateCaption(caption); err != nil {
		return nil, err
	}
	recordCID, err := RecordCID(author, caption, mediaRef)
	if err != nil {
		return nil, err
	}

	r := &row{
		id:             e.NextID(),
		author:         author,
		caption:        caption,
		mediaRef:       mediaRef,
		recordCID:      recordCID,
		state:          StateActive,
		createdAt:      at,
		lastModifiedAt: at,
		supporterSet:   make(map[string]struct{}),
		reporterSet:    make(map[string]struct{}),
	}
	e.rows = append(e.rows, r)
	return r.snapshot(), nil
}

// Lookup returns a snapshot of a visible post.
// Out-of-range ids fail with ErrInvalidID; deleted or removed posts with ErrNotVisible.
func (e *Engine) Lookup(id int64) (*Post, error) {
	r, err := e.active(id)
	if err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

// Record returns a snapshot of any allocated post, including deleted and removed ones.
// It backs audit paths; public reads go through Lookup.
func (e *Engine) Record(id int64) (*Post, error) {
	r, err := e.row(id)
	if err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

// Edit replaces caption and media reference.
// lastModifiedAt is reset to the zero time rather than bumped.
func (e *Engine) Edit(id int64, caption, mediaRef string) error {
	r, err := e.active(id)
	if err != nil {
		return err
	}
	if err := ValidateCaption(caption); err != nil {
		return err
	}
	recordCID, err := RecordCID(r.author, caption, mediaRef)
	if err != nil {
		return err
	}

	r.caption = caption
	r.mediaRef = mediaRef
	r.recordCID = recordCID
	r.lastModifiedAt = time.Time{}
	return nil
}

// Delete moves an Active post to Deleted
func (e *Engine) Delete(id int64) error {
	r, err := e.active(id)
	if err != nil {
		return err
	}
	r.state = StateDeleted
	return nil
}

// Remove moves a flagged Active post to Removed and records the moderator
func (e *Engine) Remove(id int64, moderator string) error {
	r, err := e.active(id)
	if err != nil {
		return err
	}
	if !r.flagged {
		return ErrNotFlagged
	}
	r.state = StateRemoved
	r.moderatorAgent = moderator
	return nil
}

// Like adds supporter to the post. Returns false when supporter already liked it.
func (e *Engine) Like(id int64, supporter string) (bool, error) {
	r, err := e.active(id)
	if err != nil {
		return false, err
	}
	if _, ok := r.supporterSet[supporter]; ok {
		return false, nil
	}
	r.supporterSet[supporter] = struct{}{}
	r.supporters = append(r.supporters, supporter)
	return true, nil
}

// Unlike removes supporter from the post. Returns false when supporter had not liked it.
func (e *Engine) Unlike(id int64, supporter string) (bool, error) {
	r, err := e.active(id)
	if err != nil {
		return false, err
	}
	if _, ok := r.supporterSet[supporter]; !ok {
		return false, nil
	}
	delete(r.supporterSet, supporter)
	r.supporters = removeString(r.supporters, supporter)
	return true, nil
}

// Report records reporter and flags the post. A single report is enough to flag.
// Returns false when reporter had already reported the post.
func (e *Engine) Report(id int64, reporter string) (bool, error) {
	r, err := e.active(id)
	if err != nil {
		return false, err
	}
	r.flagged = true
	if _, ok := r.reporterSet[reporter]; ok {
		return false, nil
	}
	r.reporterSet[reporter] = struct{}{}
	r.reporters = append(r.reporters, reporter)
	return true, nil
}

// AdjustCommentCount applies delta to the running comment count.
// The count never drops below zero.
func (e *Engine) AdjustCommentCount(id int64, delta int) error {
	r, err := e.active(id)
	if err != nil {
		return err
	}
	if r.commentCount+delta < 0 {
		r.commentCount = 0
		return nil
	}
	r.commentCount += delta
	return nil
}

func (e *Engine) row(id int64) (*row, error) {
	idx := id - FirstPostID
	if idx < 0 || idx >= int64(len(e.rows)) {
		return nil, ErrInvalidID
	}
	return e.rows[idx], nil
}

func (e *Engine) active(id int64) (*row, error) {
	r, err := e.row(id)
	if err != nil {
		return nil, err
	}
	if r.state != StateActive {
		return nil, ErrNotVisible
	}
	return r, nil
}

func (r *row) snapshot() *Post {
	return &Post{
		ID:             r.id,
		Author:         r.author,
		Caption:        r.caption,
		MediaRef:       r.mediaRef,
		RecordCID:      r.recordCID,
		LikeCount:      len(r.supporters),
		Supporters:     append([]string{}, r.supporters...),
		CommentCount:   r.commentCount,
		Flagged:        r.flagged,
		Reporters:      append([]string{}, r.reporters...),
		Visible:        r.state == StateActive,
		ModeratorAgent: r.moderatorAgent,
		State:          r.state,
		CreatedAt:      r.createdAt,
		LastModifiedAt: r.lastModifiedAt,
	}
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
