package posts

import (
	"time"
)

const (
	// MaxCaptionLength is the maximum caption length in graphemes
	MaxCaptionLength = 280

	// FirstPostID is the id of the first post ever created; ids are never reused
	FirstPostID int64 = 1
)

// State is the lifecycle state of a post.
// Deleted and Removed are terminal: nothing returns a post to Active.
type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
	StateRemoved State = "removed"
)

// Post is a snapshot of a post row.
// Slices are copies; mutating them does not affect the engine.
type Post struct {
	CreatedAt      time.Time `json:"createdAt"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
	Author         string    `json:"author"`
	Caption        string    `json:"caption"`
	MediaRef       string    `json:"mediaRef"`
	ModeratorAgent string    `json:"moderatorAgent"`
	RecordCID      string    `json:"recordCid"`
	State          State     `json:"state"`
	Supporters     []string  `json:"supporters"`
	Reporters      []string  `json:"reporters"`
	ID             int64     `json:"id"`
	LikeCount      int       `json:"likeCount"`
	CommentCount   int       `json:"commentCount"`
	Flagged        bool      `json:"flagged"`
	Visible        bool      `json:"visible"`
}

// ReportsInfo is the moderation view of a post
type ReportsInfo struct {
	ModeratorAgent string   `json:"moderatorAgent"`
	Reporters      []string `json:"reporters"`
	Flagged        bool     `json:"flagged"`
	Visible        bool     `json:"visible"`
}

// ReportsInfo extracts the moderation view from a post snapshot
func (p *Post) ReportsInfo() ReportsInfo {
	return ReportsInfo{
		Flagged:        p.Flagged,
		Reporters:      append([]string{}, p.Reporters...),
		Visible:        p.Visible,
		ModeratorAgent: p.ModeratorAgent,
	}
}
