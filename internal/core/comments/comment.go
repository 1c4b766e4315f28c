package comments

import (
	"time"
)

const (
	// MaxContentLength is the maximum comment length in graphemes
	MaxContentLength = 200

	// FirstCommentID is the id given to the first comment on every post.
	// Comment ids are scoped per post and assigned sequentially from here.
	FirstCommentID int64 = 0
)

// Comment is a single comment attached to a post.
// PostID is a plain back-reference; the store never touches post state.
type Comment struct {
	CreatedAt time.Time `json:"createdAt"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	Removed   bool      `json:"removed"`
}

// Listing holds the non-removed comments of a post as parallel sequences
// in append order
type Listing struct {
	Authors    []string    `json:"authors"`
	Contents   []string    `json:"comments"`
	Timestamps []time.Time `json:"timestamps"`
}

// Len returns the number of comments in the listing
func (l Listing) Len() int {
	return len(l.Authors)
}
