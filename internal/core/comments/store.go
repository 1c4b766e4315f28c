package comments

import (
	"time"

	"github.com/rivo/uniseg"
)

// Store keeps, per post, an append-only arena of comments.
// Removal is a soft delete: the record stays so ids are never reused.
// Store is not safe for concurrent use; callers serialise access.
type Store struct {
	byPost map[int64][]*Comment
}

// NewStore creates an empty comment store
func NewStore() *Store {
	return &Store{byPost: make(map[int64][]*Comment)}
}

// ValidateContent checks comment content against the length bounds
func ValidateContent(content string) error {
	if content == "" {
		return ErrContentEmpty
	}
	if uniseg.GraphemeClusterCount(content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

// Add appends a comment to the post and returns its id
func (s *Store) Add(postID int64, content, author string, at time.Time) (int64, error) {
	if err := ValidateContent(content); err != nil {
		return 0, err
	}

	id := FirstCommentID + int64(len(s.byPost[postID]))
	s.byPost[postID] = append(s.byPost[postID], &Comment{
		ID:        id,
		PostID:    postID,
		Author:    author,
		Content:   content,
		CreatedAt: at,
	})
	return id, nil
}

// CheckRemovable verifies that requester may remove the comment without mutating anything
func (s *Store) CheckRemovable(postID, commentID int64, requester string) error {
	c, err := s.lookup(postID, commentID)
	if err != nil {
		return err
	}
	if c.Author != requester {
		return ErrNotAuthorized
	}
	return nil
}

// Remove soft-deletes a comment. Only the comment author may remove it.
func (s *Store) Remove(postID, commentID int64, requester string) error {
	if err := s.CheckRemovable(postID, commentID, requester); err != nil {
		return err
	}
	c, _ := s.lookup(postID, commentID)
	c.Removed = true
	return nil
}

// Get returns a snapshot of a live comment
func (s *Store) Get(postID, commentID int64) (Comment, error) {
	c, err := s.lookup(postID, commentID)
	if err != nil {
		return Comment{}, err
	}
	return *c, nil
}

// List returns the non-removed comments of a post in append order
func (s *Store) List(postID int64) Listing {
	out := Listing{
		Authors:    []string{},
		Contents:   []string{},
		Timestamps: []time.Time{},
	}
	for _, c := range s.byPost[postID] {
		if c.Removed {
			continue
		}
		out.Authors = append(out.Authors, c.Author)
		out.Contents = append(out.Contents, c.Content)
		out.Timestamps = append(out.Timestamps, c.CreatedAt)
	}
	return out
}

// ActiveCount returns the number of non-removed comments on a post
func (s *Store) ActiveCount(postID int64) int {
	n := 0
	for _, c := range s.byPost[postID] {
		if !c.Removed {
			n++
		}
	}
	return n
}

// lookup resolves a live comment; removed comments are reported as not found
func (s *Store) lookup(postID, commentID int64) (*Comment, error) {
	list := s.byPost[postID]
	idx := commentID - FirstCommentID
	if idx < 0 || idx >= int64(len(list)) {
		return nil, ErrCommentNotFound
	}
	c := list[idx]
	if c.Removed {
		return nil, ErrCommentNotFound
	}
	return c, nil
}
