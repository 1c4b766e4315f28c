package posts

import (
	"errors"
)

// Sentinel errors for post operations
var (
	// ErrInvalidID is returned when a post id is outside the allocated range
	ErrInvalidID = errors.New("post id out of range")

	// ErrNotVisible is returned when the post exists but was deleted or removed
	ErrNotVisible = errors.New("post is not visible")

	// ErrNotFlagged is returned when a moderator removal targets an unreported post
	ErrNotFlagged = errors.New("post is not flagged")

	// ErrCaptionEmpty is returned for a zero-length caption
	ErrCaptionEmpty = errors.New("caption is required")

	// ErrCaptionTooLong is returned when a caption exceeds MaxCaptionLength graphemes
	ErrCaptionTooLong = errors.New("caption exceeds 280 graphemes")
)

// IsNotFound checks if error is a range error on the post id
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

// IsNotVisible checks if error reports a deleted or removed post
func IsNotVisible(err error) bool {
	return errors.Is(err, ErrNotVisible)
}

// IsValidationError checks if error is a caption validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCaptionEmpty) || errors.Is(err, ErrCaptionTooLong)
}
