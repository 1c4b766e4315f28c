package comments

import "errors"

var (
	// ErrCommentNotFound indicates the comment id is not allocated for the post, or was removed
	ErrCommentNotFound = errors.New("comment not found")

	// ErrContentTooLong indicates comment content exceeds MaxContentLength graphemes
	ErrContentTooLong = errors.New("comment content exceeds 200 graphemes")

	// ErrContentEmpty indicates comment content is empty
	ErrContentEmpty = errors.New("comment content is required")

	// ErrNotAuthorized indicates the requester is not the comment author
	ErrNotAuthorized = errors.New("not authorized")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrContentEmpty)
}
