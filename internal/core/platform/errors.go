package platform

import (
	"errors"
	"fmt"

	"Agora/internal/core/comments"
	"Agora/internal/core/posts"
	"Agora/internal/core/roles"
)

// Kind classifies a rejected operation
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindNotVisible
	KindForbidden
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "InvalidRequest"
	case KindNotFound:
		return "NotFound"
	case KindNotVisible:
		return "NotVisible"
	case KindForbidden:
		return "NotAuthorized"
	case KindConflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

// Stable reason strings surfaced to callers
const (
	ReasonCaptionTooLong   = "Caption exceeds maximum length"
	ReasonCaptionEmpty     = "Caption cannot be empty"
	ReasonInvalidPostID    = "Invalid post ID"
	ReasonPostNotVisible   = "Post is not visible"
	ReasonNotPostAuthor    = "Sender must be the Author"
	ReasonCommentTooLong   = "Comment exceeds maximum length"
	ReasonCommentEmpty     = "Comment cannot be empty"
	ReasonInvalidCommentID = "Invalid comment ID"
	ReasonNotCommentAuthor = "Only comment author can remove comment"
	ReasonNotAuthorized    = "Not authorized"
	ReasonPostNotFlagged   = "Post is not flagged"
	ReasonZeroIdentity     = "Cannot add zero address"
	ReasonNotModerator     = "Address is not a moderator"
)

// Error is a rejected operation. Error() is exactly the reason string.
type Error struct {
	Err    error
	Reason string
	Kind   Kind
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// translate maps store sentinels onto platform errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case posts.IsNotFound(err):
		return newError(KindNotFound, ReasonInvalidPostID, err)
	case posts.IsNotVisible(err):
		return newError(KindNotVisible, ReasonPostNotVisible, err)
	case posts.IsValidationError(err):
		if errors.Is(err, posts.ErrCaptionEmpty) {
			return newError(KindValidation, ReasonCaptionEmpty, err)
		}
		return newError(KindValidation, ReasonCaptionTooLong, err)
	case errors.Is(err, posts.ErrNotFlagged):
		return newError(KindConflict, ReasonPostNotFlagged, err)
	case comments.IsValidationError(err):
		if errors.Is(err, comments.ErrContentEmpty) {
			return newError(KindValidation, ReasonCommentEmpty, err)
		}
		return newError(KindValidation, ReasonCommentTooLong, err)
	case comments.IsNotFound(err):
		return newError(KindNotFound, ReasonInvalidCommentID, err)
	case errors.Is(err, comments.ErrNotAuthorized):
		return newError(KindForbidden, ReasonNotCommentAuthor, err)
	case errors.Is(err, roles.ErrZeroIdentity):
		return newError(KindValidation, ReasonZeroIdentity, err)
	case errors.Is(err, roles.ErrNotModerator):
		return newError(KindNotFound, ReasonNotModerator, err)
	default:
		return fmt.Errorf("platform: %w", err)
	}
}

// denied maps a negative authorization decision onto a platform error
func denied(d roles.Decision) error {
	if d == roles.DenyNotAuthor {
		return newError(KindForbidden, ReasonNotPostAuthor, nil)
	}
	return newError(KindForbidden, ReasonNotAuthorized, nil)
}

// ReasonOf returns the stable reason string of a platform error, or "" for other errors
func ReasonOf(err error) string {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Reason
	}
	return ""
}

// KindOf returns the kind of a platform error, or 0 for other errors
func KindOf(err error) Kind {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return 0
}

// IsValidation checks if err is a content validation rejection
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound checks if err is an id range rejection
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsNotVisible checks if err reports a deleted or removed post
func IsNotVisible(err error) bool { return KindOf(err) == KindNotVisible }

// IsForbidden checks if err is an authorization rejection
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsConflict checks if err is a state conflict rejection
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
