package roles

import "errors"

var (
	// ErrZeroIdentity is returned when an empty identity is offered as a moderator
	ErrZeroIdentity = errors.New("identity must not be empty")

	// ErrNotModerator is returned when removing an identity that holds no moderator role
	ErrNotModerator = errors.New("identity is not a moderator")

	// ErrMissingOwner is returned when a registry is constructed without an owner
	ErrMissingOwner = errors.New("owner identity is required")
)
