package roles

import (
	"sort"
)

// Role is a permission level required by an operation
type Role int

const (
	// RoleAuthor requires the requester to be the owner of the resource (post or comment author)
	RoleAuthor Role = iota
	// RoleModerator requires the requester to hold the moderator role
	RoleModerator
	// RoleOwner requires the requester to be the platform owner
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleAuthor:
		return "author"
	case RoleModerator:
		return "moderator"
	case RoleOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// Decision is the typed result of an authorization query
type Decision int

const (
	Allow Decision = iota
	DenyNotAuthor
	DenyNotModerator
	DenyNotOwner
)

// Allowed reports whether the decision grants access
func (d Decision) Allowed() bool {
	return d == Allow
}

// Registry owns the platform owner and the moderator set.
// The owner is fixed at construction; moderators change only through
// AddModerator and RemoveModerator.
type Registry struct {
	moderators map[string]struct{}
	owner      string
}

// NewRegistry creates a registry for the given owner identity
func NewRegistry(owner string) (*Registry, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}
	return &Registry{
		owner:      owner,
		moderators: make(map[string]struct{}),
	}, nil
}

// Owner returns the immutable owner identity
func (r *Registry) Owner() string {
	return r.owner
}

// AddModerator grants the moderator role. Re-adding an existing moderator is a no-op.
func (r *Registry) AddModerator(identity string) error {
	if identity == "" {
		return ErrZeroIdentity
	}
	r.moderators[identity] = struct{}{}
	return nil
}

// RemoveModerator revokes the moderator role
func (r *Registry) RemoveModerator(identity string) error {
	if _, ok := r.moderators[identity]; !ok {
		return ErrNotModerator
	}
	delete(r.moderators, identity)
	return nil
}

// IsModerator reports whether identity currently holds the moderator role
func (r *Registry) IsModerator(identity string) bool {
	if identity == "" {
		return false
	}
	_, ok := r.moderators[identity]
	return ok
}

// IsOwner reports whether identity is the platform owner
func (r *Registry) IsOwner(identity string) bool {
	return identity != "" && identity == r.owner
}

// Moderators returns the moderator set in sorted order
func (r *Registry) Moderators() []string {
	out := make([]string, 0, len(r.moderators))
	for id := range r.moderators {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Authorize answers whether requester satisfies the required role.
// resourceOwner is only consulted for RoleAuthor.
func (r *Registry) Authorize(requester string, required Role, resourceOwner string) Decision {
	switch required {
	case RoleAuthor:
		if requester == "" || requester != resourceOwner {
			return DenyNotAuthor
		}
		return Allow
	case RoleModerator:
		if !r.IsModerator(requester) {
			return DenyNotModerator
		}
		return Allow
	case RoleOwner:
		if !r.IsOwner(requester) {
			return DenyNotOwner
		}
		return Allow
	default:
		return DenyNotOwner
	}
}
