package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerDID = "did:plc:owner"
	modDID   = "did:plc:moderator1"
	userDID  = "did:plc:user"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(ownerDID)
	require.NoError(t, err)
	return r
}

func TestNewRegistry_RequiresOwner(t *testing.T) {
	r, err := NewRegistry("")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrMissingOwner)
}

func TestRegistry_AddModerator(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.AddModerator(modDID))
	assert.True(t, r.IsModerator(modDID))
	assert.False(t, r.IsModerator(userDID))

	// Re-adding is a no-op success
	require.NoError(t, r.AddModerator(modDID))
	assert.Equal(t, []string{modDID}, r.Moderators())
}

func TestRegistry_AddModerator_ZeroIdentity(t *testing.T) {
	r := newTestRegistry(t)

	err := r.AddModerator("")
	assert.ErrorIs(t, err, ErrZeroIdentity)
	assert.Empty(t, r.Moderators())
}

func TestRegistry_RemoveModerator(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.AddModerator(modDID))

	require.NoError(t, r.RemoveModerator(modDID))
	assert.False(t, r.IsModerator(modDID))

	err := r.RemoveModerator(modDID)
	assert.ErrorIs(t, err, ErrNotModerator)
}

func TestRegistry_IsOwner(t *testing.T) {
	r := newTestRegistry(t)

	assert.True(t, r.IsOwner(ownerDID))
	assert.False(t, r.IsOwner(userDID))
	assert.False(t, r.IsOwner(""))
	assert.Equal(t, ownerDID, r.Owner())
}

func TestRegistry_OwnerIsNotImplicitModerator(t *testing.T) {
	r := newTestRegistry(t)
	assert.False(t, r.IsModerator(ownerDID))
}

func TestRegistry_Moderators_Sorted(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.AddModerator("did:plc:zzz"))
	require.NoError(t, r.AddModerator("did:plc:aaa"))
	require.NoError(t, r.AddModerator("did:plc:mmm"))

	assert.Equal(t, []string{"did:plc:aaa", "did:plc:mmm", "did:plc:zzz"}, r.Moderators())
}

func TestRegistry_Authorize(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.AddModerator(modDID))

	tests := []struct {
		name          string
		requester     string
		role          Role
		resourceOwner string
		want          Decision
	}{
		{"author matches", userDID, RoleAuthor, userDID, Allow},
		{"author mismatch", modDID, RoleAuthor, userDID, DenyNotAuthor},
		{"empty requester is never author", "", RoleAuthor, "", DenyNotAuthor},
		{"moderator allowed", modDID, RoleModerator, "", Allow},
		{"non-moderator denied", userDID, RoleModerator, "", DenyNotModerator},
		{"owner is not a moderator", ownerDID, RoleModerator, "", DenyNotModerator},
		{"owner allowed", ownerDID, RoleOwner, "", Allow},
		{"moderator is not owner", modDID, RoleOwner, "", DenyNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Authorize(tt.requester, tt.role, tt.resourceOwner)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == Allow, got.Allowed())
		})
	}
}
