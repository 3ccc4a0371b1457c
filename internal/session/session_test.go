// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulrai19/smart-energy/internal/session"
)

/*
TestDeriveRole verifies the role resolution policy: the backend's explicit
role wins, the configured moderator address is only a fallback.
*/
func TestDeriveRole(t *testing.T) {
	tests := []struct {
		name           string
		explicit       string
		email          string
		moderatorEmail string
		want           session.Role
	}{
		{"explicit_moderator", "moderator", "ops@example.com", "", session.RoleModerator},
		{"explicit_member_beats_roster", "member", "mod@example.com", "mod@example.com", session.RoleMember},
		{"roster_fallback_match", "", "mod@example.com", "mod@example.com", session.RoleModerator},
		{"roster_fallback_case_insensitive", "", "MOD@Example.COM", "mod@example.com", session.RoleModerator},
		{"roster_fallback_miss", "", "demo@example.com", "mod@example.com", session.RoleMember},
		{"no_signal_at_all", "", "demo@example.com", "", session.RoleMember},
		{"unknown_explicit_ignored", "superuser", "demo@example.com", "", session.RoleMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.DeriveRole(tt.explicit, tt.email, tt.moderatorEmail)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestSession_Authenticated verifies that only a complete pair counts as an
authenticated session.
*/
func TestSession_Authenticated(t *testing.T) {
	identity := &session.Identity{ID: "u1", Email: "demo@example.com", Role: session.RoleMember}

	assert.False(t, session.Session{}.Authenticated())
	assert.False(t, session.Session{Token: "tok"}.Authenticated())
	assert.False(t, session.Session{Identity: identity}.Authenticated())
	assert.True(t, session.Session{Token: "tok", Identity: identity}.Authenticated())
}

/*
TestBoltStore_RoundTrip verifies that a saved pair survives a simulated
restart (close + reopen) unchanged.
*/
func TestBoltStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := session.NewBoltStore(dir)
	require.NoError(t, err)

	saved := session.Session{
		Token: "opaque-token-1",
		Identity: &session.Identity{
			ID:    "u1",
			Name:  "Demo User",
			Email: "demo@example.com",
			Role:  session.RoleMember,
		},
	}
	require.NoError(t, store.Save(ctx, saved))
	require.NoError(t, store.Close())

	// Simulated reload: a fresh handle over the same state directory
	reopened, err := session.NewBoltStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Authenticated())
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.Identity, loaded.Identity)
}

/*
TestBoltStore_SaveRejectsHalfPair verifies that the store refuses to persist
an incomplete credential pair.
*/
func TestBoltStore_SaveRejectsHalfPair(t *testing.T) {
	ctx := context.Background()

	store, err := session.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	assert.ErrorIs(t, store.Save(ctx, session.Session{Token: "tok"}), session.ErrIncompletePair)
	assert.ErrorIs(t, store.Save(ctx, session.Session{Identity: &session.Identity{ID: "u1"}}), session.ErrIncompletePair)

	// Nothing was persisted by the rejected writes
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

/*
TestBoltStore_Clear verifies that clearing removes the pair and that clearing
an empty store is a harmless no-op.
*/
func TestBoltStore_Clear(t *testing.T) {
	ctx := context.Background()

	store, err := session.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	// 1. Clearing an empty store succeeds
	require.NoError(t, store.Clear(ctx))

	// 2. Save then clear leaves the store empty
	require.NoError(t, store.Save(ctx, session.Session{
		Token:    "tok",
		Identity: &session.Identity{ID: "u1", Email: "demo@example.com", Role: session.RoleMember},
	}))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
	assert.Nil(t, loaded.Identity)
}
