// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package session implements the client-side identity model and its durable store.

It defines the core entities (Session, Identity) and the persistence contract
that survives console restarts.

# Architecture

This layer is the "Truth" of the client. A Session pairs the opaque credential
token with the authenticated identity; the two are set and cleared together —
there is no valid state with one present and the other absent. The auth
controller is the only writer.
*/
package session

import "strings"

// # Domain Entities

// Identity is the authenticated user's profile data.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the in-memory pairing of credential token and identity
// representing "who is currently using the console".
//
// The zero value is the empty (unauthenticated) session.
type Session struct {
	Token    string    `json:"-"` // Opaque credential. Never serialized alongside the identity.
	Identity *Identity `json:"identity,omitempty"`
}

// Authenticated reports whether the session holds a complete credential pair.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Identity != nil
}

// Privileged reports whether the session's identity carries the moderator role.
// An empty session is never privileged.
func (s Session) Privileged() bool {
	return s.Identity != nil && s.Identity.Role.Privileged()
}

// # Roles

// Role represents the UI-level authorization designation of an identity.
//
// It gates which feedback pane is rendered — it is a display convenience,
// not a security boundary; the backend independently authorizes every
// privileged endpoint.
type Role string

const (
	// Default designation for standard registered users
	RoleMember Role = "member"

	// Grants the moderation table instead of the submission form
	RoleModerator Role = "moderator"
)

// Privileged reports whether the role grants access to moderation views.
func (r Role) Privileged() bool {
	return r == RoleModerator
}

// DeriveRole resolves an identity's role from the authentication response.
//
// The backend's explicit role field wins. When the backend omits it, the
// role falls back to matching the identity's email against the configured
// moderator address — never a literal in code, so a roster change is a
// config change, not a release.
func DeriveRole(explicit, email, moderatorEmail string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(explicit))) {
	case RoleModerator:
		return RoleModerator
	case RoleMember:
		return RoleMember
	}

	if moderatorEmail != "" && strings.EqualFold(strings.TrimSpace(email), moderatorEmail) {
		return RoleModerator
	}
	return RoleMember
}
