// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package viewgate decides which flow the console renders for a given session.

It is deliberately a set of pure functions with no hidden state: the same
session always yields the same routing decision, so re-rendering is
idempotent and trivially testable.

The gate is a UI convenience, not a security boundary — the backend
independently authorizes every privileged endpoint.
*/
package viewgate

import "github.com/rahulrai19/smart-energy/internal/session"

// # Top-level Routing

// Route identifies the flow the console must mount.
type Route string

const (
	// RouteLoading renders only a loading indicator while restoration is pending.
	RouteLoading Route = "loading"

	// RouteLogin renders the sign-in flow.
	RouteLogin Route = "login"

	// RouteSignup renders the account-creation flow.
	RouteSignup Route = "signup"

	// RouteShell renders the authenticated console shell.
	RouteShell Route = "shell"
)

/*
Decide routes a session to its flow.

Parameters:
  - current: session.Session (the published session)
  - loading: bool (true while startup restoration is pending)
  - wantSignup: bool (the user explicitly asked for the signup flow)

Returns:
  - Route: Flow to render
*/
func Decide(current session.Session, loading, wantSignup bool) Route {
	// Neither flow renders while restoration is pending; this is what
	// prevents the login-screen flash for an already-authenticated reload.
	if loading {
		return RouteLoading
	}
	if !current.Authenticated() {
		if wantSignup {
			return RouteSignup
		}
		return RouteLogin
	}
	return RouteShell
}

// # Feedback View Routing

// Pane identifies which feedback surface renders inside the shell.
type Pane string

const (
	// PaneForm is the submission form shown to non-privileged identities.
	PaneForm Pane = "form"

	// PaneModeration is the privileged moderation table.
	PaneModeration Pane = "moderation"
)

/*
FeedbackPane decides the feedback view's surface for an identity.

Description: The decision reads the identity's role on every call rather
than caching it, so a roster change takes effect on the next render, not
the next login.

Parameters:
  - current: session.Session

Returns:
  - Pane: Surface to render
*/
func FeedbackPane(current session.Session) Pane {
	if current.Privileged() {
		return PaneModeration
	}
	return PaneForm
}
