// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package auth implements the client-side authentication lifecycle.

It orchestrates login, signup, and logout against the remote monitoring API,
and reconciles the durable session store with the in-memory session it
publishes to every consumer.

Architecture:

  - Controller: The only writer of the session store and the only component
    allowed to mint authenticated call contexts.
  - Restoration: Runs exactly once at startup; consumers observe a "loading"
    state until it completes, never a transient unauthenticated flash.
  - Delegation: Credential verification happens remotely; this package only
    manages the client-side result.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rahulrai19/smart-energy/internal/platform/apperr"
	"github.com/rahulrai19/smart-energy/internal/platform/backend"
	"github.com/rahulrai19/smart-energy/internal/platform/config"
	"github.com/rahulrai19/smart-energy/internal/platform/ctxutil"
	"github.com/rahulrai19/smart-energy/internal/platform/validate"
	"github.com/rahulrai19/smart-energy/internal/session"
)

// # Controller Definition

// Controller owns the in-memory session mirror and its durable store.
//
// # Concurrency
//
// The console drives the controller from a single cooperative loop, but the
// controller is safe for library consumers too: the published session is
// guarded by a read-write mutex and remote round-trips are serialized by an
// in-flight guard.
type Controller struct {
	store          session.Store
	backend        *backend.Client
	moderatorEmail string
	log            *slog.Logger

	mu      sync.RWMutex
	current session.Session
	loading bool

	restoreOnce sync.Once
	inFlight    atomic.Bool
}

// NewController constructs a [Controller] with its dependencies.
//
// The controller starts in the loading state; [Controller.Restore] must run
// before any gated view consults [Controller.Current].
func NewController(store session.Store, client *backend.Client, cfg *config.Config, logger *slog.Logger) *Controller {
	return &Controller{
		store:          store,
		backend:        client,
		moderatorEmail: cfg.ModeratorEmail,
		log:            logger,
		loading:        true,
	}
}

// # Wire Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// identityPayload is the user object of the authentication response.
// The role field is optional; older backends omit it.
type identityPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	User        identityPayload `json:"user"`
}

// # Session Restoration

/*
Restore reconciles the durable store with the published session.

Description: Runs exactly once per controller lifetime. A complete persisted
pair is published as the current session; an absent or torn pair publishes
the empty session. A persisted token that parses as a JWT with an elapsed
expiry is scrubbed instead of being published as a live session. In every
case the loading flag drops only after the outcome is known.

Parameters:
  - ctx: context.Context

Returns:
  - error: Storage retrieval failures (the empty session is still published)
*/
func (controller *Controller) Restore(ctx context.Context) error {
	var restoreErr error

	controller.restoreOnce.Do(func() {
		restored := session.Session{}

		stored, err := controller.store.Load(ctx)
		switch {
		case err != nil:
			restoreErr = fmt.Errorf("auth_restore_load_failed: %w", err)
			controller.log.Warn("session restore failed, starting unauthenticated",
				slog.Any("error", err),
			)

		case stored.Authenticated() && tokenExpired(stored.Token):
			controller.log.Info("persisted session expired, scrubbing",
				slog.String("email", stored.Identity.Email),
			)
			if clearErr := controller.store.Clear(ctx); clearErr != nil {
				controller.log.Warn("expired session scrub failed", slog.Any("error", clearErr))
			}

		default:
			restored = stored
		}

		// Publish the outcome and complete startup in one critical section so
		// no consumer can observe loading=false with a stale session.
		controller.mu.Lock()
		controller.current = restored
		controller.loading = false
		controller.mu.Unlock()
	})

	return restoreErr
}

// tokenExpired reports whether the persisted credential is a JWT whose
// expiry has elapsed. Opaque (non-JWT) tokens are never considered expired;
// the backend remains the authority on their validity.
func tokenExpired(token string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

// # Authentication Flow

/*
Login authenticates against the monitoring API and establishes the session.

Description: On success the credential pair is persisted, the new session is
published, and subsequent calls minted via [Controller.Context] carry the
token. On failure the existing session state is untouched and the returned
error's message follows the extraction-with-fallback policy ("Login failed").

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - error: Validation, conflict (attempt already pending), or credential failures
*/
func (controller *Controller) Login(ctx context.Context, email, password string) error {
	v := &validate.Validator{}
	if err := v.
		Required("email", email).
		Email("email", email).
		Required("password", password).
		Err(); err != nil {
		return err
	}

	// Duplicate-submission guard: one credential round-trip at a time.
	if !controller.inFlight.CompareAndSwap(false, true) {
		return apperr.Conflict("Another request is still pending")
	}
	defer controller.inFlight.Store(false)

	var resp loginResponse
	if err := controller.backend.Post(ctx, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		failure := apperr.Credentials(backend.Message(err, "Login failed"))
		failure.Cause = err
		controller.log.Info("login rejected", slog.String("email", email))
		return failure
	}

	established := session.Session{
		Token: resp.AccessToken,
		Identity: &session.Identity{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
			Role:  session.DeriveRole(resp.User.Role, resp.User.Email, controller.moderatorEmail),
		},
	}

	// Persist the pair. A storage failure degrades to a process-lifetime
	// session rather than rejecting a successful authentication.
	if err := controller.store.Save(ctx, established); err != nil {
		controller.log.Warn("session persistence failed", slog.Any("error", err))
	}

	controller.mu.Lock()
	controller.current = established
	controller.mu.Unlock()

	controller.log.Info("session established",
		slog.String("email", established.Identity.Email),
		slog.String("role", string(established.Identity.Role)),
	)
	return nil
}

/*
Signup creates an account without authenticating it.

Description: Reports success or failure only; the published session and the
durable store are never touched. Failure messages follow the same
extraction policy as Login, with "Signup failed" as the fallback.

Parameters:
  - ctx: context.Context
  - name: string
  - email: string
  - password: string

Returns:
  - error: Validation, conflict, or remote failures
*/
func (controller *Controller) Signup(ctx context.Context, name, email, password string) error {
	v := &validate.Validator{}
	if err := v.
		Required("name", name).
		Required("email", email).
		Email("email", email).
		Required("password", password).
		MinLen("password", password, 6).
		Err(); err != nil {
		return err
	}

	if !controller.inFlight.CompareAndSwap(false, true) {
		return apperr.Conflict("Another request is still pending")
	}
	defer controller.inFlight.Store(false)

	if err := controller.backend.Post(ctx, "/signup", signupRequest{Name: name, Email: email, Password: password}, nil); err != nil {
		failure := apperr.Credentials(backend.Message(err, "Signup failed"))
		failure.Cause = err
		return failure
	}

	controller.log.Info("account created", slog.String("email", email))
	return nil
}

/*
Logout destroys the session.

Description: A pure local operation that always succeeds: the durable pair is
cleared best-effort (a storage failure is only logged), the published session
resets to empty, and no credential is attached to later calls.

Parameters:
  - ctx: context.Context
*/
func (controller *Controller) Logout(ctx context.Context) {
	if err := controller.store.Clear(ctx); err != nil {
		controller.log.Warn("session store clear failed", slog.Any("error", err))
	}

	controller.mu.Lock()
	controller.current = session.Session{}
	controller.mu.Unlock()

	controller.log.Info("session destroyed")
}

// # Published State

// Current returns a copy of the published session. The empty session means
// "render the unauthenticated flow".
func (controller *Controller) Current() session.Session {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.current
}

// Loading reports whether startup restoration is still pending. While true,
// consumers must render neither the authenticated nor the unauthenticated flow.
func (controller *Controller) Loading() bool {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.loading
}

// Context returns ctx with the current credential attached request-scoped.
// For an empty session the context is returned unchanged, so downstream
// calls go out unauthenticated rather than with a stale token.
func (controller *Controller) Context(ctx context.Context) context.Context {
	current := controller.Current()
	if !current.Authenticated() {
		return ctx
	}
	return ctxutil.WithAuthToken(ctx, current.Token)
}
