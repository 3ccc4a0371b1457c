// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulrai19/smart-energy/internal/auth"
	"github.com/rahulrai19/smart-energy/internal/console"
	"github.com/rahulrai19/smart-energy/internal/feedback"
	"github.com/rahulrai19/smart-energy/internal/nav"
	"github.com/rahulrai19/smart-energy/internal/platform/backend"
	"github.com/rahulrai19/smart-energy/internal/platform/config"
	"github.com/rahulrai19/smart-energy/internal/session"
)

type nullWriter struct{}

func (*nullWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeAPI serves login plus a small stateful feedback set.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	records := []map[string]any{
		{"_id": "fb-1", "name": "Demo User", "email": "demo@example.com",
			"type": "bug", "message": "Graph doesn't load",
			"timestamp": time.Now().UTC(), "status": "open"},
	}

	router := chi.NewRouter()
	router.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")
		if req.Password != "pass123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		role := "member"
		if strings.HasPrefix(req.Email, "mod@") {
			role = "moderator"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"user":         map[string]string{"id": "u1", "name": "Demo User", "email": req.Email, "role": role},
		})
	})
	router.Get("/feedback", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	})
	router.Post("/feedback", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Put("/feedback/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		records[0]["status"] = req.Status
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// runScript executes a command script against a freshly wired console and
// returns everything it printed.
func runScript(t *testing.T, apiURL, script string) string {
	t.Helper()
	ctx := context.Background()

	store, err := session.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(&nullWriter{}, nil))
	client := backend.New(apiURL, logger)
	cfg := &config.Config{ModeratorEmail: "mod@example.com"}

	authController := auth.NewController(store, client, cfg, logger)
	require.NoError(t, authController.Restore(ctx))

	feedbackService := feedback.NewService(client, authController, logger)

	var out bytes.Buffer
	shell := console.New(authController, nav.NewController(), feedbackService, logger, strings.NewReader(script), &out)
	require.NoError(t, shell.Run(ctx))

	return out.String()
}

/*
TestConsole_LoginFlow verifies the unauthenticated flow end to end: a
rejected attempt surfaces the backend's message inline, a successful one
mounts the shell at the dashboard.
*/
func TestConsole_LoginFlow(t *testing.T) {
	server := fakeAPI(t)

	out := runScript(t, server.URL,
		"login demo@example.com wrongpass\n"+
			"login demo@example.com pass123\n"+
			"whoami\n"+
			"quit\n")

	assert.Contains(t, out, "✗ Invalid credentials")
	assert.Contains(t, out, "[ dashboard ]")
	assert.Contains(t, out, "Demo User <demo@example.com> (member)")
}

/*
TestConsole_MemberFeedbackSubmission verifies that a plain member sees the
submission form, never the moderation table, and gets the success banner.
*/
func TestConsole_MemberFeedbackSubmission(t *testing.T) {
	server := fakeAPI(t)

	out := runScript(t, server.URL,
		"login demo@example.com pass123\n"+
			"go feedback\n"+
			"feedback submit bug Graph doesn't load\n"+
			"quit\n")

	assert.Contains(t, out, "Have a question or found a bug?")
	assert.Contains(t, out, "✓ Thank you! Your feedback has been submitted successfully.")
	// The privileged table is never rendered for this identity.
	assert.NotContains(t, out, "feedback toggle")
}

/*
TestConsole_ModeratorToggle verifies the moderation surface: the table
renders, and a toggle flips the displayed status after the refetch.
*/
func TestConsole_ModeratorToggle(t *testing.T) {
	server := fakeAPI(t)

	out := runScript(t, server.URL,
		"login mod@example.com pass123\n"+
			"go feedback\n"+
			"feedback toggle fb-1\n"+
			"quit\n")

	assert.Contains(t, out, "Graph doesn't load")
	assert.Contains(t, out, "closed")
}

/*
TestConsole_OverlayLifecycle verifies the overlay command and its
unavailability on the assistant view.
*/
func TestConsole_OverlayLifecycle(t *testing.T) {
	server := fakeAPI(t)

	out := runScript(t, server.URL,
		"login demo@example.com pass123\n"+
			"overlay\n"+
			"go assistant\n"+
			"overlay\n"+
			"quit\n")

	assert.Contains(t, out, "Assistant overlay opened.")
	assert.Contains(t, out, "[ dashboard +overlay ]")
	assert.Contains(t, out, "The assistant is already on screen.")
	assert.Contains(t, out, "[ assistant ]")
}

/*
TestConsole_LogoutReturnsToLogin verifies that logout unmounts the shell and
the next render is the sign-in flow.
*/
func TestConsole_LogoutReturnsToLogin(t *testing.T) {
	server := fakeAPI(t)

	out := runScript(t, server.URL,
		"login demo@example.com pass123\n"+
			"logout\n"+
			"quit\n")

	assert.Contains(t, out, "Signed out.")
	assert.Contains(t, out, "[ sign in ]")
}
