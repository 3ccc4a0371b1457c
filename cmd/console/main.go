// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

// Command console is the entry point for the Smart Energy interactive console.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the durable session store (bbolt).
//  4. Construct the backend client and controllers.
//  5. Restore the persisted session (exactly once, before anything renders).
//  6. Run the interactive loop until EOF, "quit", or an OS signal.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rahulrai19/smart-energy/internal/auth"
	"github.com/rahulrai19/smart-energy/internal/console"
	"github.com/rahulrai19/smart-energy/internal/feedback"
	"github.com/rahulrai19/smart-energy/internal/nav"
	"github.com/rahulrai19/smart-energy/internal/platform/backend"
	"github.com/rahulrai19/smart-energy/internal/platform/config"
	"github.com/rahulrai19/smart-energy/internal/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	// Logs go to stderr; stdout belongs to the interactive surface.
	rawLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	log := rawLog.With(slog.String("app", "smart-energy"))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "smart-energy"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	// ── 3. Session Store ──────────────────────────────────────────────────
	store, err := session.NewBoltStore(cfg.StateDir)
	must(log, err, "open session store")
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Error("session store close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Controllers ────────────────────────────────────────────────────
	client := backend.New(cfg.APIBaseURL, log)
	authController := auth.NewController(store, client, cfg, log)
	navController := nav.NewController()
	feedbackService := feedback.NewService(client, authController, log)

	// Root context cancelled by OS signals so the loop unwinds and the
	// deferred store close runs.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// ── 5. Session Restoration ────────────────────────────────────────────
	// Must complete before the first render; a failure degrades to the
	// unauthenticated flow rather than aborting startup.
	if err := authController.Restore(ctx); err != nil {
		log.Warn("session restore failed", slog.Any("error", err))
	}

	// ── 6. Interactive Loop ───────────────────────────────────────────────
	shell := console.New(authController, navController, feedbackService, log, os.Stdin, os.Stdout)
	must(log, shell.Run(ctx), "run console")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
