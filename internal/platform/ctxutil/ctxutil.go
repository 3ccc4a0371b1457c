// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/rahulrai19/smart-energy/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Credential Injection

// WithAuthToken returns a new context carrying the credential token for
// exactly one outbound call chain.
//
// The token is request-scoped on purpose: the console never keeps a
// process-wide mutable credential header, so concurrent calls and tests
// stay isolated.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAuthToken, token)
}

// GetAuthToken retrieves the credential token from the context.
// Returns an empty string for unauthenticated call chains.
func GetAuthToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxkey.KeyAuthToken).(string)
	return token
}
