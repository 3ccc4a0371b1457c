// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package apperr defines the centralized error handling framework for the console.

It provides a rich error type that bridges the gap between low-level transport
failures and the local success/failure results consumed by the UI layer.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: Credential, transport, validation, and remote-payload errors each
    carry a distinct code so call sites can route them (inline message, silent
    log, or blocking alert).
  - Containment: No error crosses a component boundary uncaught; every remote
    call site converts failures into an [AppError].

Every error that leaves a controller or service should be wrapped as an
[AppError] to ensure consistent presentation.
*/
package apperr

import (
	"errors"
)

// AppError is the canonical error type for the console core.
//
// It carries a machine-readable code, a client-safe message, an optional
// remote HTTP status, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for local logging only and is never rendered to the
// operator to avoid leaking transport internals.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "CREDENTIALS", "TRANSPORT").
	Code string `json:"code"`
	// Message is a human-readable description safe to render to the operator.
	Message string `json:"error"`
	// HTTPStatus is the remote response status, when the error originated remotely.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for local logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR results.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Error Codes

const (
	CodeCredentials = "CREDENTIALS"
	CodeTransport   = "TRANSPORT"
	CodeValidation  = "VALIDATION_ERROR"
	CodeRemote      = "REMOTE_ERROR"
	CodeConflict    = "CONFLICT"
	CodeForbidden   = "FORBIDDEN"
)

// # Constructors

// Credentials creates an [AppError] for a rejected login or signup attempt.
// The message is surfaced inline to the operator; session state is untouched.
func Credentials(msg string) *AppError {
	return &AppError{
		Code:    CodeCredentials,
		Message: msg,
	}
}

// Transport creates an [AppError] for a network-level failure. The operator
// message is intentionally generic; the cause is kept for logging.
func Transport(cause error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: "Could not reach the server",
		Cause:   cause,
	}
}

// ValidationError creates an [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Details: details,
	}
}

// Remote creates an [AppError] for a non-2xx backend response.
//
// The message is whatever the backend's error payload carried and may be
// empty; call sites apply their own fallback (e.g. "Login failed").
func Remote(status int, msg string) *AppError {
	return &AppError{
		Code:       CodeRemote,
		Message:    msg,
		HTTPStatus: status,
	}
}

// Conflict creates an [AppError] for an operation rejected because an
// identical operation is still in flight.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: msg,
	}
}

// Forbidden creates an [AppError] for an operation the current identity is
// not privileged to perform.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: msg,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == CodeTransport
}
