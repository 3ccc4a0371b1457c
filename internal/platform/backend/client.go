// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package backend provides the managed client for the remote monitoring API.

Every remote call of the console core (login, signup, feedback submission,
moderation) goes through this client. It is the only package allowed to import
net/http client primitives.

Core Responsibilities:

  - Encoding: JSON request/response bodies with consistent headers.
  - Credentials: The bearer token is request-scoped, read from the call's
    context via [ctxutil.GetAuthToken] — there is no process-wide mutable
    credential header.
  - Correlation: Every request carries a generated X-Request-ID.
  - Containment: Failures are converted to [apperr.AppError] values; nothing
    escapes as a raw transport error.

The client never retries and imposes no deadline beyond the transport-level
timeout; the UI is the retry mechanism.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rahulrai19/smart-energy/internal/platform/apperr"
	"github.com/rahulrai19/smart-energy/internal/platform/constants"
	"github.com/rahulrai19/smart-energy/internal/platform/ctxutil"
	"github.com/rahulrai19/smart-energy/pkg/uuid"
)

// # Client Definition

// Client encapsulates calls to the monitoring API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

// New creates a backend client for the given base URL.
//
// # Parameters
//   - baseURL: API root, e.g. "http://localhost:5000/api".
//   - logger: Structured logger for transport events.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: constants.RequestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logger,
	}
}

// # Request Helpers

/*
Get issues a GET request and decodes the JSON response into out.

Parameters:
  - ctx: context.Context (carries the request-scoped credential, if any)
  - path: string (path below the API root, e.g. "/feedback")
  - out: any (pointer to the destination struct, or nil to discard the body)

Returns:
  - error: apperr.Transport or apperr.Remote failures
*/
func (client *Client) Get(ctx context.Context, path string, out any) error {
	return client.do(ctx, http.MethodGet, path, nil, out)
}

/*
Post issues a POST request with a JSON body and decodes the response into out.

Parameters:
  - ctx: context.Context
  - path: string
  - body: any (JSON-encoded request payload, or nil)
  - out: any (pointer to the destination struct, or nil)

Returns:
  - error: apperr.Transport or apperr.Remote failures
*/
func (client *Client) Post(ctx context.Context, path string, body, out any) error {
	return client.do(ctx, http.MethodPost, path, body, out)
}

/*
Put issues a PUT request with a JSON body and decodes the response into out.

Parameters:
  - ctx: context.Context
  - path: string
  - body: any
  - out: any

Returns:
  - error: apperr.Transport or apperr.Remote failures
*/
func (client *Client) Put(ctx context.Context, path string, body, out any) error {
	return client.do(ctx, http.MethodPut, path, body, out)
}

// do performs a single round-trip against the monitoring API.
//
// Failure mapping:
//   - network errors         → apperr.Transport (generic operator message)
//   - status >= 400          → apperr.Remote carrying the payload's "error"
//     field when present, an empty message otherwise (call sites apply
//     their own fallback via [Message])
func (client *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := client.newRequest(ctx, method, client.baseURL+path, body)
	if err != nil {
		return apperr.Transport(err)
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		client.log.Debug("backend_transport_error",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", req.Header.Get(constants.HeaderRequestID)),
			slog.Any("error", err),
		)
		return apperr.Transport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apperr.Remote(resp.StatusCode, decodeErrorMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Transport(err)
	}
	return nil
}

// newRequest builds a JSON request with correlation and credential headers.
func (client *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.HeaderRequestID, uuid.New())

	// Credential injection is request-scoped: only call chains that passed
	// through the auth controller's Context() carry a token.
	if token := ctxutil.GetAuthToken(ctx); token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	return req, nil
}

// # Error Payload Extraction

// errorEnvelope is the failure body shape of the monitoring API.
type errorEnvelope struct {
	Error string `json:"error"`
}

// decodeErrorMessage extracts the "error" field from a failure body.
// Returns an empty string when the payload is absent or unreadable.
func decodeErrorMessage(body io.Reader) string {
	var envelope errorEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	return strings.TrimSpace(envelope.Error)
}

/*
Message resolves the operator-facing message for a failed remote call.

Description: Implements the extraction-with-fallback policy — the backend's
"error" payload field wins when present, otherwise the supplied fallback
(e.g. "Login failed") is used. Transport failures always use the fallback.

Parameters:
  - err: error (as returned by Get/Post/Put)
  - fallback: string

Returns:
  - string: Message safe to render inline
*/
func Message(err error, fallback string) string {
	ae := apperr.As(err)
	if ae != nil && ae.Code == apperr.CodeRemote && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
