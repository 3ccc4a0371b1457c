// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

package feedback

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rahulrai19/smart-energy/internal/auth"
	"github.com/rahulrai19/smart-energy/internal/platform/apperr"
	"github.com/rahulrai19/smart-energy/internal/platform/backend"
	"github.com/rahulrai19/smart-energy/internal/platform/validate"
)

// # Service Definition

// Service is the gateway over the feedback endpoints.
//
// It owns no persistent state; the record cache is a transient view that is
// invalidated and refetched after every mutation. Failures are never retried
// automatically — the operator re-clicking is the retry mechanism.
type Service struct {
	backend *backend.Client
	auth    *auth.Controller
	log     *slog.Logger

	mu    sync.RWMutex
	cache []Record

	inFlight atomic.Bool
}

// NewService constructs a [Service] with its dependencies. The auth
// controller supplies the request-scoped credential and the privileged
// self-refresh decision.
func NewService(client *backend.Client, authController *auth.Controller, logger *slog.Logger) *Service {
	return &Service{
		backend: client,
		auth:    authController,
		log:     logger,
	}
}

// # Wire Payloads

type submitRequest struct {
	Type    Category `json:"type"`
	Message string   `json:"message"`
}

type statusRequest struct {
	Status Status `json:"status"`
}

// # Operations

/*
Submit sends a new feedback record tied to the current identity.

Description: The backend attributes the record to the authenticated caller;
the client sends only category and message. When the caller is privileged,
a successful submission triggers a cache refresh so the moderator sees their
own record land (the self-test behavior). Failures carry no extracted
message — the caller renders its generic banner.

Parameters:
  - ctx: context.Context
  - category: Category
  - message: string

Returns:
  - error: Validation, conflict, or remote failures
*/
func (service *Service) Submit(ctx context.Context, category Category, message string) error {
	v := &validate.Validator{}
	if err := v.
		OneOf("category", string(category), string(CategoryQuery), string(CategoryBug), string(CategoryFeature)).
		Required("message", message).
		Err(); err != nil {
		return err
	}

	// Fire-once per user action.
	if !service.inFlight.CompareAndSwap(false, true) {
		return apperr.Conflict("Another request is still pending")
	}
	defer service.inFlight.Store(false)

	requestCtx := service.auth.Context(ctx)
	if err := service.backend.Post(requestCtx, "/feedback", submitRequest{Type: category, Message: message}, nil); err != nil {
		return err
	}

	service.log.Info("feedback submitted", slog.String("category", string(category)))

	// Self-test refresh: a privileged submitter sees the table update.
	if service.auth.Current().Privileged() {
		service.Refresh(ctx)
	}
	return nil
}

/*
Refresh fetches the full current record set and replaces the cache wholesale.

Description: Records keep the remote store's order; no client-side
reordering. Every failure is swallowed to a log-only path — a listing
failure must never surface an operator-facing error, it only leaves the
cache unchanged. Concurrent refreshes race benignly: the last one to
resolve wins, which is accepted under the single-operator assumption.

Parameters:
  - ctx: context.Context
*/
func (service *Service) Refresh(ctx context.Context) {
	requestCtx := service.auth.Context(ctx)

	var records []Record
	if err := service.backend.Get(requestCtx, "/feedback", &records); err != nil {
		service.log.Warn("feedback listing failed, keeping cached view",
			slog.Any("error", err),
		)
		return
	}

	for i := range records {
		records[i].normalize()
	}

	service.mu.Lock()
	service.cache = records
	service.mu.Unlock()

	service.log.Debug("feedback cache replaced", slog.Int("records", len(records)))
}

// Records returns a copy of the cached record view, in remote order.
func (service *Service) Records() []Record {
	service.mu.RLock()
	defer service.mu.RUnlock()

	records := make([]Record, len(service.cache))
	copy(records, service.cache)
	return records
}

/*
ToggleStatus flips a record's moderation status (open↔closed).

Description: Strict command-then-refresh — the refetch starts only after the
mutation's success response, and there is no optimistic local update: the
displayed status changes only once the refetch succeeds. If the refetch
fails the cache deliberately keeps the previous (now stale) state. A failed
mutation returns a blocking error for the operator.

Parameters:
  - ctx: context.Context
  - id: string (must be present in the cached view)

Returns:
  - error: Validation (unknown record), conflict, or remote failures
*/
func (service *Service) ToggleStatus(ctx context.Context, id string) error {
	current, found := service.find(id)
	if !found {
		return validate.RequiredError("id", "Unknown feedback record")
	}

	if !service.inFlight.CompareAndSwap(false, true) {
		return apperr.Conflict("Another request is still pending")
	}
	defer service.inFlight.Store(false)

	next := current.Status.Toggled()
	requestCtx := service.auth.Context(ctx)
	if err := service.backend.Put(requestCtx, "/feedback/"+id, statusRequest{Status: next}, nil); err != nil {
		service.log.Warn("status toggle failed",
			slog.String("id", id),
			slog.Any("error", err),
		)
		return err
	}

	service.log.Info("feedback status toggled",
		slog.String("id", id),
		slog.String("status", string(next)),
	)

	// The refresh is sequential with the mutation, never speculative.
	service.Refresh(ctx)
	return nil
}

// find looks a record up in the cached view.
func (service *Service) find(id string) (Record, bool) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	for _, record := range service.cache {
		if record.ID == id {
			return record, true
		}
	}
	return Record{}, false
}
