// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

package session

import "context"

// # Durable Session Access

// Store defines the persistence contract for the credential pair.
//
// # Pairing Invariant
//
// Implementations must write and clear the token and identity atomically: no
// sequence of operations (including a crash between operations) may leave
// exactly one of the two present. A half pair found on load is treated as
// no session.
type Store interface {

	/*
		Load reads the persisted session.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - Session: The stored credential pair, or the empty session when absent
		  - error: Storage retrieval failures
	*/
	Load(ctx context.Context) (Session, error)

	/*
		Save persists a complete credential pair, replacing any previous one.

		Parameters:
		  - ctx: context.Context
		  - session: Session (must be Authenticated)

		Returns:
		  - error: Persistence failures, or a validation failure for a half pair
	*/
	Save(ctx context.Context, session Session) error

	/*
		Clear removes the persisted pair. Clearing an empty store is a no-op.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - error: Persistence failures
	*/
	Clear(ctx context.Context) error

	/*
		Close releases the underlying storage handle.

		Returns:
		  - error: Shutdown failures
	*/
	Close() error
}
