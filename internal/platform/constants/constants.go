// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package constants provides centralized, immutable values for the console core.

It defines default timeouts and cross-cutting keys that are shared between
different layers of the client.

Categories:

  - Outbound Timing: transport-level timeouts for backend round-trips.
  - Persistence: names of the durable session database artifacts.
  - Wire Format: JSON field identifiers of the monitoring API.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "smart-energy-console"
	AppVersion = "0.1.0-dev"
)

// # Outbound Timing

const (
	// RequestTimeout is the transport-level deadline for a single backend
	// round-trip. The core imposes no additional per-operation deadline and
	// never retries; a request either resolves or rejects within this window.
	RequestTimeout = 15 * time.Second
)

// # Persistence

const (
	// SessionDBFile is the bbolt database file name under STATE_DIR.
	SessionDBFile = "session.db"
)

// # Wire Format (monitoring API JSON fields)

const (
	FieldAccessToken = "access_token"
	FieldUser        = "user"
	FieldError       = "error"
	FieldStatus      = "status"
	FieldType        = "type"
	FieldMessage     = "message"
)

// # Transport Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)
