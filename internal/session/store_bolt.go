// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/rahulrai19/smart-energy/internal/platform/constants"
)

// # BoltDB-backed Store

const (
	sessionBucket = "session"

	keyToken    = "token"
	keyIdentity = "identity"
)

// ErrIncompletePair is returned by Save when the session is missing either
// the token or the identity.
var ErrIncompletePair = errors.New("session: token and identity must be stored as a pair")

// BoltStore implements [Store] using a local bbolt database file.
//
// Both keys of the credential pair live in a single bucket and every write
// or delete spans one transaction, which is what upholds the pairing
// invariant across crashes.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the session database under dataDir.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	// Ensure state directory exists
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("session: failed to create state directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, constants.SessionDBFile)
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("session: failed to open database: %w", err)
	}

	// Initialize bucket
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session: failed to initialize bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

/*
Load reads the persisted credential pair.

Description: A half pair (token without identity or vice versa) is scrubbed
inside the same view of the store and reported as no session, so a torn state
can never be published.

Parameters:
  - ctx: context.Context

Returns:
  - Session: Stored pair or the empty session
  - error: Storage retrieval failures
*/
func (store *BoltStore) Load(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	var (
		token    []byte
		identity []byte
	)
	err := store.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		token = bucket.Get([]byte(keyToken))
		identity = bucket.Get([]byte(keyIdentity))
		return nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("session_store_load_failed: %w", err)
	}

	// Absent pair: empty session
	if token == nil && identity == nil {
		return Session{}, nil
	}

	// Half pair: scrub and report absent
	if token == nil || identity == nil {
		if err := store.Clear(ctx); err != nil {
			return Session{}, err
		}
		return Session{}, nil
	}

	var id Identity
	if err := json.Unmarshal(identity, &id); err != nil {
		// Unreadable identity is as good as absent; scrub the pair.
		if clearErr := store.Clear(ctx); clearErr != nil {
			return Session{}, clearErr
		}
		return Session{}, nil
	}

	return Session{Token: string(token), Identity: &id}, nil
}

/*
Save persists a complete credential pair in one transaction.

Parameters:
  - ctx: context.Context
  - session: Session

Returns:
  - error: ErrIncompletePair or persistence failures
*/
func (store *BoltStore) Save(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !session.Authenticated() {
		return ErrIncompletePair
	}

	identity, err := json.Marshal(session.Identity)
	if err != nil {
		return fmt.Errorf("session_store_encode_failed: %w", err)
	}

	err = store.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if err := bucket.Put([]byte(keyToken), []byte(session.Token)); err != nil {
			return err
		}
		return bucket.Put([]byte(keyIdentity), identity)
	})
	if err != nil {
		return fmt.Errorf("session_store_save_failed: %w", err)
	}
	return nil
}

/*
Clear removes both keys of the pair in one transaction.

Parameters:
  - ctx: context.Context

Returns:
  - error: Persistence failures
*/
func (store *BoltStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := store.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if err := bucket.Delete([]byte(keyToken)); err != nil {
			return err
		}
		return bucket.Delete([]byte(keyIdentity))
	})
	if err != nil {
		return fmt.Errorf("session_store_clear_failed: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (store *BoltStore) Close() error {
	return store.db.Close()
}
