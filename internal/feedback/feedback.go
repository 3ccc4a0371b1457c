// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package feedback implements the feedback submission and moderation workflow.

It defines the feedback record model and a stateless gateway service over the
monitoring API's feedback endpoints.

# Architecture

The remote store owns every record. The client holds a read-only cached copy
per fetch and never merges partial updates locally: a mutation is always
followed by a wholesale refetch ("command then refresh"), so the displayed
status only ever reflects the store's authoritative value.
*/
package feedback

import "time"

// # Enumerations

// Category classifies a feedback record.
type Category string

const (
	CategoryQuery   Category = "query"
	CategoryBug     Category = "bug"
	CategoryFeature Category = "feature"
)

// Categories lists every submittable category.
var Categories = []Category{CategoryQuery, CategoryBug, CategoryFeature}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryQuery, CategoryBug, CategoryFeature:
		return true
	}
	return false
}

// Status is the moderation state of a record.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Toggled returns the logical complement: open↔closed. Status changes are a
// single toggle, never an arbitrary write.
func (s Status) Toggled() Status {
	if s == StatusClosed {
		return StatusOpen
	}
	return StatusClosed
}

// # Record

// Record is a single submitted query/bug/feature item with its moderation
// status, exactly as the remote store serializes it.
type Record struct {
	ID             string    `json:"_id"`
	SubmitterName  string    `json:"name"`
	SubmitterEmail string    `json:"email"`
	Category       Category  `json:"type"`
	Message        string    `json:"message"`
	SubmittedAt    time.Time `json:"timestamp"`
	Status         Status    `json:"status"`
}

// normalize fills defaults for fields older records omit. A record with no
// status reads as open.
func (r *Record) normalize() {
	if r.Status == "" {
		r.Status = StatusOpen
	}
}
