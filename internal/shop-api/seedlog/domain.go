// Package seedlog keeps an append-only record of catalog seed runs.
//
// Each run writes one row with its outcome and the trace it ran under, so a
// double seed (or a failed one) can be traced back to the request that
// caused it.
package seedlog

import (
	"context"
	"time"
)

type Outcome string

const (
	OutcomeCreated Outcome = "CREATED"
	OutcomeSkipped Outcome = "SKIPPED"
	OutcomeFailed  Outcome = "FAILED"
)

// Run is a single row in the seed_runs table.
type Run struct {
	RunID   string
	Outcome Outcome

	// Inserted is the number of products written by this run, including
	// the ones written before a failure.
	Inserted int

	// Error is empty unless Outcome is OutcomeFailed.
	Error string

	TraceID   string
	SpanID    string
	CreatedAt time.Time
}

// Repository persists seed runs. Implementations must be safe for
// concurrent use.
type Repository interface {
	Save(ctx context.Context, run *Run) error
}
