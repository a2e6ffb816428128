package seedlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewRun builds a Run stamped with the span active in ctx. Without an active
// span the trace fields stay empty.
func NewRun(ctx context.Context, runID string, outcome Outcome, inserted int, runErr error) *Run {
	run := &Run{
		RunID:     runID,
		Outcome:   outcome,
		Inserted:  inserted,
		CreatedAt: time.Now().UTC(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		run.TraceID = sc.TraceID().String()
		run.SpanID = sc.SpanID().String()
	}
	return run
}
