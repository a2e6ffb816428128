// Package sqlite provides a SQLite-backed seedlog.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/seedlog"

	// Pure-Go driver, no CGO needed in the container image.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS seed_runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      TEXT    NOT NULL,
    outcome     TEXT    NOT NULL,
    inserted    INTEGER NOT NULL DEFAULT 0,
    error       TEXT    NOT NULL DEFAULT '',
    trace_id    TEXT    NOT NULL DEFAULT '',
    span_id     TEXT    NOT NULL DEFAULT '',
    created_at  TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_seed_runs_created_at ON seed_runs(created_at);
`

// ErrNoRuns is returned by Latest when nothing has been logged yet.
var ErrNoRuns = errors.New("sqlite: no seed runs recorded")

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// Single writer; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends run to the log.
func (r *Repository) Save(ctx context.Context, run *seedlog.Run) error {
	const q = `
		INSERT INTO seed_runs
			(run_id, outcome, inserted, error, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		run.RunID,
		string(run.Outcome),
		run.Inserted,
		run.Error,
		run.TraceID,
		run.SpanID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save seed run %q: %w", run.RunID, err)
	}
	return nil
}

// Latest returns the most recently logged run.
func (r *Repository) Latest(ctx context.Context) (*seedlog.Run, error) {
	const q = `
		SELECT run_id, outcome, inserted, error, trace_id, span_id, created_at
		FROM   seed_runs
		ORDER  BY id DESC
		LIMIT  1`

	var (
		run       seedlog.Run
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, q).Scan(
		&run.RunID,
		&run.Outcome,
		&run.Inserted,
		&run.Error,
		&run.TraceID,
		&run.SpanID,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: latest seed run: %w", err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse time %q: %w", createdAt, err)
	}
	return &run, nil
}

// Count returns how many runs ended with the given outcome.
func (r *Repository) Count(ctx context.Context, outcome seedlog.Outcome) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seed_runs WHERE outcome = ?`, string(outcome)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count %s runs: %w", outcome, err)
	}
	return n, nil
}

// Summary is the seed history at a glance. Latest is nil when no run has
// been logged.
type Summary struct {
	Created int
	Skipped int
	Failed  int
	Latest  *seedlog.Run
}

// Summarize counts runs per outcome and fetches the latest one.
func (r *Repository) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	for _, c := range []struct {
		outcome seedlog.Outcome
		n       *int
	}{
		{seedlog.OutcomeCreated, &s.Created},
		{seedlog.OutcomeSkipped, &s.Skipped},
		{seedlog.OutcomeFailed, &s.Failed},
	} {
		n, err := r.Count(ctx, c.outcome)
		if err != nil {
			return Summary{}, err
		}
		*c.n = n
	}

	latest, err := r.Latest(ctx)
	switch {
	case errors.Is(err, ErrNoRuns):
	case err != nil:
		return Summary{}, err
	default:
		s.Latest = latest
	}
	return s, nil
}
