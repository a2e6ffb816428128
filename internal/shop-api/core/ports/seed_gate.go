package ports

import "context"

// SeedGate serializes seed runs so the emptiness probe and the inserts that
// follow it are never interleaved with another run.
type SeedGate interface {
	// Acquire blocks until the gate is held or ctx is done. The returned
	// release func must be called exactly once.
	Acquire(ctx context.Context) (release func(), err error)
}
