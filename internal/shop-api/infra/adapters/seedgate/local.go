// Package seedgate provides the single-writer gates that serialize catalog
// seed runs.
package seedgate

import (
	"context"
	"sync"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
)

var _ ports.SeedGate = (*Local)(nil)

// Local serializes seed runs within one process.
type Local struct {
	slot chan struct{}
}

func NewLocal() *Local {
	return &Local{slot: make(chan struct{}, 1)}
}

func (g *Local) Acquire(ctx context.Context) (func(), error) {
	select {
	case g.slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-g.slot }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
