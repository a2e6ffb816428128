package seedgate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/ecommerce-shop-api/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
)

var _ ports.SeedGate = (*Redis)(nil)

const defaultRetryInterval = 100 * time.Millisecond

// Redis serializes seed runs across replicas with a lease held in Redis.
// The lease expires after ttl, so a crashed holder cannot block seeding
// forever; ttl must exceed the time a seed run takes.
type Redis struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
	retry time.Duration
}

func NewRedis(c cache.Cache, ttl time.Duration) *Redis {
	return &Redis{
		cache: c,
		key:   c.GenerateKey("lock", "seed"),
		ttl:   ttl,
		retry: defaultRetryInterval,
	}
}

func (g *Redis) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	for {
		ok, err := g.cache.SetNX(ctx, g.key, token, g.ttl)
		if err != nil {
			return nil, fmt.Errorf("seedgate: acquire %s: %w", g.key, err)
		}
		if ok {
			return g.releaser(ctx, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.retry):
		}
	}
}

func (g *Redis) releaser(ctx context.Context, token string) func() {
	// Release even if the request was cancelled while seeding.
	ctx = context.WithoutCancel(ctx)
	var once sync.Once
	return func() {
		once.Do(func() {
			released, err := g.cache.CompareAndDelete(ctx, g.key, token)
			if err != nil {
				slog.WarnContext(ctx, "seed lease release failed", "key", g.key, "error", err)
				return
			}
			if !released {
				slog.WarnContext(ctx, "seed lease expired before release", "key", g.key, "ttl", g.ttl)
			}
		})
	}
}
