package services

import (
	"context"
	"fmt"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
)

var _ ports.ConnectivityProbe = (*Probe)(nil)

// Probe reports document store reachability as data.
type Probe struct {
	store ports.DocumentStore
}

func NewProbe(store ports.DocumentStore) *Probe {
	return &Probe{store: store}
}

// TestConnection pings the store. Failures, including a panicking driver,
// come back as an error payload rather than an error value.
func (p *Probe) TestConnection(ctx context.Context) (res entity.ProbeResult) {
	defer func() {
		if r := recover(); r != nil {
			res = entity.ProbeResult{Status: entity.ProbeStatusError, Detail: fmt.Sprint(r)}
		}
	}()

	if err := p.store.Ping(ctx); err != nil {
		return entity.ProbeResult{Status: entity.ProbeStatusError, Detail: err.Error()}
	}
	return entity.ProbeResult{Status: entity.ProbeStatusOK}
}
