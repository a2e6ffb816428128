package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
)

// DocumentStore is the gateway to the backing document database. Every
// failure it returns wraps entity.ErrStoreUnavailable.
type DocumentStore interface {
	// CreateDocument inserts doc into collection and returns the identity
	// the store assigned to it.
	CreateDocument(ctx context.Context, collection string, doc any) (string, error)

	// GetDocuments returns at most limit records whose fields equal every
	// pair in filter, in store-default order.
	GetDocuments(ctx context.Context, collection string, filter entity.Filter, limit int64) ([]entity.Record, error)

	Ping(ctx context.Context) error
}
