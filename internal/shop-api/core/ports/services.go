package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, p entity.Product) (string, error)
	ListProducts(ctx context.Context, q entity.ProductQuery) ([]entity.Record, error)
	SeedProducts(ctx context.Context) (entity.SeedResult, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, o entity.Order) (string, error)
	ListOrders(ctx context.Context, limit int64) ([]entity.Record, error)
}

// ConnectivityProbe reports store reachability as data; it never fails.
type ConnectivityProbe interface {
	TestConnection(ctx context.Context) entity.ProbeResult
}
