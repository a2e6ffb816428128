package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
)

var _ ports.OrderService = (*OrderService)(nil)

type OrderService struct {
	store ports.DocumentStore
}

func NewOrderService(store ports.DocumentStore) *OrderService {
	return &OrderService{store: store}
}

// CreateOrder validates o structurally and stores it. Products, stock and
// prices are not cross-checked; inconsistent totals are only logged.
func (s *OrderService) CreateOrder(ctx context.Context, o entity.Order) (string, error) {
	if err := entity.Validate(o); err != nil {
		return "", err
	}
	o.ApplyDefaults()

	for _, m := range totalsMismatches(o) {
		slog.WarnContext(ctx, "order totals inconsistent", "detail", m)
	}

	id, err := s.store.CreateDocument(ctx, entity.CollectionOrder, o)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	slog.InfoContext(ctx, "order created", "order_id", id, "items", len(o.Items))
	return id, nil
}

func (s *OrderService) ListOrders(ctx context.Context, limit int64) ([]entity.Record, error) {
	records, err := s.store.GetDocuments(ctx, entity.CollectionOrder, entity.Filter{}, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return records, nil
}

// totalsMismatches compares the caller-supplied amounts of a validated order
// in decimal arithmetic.
func totalsMismatches(o entity.Order) []string {
	subtotal := decimal.NewFromFloat(*o.Subtotal)
	shipping := decimal.NewFromFloat(o.Shipping)
	total := decimal.NewFromFloat(*o.Total)

	lines := decimal.Zero
	for _, it := range o.Items {
		lines = lines.Add(decimal.NewFromFloat(*it.UnitPrice).Mul(decimal.NewFromInt(int64(*it.Quantity))))
	}

	var out []string
	if !lines.Equal(subtotal) {
		out = append(out, fmt.Sprintf("subtotal %s != sum of lines %s", subtotal, lines))
	}
	if want := subtotal.Add(shipping); !total.Equal(want) {
		out = append(out, fmt.Sprintf("total %s != subtotal + shipping %s", total, want))
	}
	return out
}
