package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/seedlog"
)

var _ ports.CatalogService = (*CatalogService)(nil)

// CatalogService creates, lists and seeds products.
type CatalogService struct {
	store   ports.DocumentStore
	gate    ports.SeedGate
	seedLog seedlog.Repository // nil-safe: seed runs are not logged if nil
}

// NewCatalogService wires the catalog to its store. seedLog may be nil.
func NewCatalogService(store ports.DocumentStore, gate ports.SeedGate, seedLog seedlog.Repository) *CatalogService {
	return &CatalogService{
		store:   store,
		gate:    gate,
		seedLog: seedLog,
	}
}

// CreateProduct validates p and stores it, returning the new identity.
func (s *CatalogService) CreateProduct(ctx context.Context, p entity.Product) (string, error) {
	if err := entity.Validate(p); err != nil {
		return "", err
	}

	id, err := s.store.CreateDocument(ctx, entity.CollectionProduct, p)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}

	slog.InfoContext(ctx, "product created", "product_id", id, "name", p.Name)
	return id, nil
}

// ListProducts returns up to q.Limit raw product records matching the
// optional category and featured constraints.
func (s *CatalogService) ListProducts(ctx context.Context, q entity.ProductQuery) ([]entity.Record, error) {
	filter := entity.Filter{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Featured != nil {
		filter["featured"] = *q.Featured
	}

	records, err := s.store.GetDocuments(ctx, entity.CollectionProduct, filter, normalizeLimit(q.Limit))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return records, nil
}

// SeedProducts writes the sample catalog when no product exists yet. Runs
// are serialized through the seed gate, so concurrent callers see either the
// full sample set or nothing.
func (s *CatalogService) SeedProducts(ctx context.Context) (entity.SeedResult, error) {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return entity.SeedResult{}, fmt.Errorf("acquire seed gate: %w", err)
	}
	defer release()

	runID := uuid.NewString()
	res, inserted, err := s.seed(ctx)
	s.logRun(ctx, runID, res, inserted, err)
	if err != nil {
		return entity.SeedResult{}, err
	}
	return res, nil
}

func (s *CatalogService) seed(ctx context.Context) (entity.SeedResult, int, error) {
	existing, err := s.store.GetDocuments(ctx, entity.CollectionProduct, entity.Filter{}, 1)
	if err != nil {
		return entity.SeedResult{}, 0, fmt.Errorf("seed probe: %w", err)
	}
	if len(existing) > 0 {
		return entity.SeedResult{
			Status:  entity.SeedStatusSkipped,
			Message: "products already present",
		}, 0, nil
	}

	samples := SampleProducts()
	for i, p := range samples {
		if _, err := s.store.CreateDocument(ctx, entity.CollectionProduct, p); err != nil {
			return entity.SeedResult{}, i, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return entity.SeedResult{Status: entity.SeedStatusCreated, Count: len(samples)}, len(samples), nil
}

func (s *CatalogService) logRun(ctx context.Context, runID string, res entity.SeedResult, inserted int, runErr error) {
	outcome := seedlog.OutcomeCreated
	switch {
	case runErr != nil:
		outcome = seedlog.OutcomeFailed
	case res.Status == entity.SeedStatusSkipped:
		outcome = seedlog.OutcomeSkipped
	}

	slog.InfoContext(ctx, "seed run finished", "run_id", runID, "outcome", outcome, "inserted", inserted)

	if s.seedLog == nil {
		return
	}
	if err := s.seedLog.Save(ctx, seedlog.NewRun(ctx, runID, outcome, inserted, runErr)); err != nil {
		slog.ErrorContext(ctx, "failed to persist seed run", "run_id", runID, "error", err)
	}
}

func normalizeLimit(limit int64) int64 {
	if limit <= 0 {
		return entity.DefaultListLimit
	}
	return limit
}
