// Package memory is an in-process document store for local development and
// tests. Documents go through the same BSON encoding as the Mongo adapter, so
// the records it returns have the same shape.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/adapters/store"
)

var _ ports.DocumentStore = (*Store)(nil)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]bson.Raw
}

func New() *Store {
	return &Store{collections: make(map[string][]bson.Raw)}
}

func (s *Store) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("memory: insert into %q: %w: %w", collection, entity.ErrStoreUnavailable, err)
	}

	fields, err := toDoc(doc)
	if err != nil {
		return "", fmt.Errorf("memory: encode document for %q: %w", collection, err)
	}

	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(append(bson.D{{Key: entity.IDField, Value: oid}}, fields...))
	if err != nil {
		return "", fmt.Errorf("memory: encode document for %q: %w", collection, err)
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], raw)
	s.mu.Unlock()

	return oid.Hex(), nil
}

func (s *Store) GetDocuments(ctx context.Context, collection string, filter entity.Filter, limit int64) ([]entity.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("memory: find in %q: %w: %w", collection, entity.ErrStoreUnavailable, err)
	}

	want, err := toDoc(store.ToBSONFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("memory: encode filter: %w", err)
	}

	s.mu.RLock()
	docs := s.collections[collection]
	s.mu.RUnlock()

	records := make([]entity.Record, 0)
	for _, raw := range docs {
		if limit > 0 && int64(len(records)) >= limit {
			break
		}
		var m bson.M
		if err := bson.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("memory: decode document in %q: %w", collection, err)
		}
		if matches(m, want) {
			records = append(records, store.ToRecord(m))
		}
	}
	return records, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory: ping: %w: %w", entity.ErrStoreUnavailable, err)
	}
	return nil
}

// Len reports how many documents collection holds.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// toDoc encodes v the way the Mongo driver would and decodes it back, so
// comparisons see driver-normalized values (int32 vs int64 and so on).
func toDoc(v any) (bson.D, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

func matches(doc bson.M, want bson.D) bool {
	for _, e := range want {
		got, ok := doc[e.Key]
		if !ok || !reflect.DeepEqual(got, e.Value) {
			return false
		}
	}
	return true
}
