// Package mongo implements the document store gateway on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/adapters/store"
)

var _ ports.DocumentStore = (*Store)(nil)

type Options struct {
	URI      string
	Database string

	// Timeout bounds server selection and connection setup. It is the only
	// deadline applied to store calls.
	Timeout time.Duration
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	tracer trace.Tracer
}

// Connect creates a client for opts.URI. The driver connects lazily, so an
// unreachable server surfaces on the first call, not here.
func Connect(ctx context.Context, opts Options) (*Store, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.Timeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.Timeout).SetConnectTimeout(opts.Timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect %q: %w", opts.URI, err)
	}
	return NewStore(client, opts.Database), nil
}

func NewStore(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
		tracer: otel.Tracer("github.com/jcmexdev/ecommerce-shop-api/store/mongo"),
	}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	ctx, span := s.startSpan(ctx, "insertOne", collection)
	defer span.End()

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fail(span, fmt.Errorf("mongo: insert into %q: %w: %w", collection, entity.ErrStoreUnavailable, err))
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

func (s *Store) GetDocuments(ctx context.Context, collection string, filter entity.Filter, limit int64) ([]entity.Record, error) {
	ctx, span := s.startSpan(ctx, "find", collection)
	defer span.End()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, store.ToBSONFilter(filter), opts)
	if err != nil {
		return nil, fail(span, fmt.Errorf("mongo: find in %q: %w: %w", collection, entity.ErrStoreUnavailable, err))
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fail(span, fmt.Errorf("mongo: read cursor of %q: %w: %w", collection, entity.ErrStoreUnavailable, err))
	}

	records := make([]entity.Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, store.ToRecord(d))
	}
	span.SetAttributes(attribute.Int("db.response.returned_rows", len(records)))
	return records, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "ping", "")
	defer span.End()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fail(span, fmt.Errorf("mongo: ping: %w: %w", entity.ErrStoreUnavailable, err))
	}
	return nil
}

func (s *Store) startSpan(ctx context.Context, op, collection string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "mongodb"),
		attribute.String("db.namespace", s.db.Name()),
		attribute.String("db.operation.name", op),
	}
	if collection != "" {
		attrs = append(attrs, attribute.String("db.collection.name", collection))
	}
	return s.tracer.Start(ctx, "mongo."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
