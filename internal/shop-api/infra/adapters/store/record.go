// Package store holds what the document store adapters share: turning
// decoded BSON documents into the records handed back to callers.
package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
)

// ToRecord converts a decoded document into a Record with its identity
// rendered as a string. Nested documents and arrays become plain maps and
// slices so the record encodes to JSON as an object tree.
func ToRecord(doc bson.M) entity.Record {
	rec := make(entity.Record, len(doc))
	for k, v := range doc {
		rec[k] = plain(v)
	}
	switch id := rec[entity.IDField].(type) {
	case nil:
	case primitive.ObjectID:
		rec[entity.IDField] = id.Hex()
	case string:
	default:
		rec[entity.IDField] = fmt.Sprint(id)
	}
	return rec
}

// ToBSONFilter turns an equality filter into a query document.
func ToBSONFilter(f entity.Filter) bson.M {
	out := bson.M{}
	for k, v := range f {
		out[k] = v
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}
