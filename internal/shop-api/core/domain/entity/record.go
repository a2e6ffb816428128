package entity

import "errors"

const (
	CollectionProduct = "product"
	CollectionOrder   = "order"

	// IDField holds the store-assigned identity in every returned record.
	IDField = "_id"
)

// ErrStoreUnavailable is wrapped by every document store failure.
var ErrStoreUnavailable = errors.New("document store unavailable")

// Record is a stored document as the store returns it: the input fields plus
// the identity under IDField, rendered as a string.
type Record map[string]any

func (r Record) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// Filter is an equality-only match on top-level fields. An empty Filter
// matches every document.
type Filter map[string]any
