package entity

// Product is the creation input for the product collection. The store assigns
// the identity; it is never part of the input.
type Product struct {
	Name        string   `json:"name" bson:"name" validate:"required,min=2,max=120"`
	Description *string  `json:"description" bson:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" bson:"price" validate:"required,gte=0"`
	Image       *string  `json:"image" bson:"image" validate:"omitempty,http_url"`
	Category    *string  `json:"category" bson:"category" validate:"omitempty,max=80"`
	InStock     int      `json:"in_stock" bson:"in_stock" validate:"gte=0"`
	Featured    bool     `json:"featured" bson:"featured"`
}
