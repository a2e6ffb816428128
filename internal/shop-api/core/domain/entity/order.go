package entity

const StatusPending = "pending"

// OrderItem is a single order line. Name and Image are copied from the
// product at order time; ProductID is not checked against the catalog.
type OrderItem struct {
	ProductID string   `json:"product_id" bson:"product_id" validate:"required"`
	Quantity  *int     `json:"quantity" bson:"quantity" validate:"required,gte=1"`
	UnitPrice *float64 `json:"unit_price" bson:"unit_price" validate:"required,gte=0"`
	Name      string   `json:"name" bson:"name" validate:"required"`
	Image     *string  `json:"image" bson:"image"`
}

type CustomerInfo struct {
	FullName string  `json:"full_name" bson:"full_name" validate:"required"`
	Email    *string `json:"email" bson:"email"`
	Address  *string `json:"address" bson:"address"`
	City     *string `json:"city" bson:"city"`
	Country  *string `json:"country" bson:"country"`
}

// Order is the creation input for the order collection. Subtotal and Total
// are taken from the caller as-is.
type Order struct {
	Items    []OrderItem   `json:"items" bson:"items" validate:"required,dive"`
	Subtotal *float64      `json:"subtotal" bson:"subtotal" validate:"required,gte=0"`
	Shipping float64       `json:"shipping" bson:"shipping" validate:"gte=0"`
	Total    *float64      `json:"total" bson:"total" validate:"required,gte=0"`
	Customer *CustomerInfo `json:"customer" bson:"customer"`
	Status   string        `json:"status" bson:"status"`
}

// ApplyDefaults fills the fields whose absence has a defined meaning.
func (o *Order) ApplyDefaults() {
	if o.Status == "" {
		o.Status = StatusPending
	}
}
