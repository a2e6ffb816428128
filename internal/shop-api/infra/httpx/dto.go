package httpx

import "github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"

type IDResponse struct {
	ID string `json:"id"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  []entity.FieldError `json:"fields,omitempty"`
}
