package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)
	r.Get("/test", handler.TestConnection)

	r.Post("/products", handler.CreateProduct)
	r.Get("/products", handler.ListProducts)
	r.Post("/products/seed", handler.SeedProducts)

	r.Post("/orders", handler.CreateOrder)
	r.Get("/orders", handler.ListOrders)
	return r
}
