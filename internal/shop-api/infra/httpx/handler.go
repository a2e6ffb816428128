package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/jcmexdev/ecommerce-shop-api/internal/pkg/interceptors/constants"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
)

// Handler maps the HTTP surface onto the catalog, order and probe services.
type Handler struct {
	catalog ports.CatalogService
	orders  ports.OrderService
	probe   ports.ConnectivityProbe
}

func NewHandler(catalog ports.CatalogService, orders ports.OrderService, probe ports.ConnectivityProbe) *Handler {
	return &Handler{
		catalog: catalog,
		orders:  orders,
		probe:   probe,
	}
}

// Healthz reports process liveness only; store reachability is /test.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// TestConnection always answers 200; the payload carries the probe outcome.
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.probe.TestConnection(r.Context()))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req entity.Product
	if !decodeBody(w, r, "create product", &req) {
		return
	}

	id, err := h.catalog.CreateProduct(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "create product", err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := entity.ProductQuery{Category: query.Get("category")}

	var fields []entity.FieldError
	if v := query.Get("featured"); v != "" {
		featured, ok := parseBool(v)
		if !ok {
			fields = append(fields, entity.FieldError{Field: "featured", Constraint: "boolean", Message: "must be a boolean"})
		} else {
			q.Featured = &featured
		}
	}
	limit, ferr := parseLimit(query.Get("limit"))
	if ferr != nil {
		fields = append(fields, *ferr)
	}
	if len(fields) > 0 {
		writeServiceError(w, r, "list products", entity.NewValidationError(fields...))
		return
	}
	q.Limit = limit

	records, err := h.catalog.ListProducts(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) SeedProducts(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.SeedProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, "seed products", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req entity.Order
	if !decodeBody(w, r, "create order", &req) {
		return
	}

	idempKey, _ := r.Context().Value(constants.ContextKeyIdempotencyKey).(string)
	requestID, _ := r.Context().Value(constants.ContextKeyRequestID).(string)
	slog.InfoContext(r.Context(), "creating order", "request_id", requestID, "idempotency_key", idempKey, "items", len(req.Items))

	id, err := h.orders.CreateOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "create order", err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, ferr := parseLimit(r.URL.Query().Get("limit"))
	if ferr != nil {
		writeServiceError(w, r, "list orders", entity.NewValidationError(*ferr))
		return
	}

	records, err := h.orders.ListOrders(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// decodeBody reads a JSON body into v. Syntax errors are a 400; a value of
// the wrong type is a 422 naming the field. It reports whether v is usable.
func decodeBody(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		writeServiceError(w, r, op, entity.NewValidationError(entity.FieldError{
			Field:      typeErr.Field,
			Constraint: "type",
			Message:    "must be " + jsonTypeName(typeErr.Type),
		}))
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
	return false
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a valid value"
	}
}

// parseBool accepts the usual query-string spellings of a boolean:
// true/false, 1/0, yes/no, on/off, t/f and y/n, case-insensitively.
func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	}
	return false, false
}

func parseLimit(v string) (int64, *entity.FieldError) {
	if v == "" {
		return entity.DefaultListLimit, nil
	}
	limit, err := strconv.ParseInt(v, 10, 64)
	if err != nil || limit < 1 {
		return 0, &entity.FieldError{Field: "limit", Constraint: "gte=1", Message: "must be a positive integer"}
	}
	return limit, nil
}

func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_error",
			Message: "request failed validation",
			Fields:  verr.Fields,
		})
	case errors.Is(err, entity.ErrStoreUnavailable):
		slog.ErrorContext(r.Context(), op+" failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	default:
		slog.ErrorContext(r.Context(), op+" failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
