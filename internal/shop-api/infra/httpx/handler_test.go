package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/services"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/adapters/seedgate"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/adapters/store/memory"
)

// downStore fails every call the way an unreachable server does.
type downStore struct{}

func (downStore) CreateDocument(context.Context, string, any) (string, error) {
	return "", fmt.Errorf("insert: %w: connection refused", entity.ErrStoreUnavailable)
}

func (downStore) GetDocuments(context.Context, string, entity.Filter, int64) ([]entity.Record, error) {
	return nil, fmt.Errorf("find: %w: connection refused", entity.ErrStoreUnavailable)
}

func (downStore) Ping(context.Context) error {
	return fmt.Errorf("ping: %w: connection refused", entity.ErrStoreUnavailable)
}

func setupApp(t *testing.T, store ports.DocumentStore) http.Handler {
	t.Helper()
	handler := NewHandler(
		services.NewCatalogService(store, seedgate.NewLocal(), nil),
		services.NewOrderService(store),
		services.NewProbe(store),
	)
	return NewRouter(handler)
}

func do(t *testing.T, app http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func fieldNames(fields []entity.FieldError) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Field)
	}
	return out
}

const validProduct = `{
	"name": "Orbit Mouse",
	"description": "Ergonomic wireless mouse",
	"price": 39.99,
	"image": "https://images.example.com/mouse.png",
	"category": "accessories",
	"in_stock": 12,
	"featured": false
}`

const validOrder = `{
	"items": [
		{"product_id": "p1", "quantity": 2, "unit_price": 10, "name": "Sticker"},
		{"product_id": "p2", "quantity": 1, "unit_price": 5.5, "name": "Pin", "image": "pin.png"}
	],
	"subtotal": 25.5,
	"shipping": 4.5,
	"total": 30,
	"customer": {"full_name": "Grace Hopper", "email": "grace@example.com"}
}`

func TestHealthz(t *testing.T) {
	rec := do(t, setupApp(t, downStore{}), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusResponse{Status: "ok"}, decode[StatusResponse](t, rec))
}

func TestTestConnection(t *testing.T) {
	t.Run("reachable store", func(t *testing.T) {
		rec := do(t, setupApp(t, memory.New()), http.MethodGet, "/test", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("unreachable store is still a 200", func(t *testing.T) {
		rec := do(t, setupApp(t, downStore{}), http.MethodGet, "/test", "")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[entity.ProbeResult](t, rec)
		assert.Equal(t, entity.ProbeStatusError, res.Status)
		assert.Contains(t, res.Detail, "connection refused")
	})
}

func TestCreateProductThenList(t *testing.T) {
	app := setupApp(t, memory.New())

	rec := do(t, app, http.MethodPost, "/products", validProduct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	id := decode[IDResponse](t, rec).ID
	require.NotEmpty(t, id)

	rec = do(t, app, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	records := decode[[]map[string]any](t, rec)
	require.Len(t, records, 1)

	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(validProduct), &want))
	want["_id"] = id
	assert.Equal(t, want, records[0])
}

func TestCreateProduct_Rejections(t *testing.T) {
	app := setupApp(t, memory.New())

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"negative price", `{"name":"Lamp","price":-1}`, []string{"price"}},
		{"name too short", `{"name":"L","price":1}`, []string{"name"}},
		{"name too long", `{"name":"` + strings.Repeat("n", 121) + `","price":1}`, []string{"name"}},
		{"negative stock", `{"name":"Lamp","price":1,"in_stock":-3}`, []string{"in_stock"}},
		{"missing price", `{"name":"Lamp"}`, []string{"price"}},
		{"everything wrong", `{"name":"","price":-2,"in_stock":-1}`, []string{"name", "price", "in_stock"}},
		{"price of the wrong type", `{"name":"Lamp","price":"abc"}`, []string{"price"}},
		{"fractional stock", `{"name":"Lamp","price":1,"in_stock":2.5}`, []string{"in_stock"}},
		{"featured as text", `{"name":"Lamp","price":1,"featured":"yes"}`, []string{"featured"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, app, http.MethodPost, "/products", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			res := decode[ErrorResponse](t, rec)
			assert.Equal(t, "validation_error", res.Error)
			assert.ElementsMatch(t, tt.fields, fieldNames(res.Fields))
			assert.NotContains(t, rec.Body.String(), "Go struct")
		})
	}

	rec := do(t, app, http.MethodGet, "/products", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateProduct_InvalidJSON(t *testing.T) {
	app := setupApp(t, memory.New())

	for _, body := range []string{`{"name":`, `{"name":"Lamp" "price":1}`, `["Lamp"]`, ``} {
		rec := do(t, app, http.MethodPost, "/products", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "invalid_json", decode[ErrorResponse](t, rec).Error)
	}
}

func TestSeedProducts(t *testing.T) {
	st := memory.New()
	app := setupApp(t, st)

	rec := do(t, app, http.MethodPost, "/products/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"created","count":6}`, rec.Body.String())

	rec = do(t, app, http.MethodPost, "/products/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"skipped","message":"products already present"}`, rec.Body.String())
	assert.Equal(t, 6, st.Len(entity.CollectionProduct))
}

func TestListProducts_Query(t *testing.T) {
	app := setupApp(t, memory.New())
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, "/products/seed", "").Code)

	t.Run("featured", func(t *testing.T) {
		rec := do(t, app, http.MethodGet, "/products?featured=true", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var names []string
		for _, r := range decode[[]map[string]any](t, rec) {
			assert.Equal(t, true, r["featured"])
			names = append(names, r["name"].(string))
		}
		assert.Equal(t, []string{"Aurora Wireless Headphones", "Nebula Smartwatch"}, names)
	})

	t.Run("featured spellings", func(t *testing.T) {
		for value, want := range map[string]int{"yes": 2, "on": 2, "1": 2, "TRUE": 2, "no": 4, "off": 4, "0": 4} {
			rec := do(t, app, http.MethodGet, "/products?featured="+value, "")
			require.Equal(t, http.StatusOK, rec.Code, value)
			assert.Len(t, decode[[]map[string]any](t, rec), want, value)
		}
	})

	t.Run("category", func(t *testing.T) {
		rec := do(t, app, http.MethodGet, "/products?category=audio", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]map[string]any](t, rec), 2)
	})

	t.Run("limit", func(t *testing.T) {
		rec := do(t, app, http.MethodGet, "/products?limit=2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]map[string]any](t, rec), 2)
	})

	t.Run("no match is an empty array", func(t *testing.T) {
		rec := do(t, app, http.MethodGet, "/products?category=garden", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("bad parameters", func(t *testing.T) {
		rec := do(t, app, http.MethodGet, "/products?limit=0&featured=maybe", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.ElementsMatch(t, []string{"limit", "featured"}, fieldNames(decode[ErrorResponse](t, rec).Fields))
	})
}

func TestOrders(t *testing.T) {
	app := setupApp(t, memory.New())

	rec := do(t, app, http.MethodPost, "/orders", validOrder)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[IDResponse](t, rec).ID

	rec = do(t, app, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]map[string]any](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, id, orders[0]["_id"])
	assert.Equal(t, "pending", orders[0]["status"])
	assert.Len(t, orders[0]["items"], 2)
	customer := orders[0]["customer"].(map[string]any)
	assert.Equal(t, "Grace Hopper", customer["full_name"])

	rec = do(t, app, http.MethodGet, "/orders?limit=abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateOrder_EmptyStatusBecomesPending(t *testing.T) {
	app := setupApp(t, memory.New())

	body := `{"items":[{"product_id":"p1","quantity":1,"unit_price":1,"name":"A"}],"subtotal":1,"total":1,"status":""}`
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/orders", body).Code)

	orders := decode[[]map[string]any](t, do(t, app, http.MethodGet, "/orders", ""))
	require.Len(t, orders, 1)
	assert.Equal(t, "pending", orders[0]["status"])
}

func TestCreateOrder_Rejections(t *testing.T) {
	app := setupApp(t, memory.New())

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			"zero quantity",
			`{"items":[{"product_id":"p1","quantity":0,"unit_price":1,"name":"A"}],"subtotal":0,"total":0}`,
			[]string{"items[0].quantity"},
		},
		{
			"negative unit price",
			`{"items":[{"product_id":"p1","quantity":1,"unit_price":1,"name":"A"},{"product_id":"p2","quantity":1,"unit_price":-1,"name":"B"}],"subtotal":0,"total":0}`,
			[]string{"items[1].unit_price"},
		},
		{
			"customer without name",
			`{"items":[{"product_id":"p1","quantity":1,"unit_price":1,"name":"A"}],"subtotal":1,"total":1,"customer":{}}`,
			[]string{"customer.full_name"},
		},
		{
			"fractional quantity",
			`{"items":[{"product_id":"p1","quantity":2.0,"unit_price":1,"name":"A"}],"subtotal":2,"total":2}`,
			[]string{"items.quantity"},
		},
		{
			"unit price as text",
			`{"items":[{"product_id":"p1","quantity":1,"unit_price":"5","name":"A"}],"subtotal":5,"total":5}`,
			[]string{"items.unit_price"},
		},
		{
			"items not a list",
			`{"items":{"product_id":"p1"},"subtotal":0,"total":0}`,
			[]string{"items"},
		},
		{
			"missing totals",
			`{"items":[{"product_id":"p1","quantity":1,"unit_price":1,"name":"A"}]}`,
			[]string{"subtotal", "total"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, app, http.MethodPost, "/orders", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			res := decode[ErrorResponse](t, rec)
			assert.Equal(t, "validation_error", res.Error)
			assert.ElementsMatch(t, tt.fields, fieldNames(res.Fields))
		})
	}

	rec := do(t, app, http.MethodGet, "/orders", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestStoreUnavailable(t *testing.T) {
	app := setupApp(t, downStore{})

	for _, c := range []struct{ method, target, body string }{
		{http.MethodPost, "/products", validProduct},
		{http.MethodGet, "/products", ""},
		{http.MethodPost, "/products/seed", ""},
		{http.MethodPost, "/orders", validOrder},
		{http.MethodGet, "/orders", ""},
	} {
		rec := do(t, app, c.method, c.target, c.body)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, c.method+" "+c.target)
		assert.Equal(t, "store_unavailable", decode[ErrorResponse](t, rec).Error)
	}
}
