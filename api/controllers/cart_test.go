package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jerseystore/jerseystore-backend/api/middleware"
	cartsvc "github.com/jerseystore/jerseystore-backend/internal/cart"
	"github.com/jerseystore/jerseystore-backend/pkg/kv"
	"github.com/jerseystore/jerseystore-backend/pkg/types"
)

type cartBody struct {
	Data struct {
		Items []struct {
			ID       string `json:"id"`
			Size     string `json:"size"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		TotalItems int `json:"total_items"`
		TotalPrice int `json:"total_price"`
	} `json:"data"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding cart response: %v", err)
	}
	return body
}

func cartRequest(method, target, payload, sessionID string) *http.Request {
	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithSessionID(context.Background(), sessionID))
}

func TestCartShowStartsEmpty(t *testing.T) {
	sessions := cartsvc.NewSessions(kv.NewMemory(), nil, testLogger())

	rec := httptest.NewRecorder()
	CartShow(sessions, testLogger()).ServeHTTP(rec, cartRequest(http.MethodGet, "/api/v1/cart", "", "sess-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeCart(t, rec)
	if len(body.Data.Items) != 0 || body.Data.TotalItems != 0 || body.Data.TotalPrice != 0 {
		t.Fatalf("expected empty cart, got %+v", body.Data)
	}
}

func TestCartAddItem(t *testing.T) {
	store := testCatalog(t)
	logg := testLogger()

	t.Run("adds and merges", func(t *testing.T) {
		sessions := cartsvc.NewSessions(kv.NewMemory(), nil, logg)
		handler := CartAddItem(sessions, store, logg)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
			`{"product_id":"arg-home-24","size":"M","quantity":2}`, "sess-1"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
			`{"product_id":"arg-home-24","size":"M","quantity":3}`, "sess-1"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		body := decodeCart(t, rec)
		if len(body.Data.Items) != 1 {
			t.Fatalf("expected merged single line, got %d", len(body.Data.Items))
		}
		if body.Data.Items[0].Quantity != 5 || body.Data.TotalPrice != 5*799 {
			t.Fatalf("unexpected aggregates %+v", body.Data)
		}
	})

	t.Run("stock exceeded returns 409 with available", func(t *testing.T) {
		sessions := cartsvc.NewSessions(kv.NewMemory(), nil, logg)
		handler := CartAddItem(sessions, store, logg)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
			`{"product_id":"arg-home-24","size":"L","quantity":3}`, "sess-1"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}

		var body types.ErrorEnvelope
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decoding error envelope: %v", err)
		}
		if body.Error.Code != "STOCK_EXCEEDED" {
			t.Fatalf("unexpected code %s", body.Error.Code)
		}
		details, ok := body.Error.Details.(map[string]any)
		if !ok || details["available"] != float64(2) {
			t.Fatalf("expected available=2 detail, got %v", body.Error.Details)
		}
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		sessions := cartsvc.NewSessions(kv.NewMemory(), nil, logg)
		rec := httptest.NewRecorder()
		CartAddItem(sessions, store, logg).ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
			`{"product_id":"nope","size":"M","quantity":1}`, "sess-1"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("invalid payload returns 400", func(t *testing.T) {
		sessions := cartsvc.NewSessions(kv.NewMemory(), nil, logg)
		rec := httptest.NewRecorder()
		CartAddItem(sessions, store, logg).ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
			`{"product_id":"arg-home-24","size":"M"}`, "sess-1"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing session context returns 500", func(t *testing.T) {
		sessions := cartsvc.NewSessions(kv.NewMemory(), nil, logg)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		CartAddItem(sessions, store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestCartUpdateItem(t *testing.T) {
	store := testCatalog(t)
	logg := testLogger()
	sessions := cartsvc.NewSessions(kv.NewMemory(), nil, logg)

	add := CartAddItem(sessions, store, logg)
	rec := httptest.NewRecorder()
	add.ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
		`{"product_id":"bra-away-24","size":"S","quantity":1}`, "sess-up"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed add failed with %d", rec.Code)
	}

	update := CartUpdateItem(sessions, logg)

	t.Run("raises quantity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		update.ServeHTTP(rec, cartRequest(http.MethodPatch, "/api/v1/cart/items",
			`{"product_id":"bra-away-24","size":"S","quantity":3}`, "sess-up"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeCart(t, rec)
		if body.Data.TotalItems != 3 {
			t.Fatalf("expected 3 items, got %d", body.Data.TotalItems)
		}
	})

	t.Run("beyond stock returns 409", func(t *testing.T) {
		rec := httptest.NewRecorder()
		update.ServeHTTP(rec, cartRequest(http.MethodPatch, "/api/v1/cart/items",
			`{"product_id":"bra-away-24","size":"S","quantity":9}`, "sess-up"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		rec := httptest.NewRecorder()
		update.ServeHTTP(rec, cartRequest(http.MethodPatch, "/api/v1/cart/items",
			`{"product_id":"bra-away-24","size":"S","quantity":0}`, "sess-up"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeCart(t, rec)
		if len(body.Data.Items) != 0 {
			t.Fatalf("expected empty cart, got %+v", body.Data.Items)
		}
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	store := testCatalog(t)
	logg := testLogger()
	sessions := cartsvc.NewSessions(kv.NewMemory(), nil, logg)

	add := CartAddItem(sessions, store, logg)
	for _, payload := range []string{
		`{"product_id":"arg-home-24","size":"M","quantity":1}`,
		`{"product_id":"bra-away-24","size":"M","quantity":2}`,
	} {
		rec := httptest.NewRecorder()
		add.ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items", payload, "sess-rm"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed add failed with %d", rec.Code)
		}
	}

	t.Run("remove one line", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CartRemoveItem(sessions, logg).ServeHTTP(rec, cartRequest(http.MethodDelete, "/api/v1/cart/items",
			`{"product_id":"arg-home-24","size":"M"}`, "sess-rm"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeCart(t, rec)
		if len(body.Data.Items) != 1 || body.Data.Items[0].ID != "bra-away-24" {
			t.Fatalf("unexpected items %+v", body.Data.Items)
		}
	})

	t.Run("removing absent line succeeds", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CartRemoveItem(sessions, logg).ServeHTTP(rec, cartRequest(http.MethodDelete, "/api/v1/cart/items",
			`{"product_id":"arg-home-24","size":"M"}`, "sess-rm"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CartClear(sessions, logg).ServeHTTP(rec, cartRequest(http.MethodDelete, "/api/v1/cart", "", "sess-rm"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeCart(t, rec)
		if len(body.Data.Items) != 0 || body.Data.TotalPrice != 0 {
			t.Fatalf("expected empty cart, got %+v", body.Data)
		}
	})
}
