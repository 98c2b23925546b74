package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jerseystore/jerseystore-backend/api/middleware"
	"github.com/jerseystore/jerseystore-backend/api/validators"
	cartsvc "github.com/jerseystore/jerseystore-backend/internal/cart"
	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	"github.com/jerseystore/jerseystore-backend/internal/orders"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// OrderCreate composes the order from the payload (or the session's cart
// when the payload carries no items), relays it to store staff, and clears
// the cart on success. Responses use the flat checkout shape rather than
// the standard envelope.
func OrderCreate(svc orders.Service, sessions *cartsvc.Sessions, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || sessions == nil || store == nil {
			writeOrderFailure(r, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			writeOrderFailure(r, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			writeOrderFailure(r, logg, w, err)
			return
		}

		engine := sessions.Engine(r.Context(), sessionID)

		items := engine.Items()
		if len(payload.Items) > 0 {
			resolved, err := resolveOrderItems(store, payload.Items)
			if err != nil {
				writeOrderFailure(r, logg, w, err)
				return
			}
			items = resolved
		}

		form := orders.OrderForm{
			Name:    payload.Customer.Name,
			Phone:   payload.Customer.Phone,
			Address: payload.Customer.Address,
			Area:    payload.Customer.Area,
			Notes:   payload.Customer.Notes,
		}

		order, err := svc.Compose(r.Context(), items, form)
		if err != nil {
			writeOrderFailure(r, logg, w, err)
			return
		}

		if err := engine.Clear(r.Context()); err != nil && logg != nil {
			logg.Error(r.Context(), "cart.clear_after_order", err)
		}

		writeOrderJSON(w, http.StatusCreated, createOrderResponse{
			Success: true,
			OrderID: order.ID,
			Message: "Order placed successfully",
		})
	}
}

func resolveOrderItems(store *catalog.Store, payload []orderItemPayload) ([]cartsvc.LineItem, error) {
	items := make([]cartsvc.LineItem, len(payload))
	for i, entry := range payload {
		id := entry.ProductID
		if id == "" && entry.Product != nil {
			id = entry.Product.ID
		}
		// The catalog copy is authoritative; a client-supplied product
		// body only contributes its id.
		product, err := store.ByID(id)
		if err != nil {
			return nil, err
		}
		items[i] = cartsvc.LineItem{
			ID:       product.ID,
			Product:  product,
			Size:     entry.Size,
			Quantity: entry.Quantity,
		}
	}
	return items, nil
}

type createOrderRequest struct {
	Items    []orderItemPayload   `json:"items" validate:"omitempty,dive"`
	Customer orderCustomerPayload `json:"customer" validate:"required"`
	// The storefront sends its computed total; the server recomputes from
	// the catalog and ignores this value.
	Total int `json:"total"`
}

type orderItemPayload struct {
	ProductID string           `json:"product_id" validate:"required_without=Product"`
	Product   *catalog.Product `json:"product" validate:"required_without=ProductID"`
	Size      string           `json:"size" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
}

type orderCustomerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Area    string `json:"area"`
	Notes   string `json:"notes"`
}

type createOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message"`
}

func writeOrderFailure(r *http.Request, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation, pkgerrors.CodeNotFound, pkgerrors.CodeNotificationFailed:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx := logg.WithFields(r.Context(), map[string]any{
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
		})
		logg.Error(ctx, "order.failed", err)
	}

	writeOrderJSON(w, meta.HTTPStatus, createOrderResponse{Success: false, Message: msg})
}

func writeOrderJSON(w http.ResponseWriter, status int, payload createOrderResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode order response","err":"%v"}`, err)
	}
}
