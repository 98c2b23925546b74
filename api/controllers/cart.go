package controllers

import (
	"net/http"

	"github.com/jerseystore/jerseystore-backend/api/middleware"
	"github.com/jerseystore/jerseystore-backend/api/responses"
	"github.com/jerseystore/jerseystore-backend/api/validators"
	cartsvc "github.com/jerseystore/jerseystore-backend/internal/cart"
	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// CartShow returns the session's cart with computed aggregates.
func CartShow(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

// CartAddItem adds a sized product to the session's cart, merging with an
// existing line when present.
func CartAddItem(sessions *cartsvc.Sessions, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := store.ByID(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := engine.AddItem(r.Context(), product, payload.Size, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, mapCartError(err))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(engine))
	}
}

// CartUpdateItem replaces the quantity of a line item. Quantity zero or
// below removes the line.
func CartUpdateItem(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.UpdateQuantity(r.Context(), payload.ProductID, payload.Size, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, mapCartError(err))
			return
		}

		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

// CartRemoveItem deletes a line item. Removing an absent line succeeds.
func CartRemoveItem(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartRemoveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.RemoveItem(r.Context(), payload.ProductID, payload.Size); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

// CartClear empties the session's cart.
func CartClear(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

func sessionEngine(r *http.Request, sessions *cartsvc.Sessions) (*cartsvc.Engine, error) {
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessions.Engine(r.Context(), sessionID), nil
}

func mapCartError(err error) error {
	if stock, ok := cartsvc.AsStockExceeded(err); ok {
		return pkgerrors.New(pkgerrors.CodeStockExceeded, stock.Error()).
			WithDetails(map[string]any{"available": stock.Available})
	}
	return err
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type cartUpdateRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type cartRemoveRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

type cartResponse struct {
	Items      []cartsvc.LineItem `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice int                `json:"total_price"`
}

func newCartResponse(engine *cartsvc.Engine) cartResponse {
	items := engine.Items()
	if items == nil {
		items = []cartsvc.LineItem{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: engine.TotalItems(),
		TotalPrice: engine.TotalPrice(),
	}
}
