package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jerseystore/jerseystore-backend/api/middleware"
	"github.com/jerseystore/jerseystore-backend/api/responses"
	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	"github.com/jerseystore/jerseystore-backend/internal/recent"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// RecentList returns the session's recently viewed products, most recent
// first, with ids no longer in the catalog dropped.
func RecentList(svc *recent.Service, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if svc == nil || sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recent service unavailable"))
			return
		}

		products := svc.Products(r.Context(), sessionID, store)
		if products == nil {
			products = []catalog.Product{}
		}
		responses.WriteSuccess(w, recentResponse{Products: products})
	}
}

// RecentTouch records a product view for the session.
func RecentTouch(svc *recent.Service, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if svc == nil || sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recent service unavailable"))
			return
		}

		product, err := store.ByID(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.Touch(r.Context(), sessionID, product.ID)
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "recorded"})
	}
}

type recentResponse struct {
	Products []catalog.Product `json:"products"`
}
