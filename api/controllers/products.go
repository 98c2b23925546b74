package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jerseystore/jerseystore-backend/api/responses"
	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// ProductList returns the catalog, optionally filtered by category.
func ProductList(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		products := store.List(r.URL.Query().Get("category"))
		responses.WriteSuccess(w, productListResponse{
			Products:   products,
			Count:      len(products),
			Categories: store.Categories(),
		})
	}
}

// ProductBySlug returns a single product looked up by its URL slug.
func ProductBySlug(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		product, err := store.BySlug(chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type productListResponse struct {
	Products   []catalog.Product `json:"products"`
	Count      int               `json:"count"`
	Categories []string          `json:"categories"`
}
