package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jerseystore/jerseystore-backend/api/controllers"
	"github.com/jerseystore/jerseystore-backend/api/middleware"
	cartsvc "github.com/jerseystore/jerseystore-backend/internal/cart"
	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	"github.com/jerseystore/jerseystore-backend/internal/orders"
	"github.com/jerseystore/jerseystore-backend/internal/recent"
	"github.com/jerseystore/jerseystore-backend/pkg/config"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
	"github.com/jerseystore/jerseystore-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pinger controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	store *catalog.Store,
	sessions *cartsvc.Sessions,
	recentSvc *recent.Service,
	ordersSvc orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, pinger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart.SessionCookie, cfg.Cart.SessionTTL, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(store, logg))
			r.Get("/{slug}", controllers.ProductBySlug(store, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartShow(sessions, logg))
			r.Delete("/", controllers.CartClear(sessions, logg))
			r.Post("/items", controllers.CartAddItem(sessions, store, logg))
			r.Patch("/items", controllers.CartUpdateItem(sessions, logg))
			r.Delete("/items", controllers.CartRemoveItem(sessions, logg))
		})

		r.Route("/recent", func(r chi.Router) {
			r.Get("/", controllers.RecentList(recentSvc, store, logg))
			r.Post("/{productID}", controllers.RecentTouch(recentSvc, store, logg))
		})

		r.Post("/orders", controllers.OrderCreate(ordersSvc, sessions, store, logg))
	})

	return r
}
