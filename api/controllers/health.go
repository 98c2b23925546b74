package controllers

import (
	"context"
	"net/http"

	"github.com/jerseystore/jerseystore-backend/api/responses"
	"github.com/jerseystore/jerseystore-backend/pkg/config"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
)

// Pinger reports whether the backing store is reachable. A nil Pinger means
// the service runs without one and is always ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JerseyStore-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JerseyStore-Env", cfg.App.Env)
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
