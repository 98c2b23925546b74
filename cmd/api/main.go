package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jerseystore/jerseystore-backend/api/controllers"
	"github.com/jerseystore/jerseystore-backend/api/routes"
	cartsvc "github.com/jerseystore/jerseystore-backend/internal/cart"
	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	"github.com/jerseystore/jerseystore-backend/internal/orders"
	"github.com/jerseystore/jerseystore-backend/internal/recent"
	"github.com/jerseystore/jerseystore-backend/pkg/config"
	"github.com/jerseystore/jerseystore-backend/pkg/kv"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
	"github.com/jerseystore/jerseystore-backend/pkg/metrics"
	"github.com/jerseystore/jerseystore-backend/pkg/redis"
	"github.com/jerseystore/jerseystore-backend/pkg/telegram"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var (
		store   kv.Store
		pinger  controllers.Pinger
		cartKey cartsvc.KeyFunc
		seenKey recent.KeyFunc
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store = redisClient
		pinger = redisClient
		cartKey = redisClient.CartKey
		seenKey = redisClient.RecentKey
	} else {
		logg.Warn(context.Background(), "no redis endpoint configured, carts live in memory only")
		store = kv.NewMemory()
	}

	catalogStore, err := catalog.Load(cfg.Catalog.ProductsPath)
	if err != nil {
		logg.Error(context.Background(), "failed to load product catalog", err)
		os.Exit(1)
	}

	telegramClient, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		logg.Error(context.Background(), "failed to create telegram client", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(telegramClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	sessions := cartsvc.NewSessions(store, cartKey, logg)
	recentSvc := recent.NewService(store, seenKey, logg)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": catalogStore.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pinger, httpMetrics, catalogStore, sessions, recentSvc, ordersSvc),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
