package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Catalog  CatalogConfig
	Cart     CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JERSEYSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"JERSEYSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JERSEYSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JERSEYSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"JERSEYSTORE_REDIS_URL"`
	Address      string        `envconfig:"JERSEYSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"JERSEYSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"JERSEYSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JERSEYSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JERSEYSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JERSEYSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JERSEYSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JERSEYSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Without
// one the service degrades to session-only (in-memory) cart persistence.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type TelegramConfig struct {
	BotToken string        `envconfig:"JERSEYSTORE_TELEGRAM_BOT_TOKEN" required:"true"`
	ChatID   string        `envconfig:"JERSEYSTORE_TELEGRAM_CHAT_ID" required:"true"`
	BaseURL  string        `envconfig:"JERSEYSTORE_TELEGRAM_BASE_URL" default:"https://api.telegram.org"`
	Timeout  time.Duration `envconfig:"JERSEYSTORE_TELEGRAM_TIMEOUT" default:"10s"`
}

type CatalogConfig struct {
	ProductsPath string `envconfig:"JERSEYSTORE_CATALOG_PRODUCTS_PATH" default:"data/products.json"`
}

type CartConfig struct {
	SessionCookie string        `envconfig:"JERSEYSTORE_CART_SESSION_COOKIE" default:"js_session"`
	SessionTTL    time.Duration `envconfig:"JERSEYSTORE_CART_SESSION_TTL" default:"720h"`
}
