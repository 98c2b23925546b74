package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names
// so the prefix only matters for unannotated additions.
const EnvPrefix = "JERSEYSTORE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced from tests and docs.
const (
	EnvAppEnv           = "JERSEYSTORE_APP_ENV"
	EnvPort             = "JERSEYSTORE_APP_PORT"
	EnvRedisURL         = "JERSEYSTORE_REDIS_URL"
	EnvTelegramBotToken = "JERSEYSTORE_TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID   = "JERSEYSTORE_TELEGRAM_CHAT_ID"
	EnvCatalogPath      = "JERSEYSTORE_CATALOG_PRODUCTS_PATH"
)
