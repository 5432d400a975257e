package config

const (
	EnvPrefix = "SISTEMA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "SISTEMA_APP_ENV"
	EnvAppPort        = "SISTEMA_APP_PORT"
	EnvLogLevel       = "SISTEMA_LOG_LEVEL"
	EnvBackendURL     = "SISTEMA_BACKEND_URL"
	EnvBackendTimeout = "SISTEMA_BACKEND_TIMEOUT"
	EnvRedisURL       = "SISTEMA_REDIS_URL"
	EnvJWTSecret      = "SISTEMA_JWT_SECRET"
	EnvJWTExpiration  = "SISTEMA_JWT_EXPIRATION_MINUTES"
	EnvCardSurcharge  = "SISTEMA_PRICING_CARD_SURCHARGE_PERCENT"
	EnvQuotePrefix    = "SISTEMA_QUOTE_NUMBER_PREFIX"
	EnvOrderPrefix    = "SISTEMA_ORDER_NUMBER_PREFIX"
	EnvCORSOrigins    = "SISTEMA_CORS_ALLOWED_ORIGINS"
)
