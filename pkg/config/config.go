package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Config is the full runtime configuration of the console service.
type Config struct {
	App           AppConfig
	Backend       BackendConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	Pricing       PricingConfig
	Numbering     NumberingConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var err error
	if _, parseErr := url.ParseRequestURI(c.Backend.BaseURL); parseErr != nil {
		err = multierr.Append(err, fmt.Errorf("%s must be an absolute url: %w", EnvBackendURL, parseErr))
	}
	if c.Backend.Timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvBackendTimeout))
	}
	if c.JWT.ExpirationMinutes <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvJWTExpiration))
	}
	if c.Pricing.CardSurchargePercent.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("%s must not be negative", EnvCardSurcharge))
	}
	if strings.TrimSpace(c.Numbering.QuotePrefix) == "" || strings.TrimSpace(c.Numbering.OrderPrefix) == "" {
		err = multierr.Append(err, fmt.Errorf("%s and %s are required", EnvQuotePrefix, EnvOrderPrefix))
	}
	return err
}

type AppConfig struct {
	Env          string `envconfig:"SISTEMA_APP_ENV" required:"true"`
	Port         string `envconfig:"SISTEMA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SISTEMA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SISTEMA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the REST backend that owns persistence.
type BackendConfig struct {
	BaseURL string        `envconfig:"SISTEMA_BACKEND_URL" default:"http://localhost:3001/api"`
	Timeout time.Duration `envconfig:"SISTEMA_BACKEND_TIMEOUT" default:"15s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SISTEMA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SISTEMA_REDIS_ADDR"`
	Password     string        `envconfig:"SISTEMA_REDIS_PASSWORD"`
	DB           int           `envconfig:"SISTEMA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SISTEMA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SISTEMA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SISTEMA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SISTEMA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SISTEMA_REDIS_WRITE_TIMEOUT" default:"5s"`
	KeyPrefix    string        `envconfig:"SISTEMA_REDIS_KEY_PREFIX" default:"sistema"`
}

// JWTConfig signs the console session cookie.
type JWTConfig struct {
	Secret            string `envconfig:"SISTEMA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SISTEMA_JWT_ISSUER" default:"sistema-console"`
	ExpirationMinutes int    `envconfig:"SISTEMA_JWT_EXPIRATION_MINUTES" default:"480"`
}

// Expiration returns the token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SessionConfig struct {
	CookieName string        `envconfig:"SISTEMA_SESSION_COOKIE" default:"sistema_session"`
	Secure     bool          `envconfig:"SISTEMA_SESSION_COOKIE_SECURE" default:"false"`
	Revalidate time.Duration `envconfig:"SISTEMA_SESSION_REVALIDATE" default:"5m"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SISTEMA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"SISTEMA_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SISTEMA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// PricingConfig holds the card fallback used when a product has no card override.
type PricingConfig struct {
	CardSurchargePercent decimal.Decimal `envconfig:"SISTEMA_PRICING_CARD_SURCHARGE_PERCENT" default:"0"`
}

type NumberingConfig struct {
	QuotePrefix string `envconfig:"SISTEMA_QUOTE_NUMBER_PREFIX" default:"ORC-"`
	OrderPrefix string `envconfig:"SISTEMA_ORDER_NUMBER_PREFIX" default:"OS-"`
	Digits      int    `envconfig:"SISTEMA_NUMBER_DIGITS" default:"6"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SISTEMA_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}
