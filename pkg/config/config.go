package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "NHAKA"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Commerce CommerceConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NHAKA_APP_ENV" required:"true"`
	Port         string `envconfig:"NHAKA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NHAKA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NHAKA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CommerceConfig points the gateway at the upstream commerce REST API.
type CommerceConfig struct {
	BaseURL        string        `envconfig:"NHAKA_COMMERCE_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"NHAKA_COMMERCE_TIMEOUT" default:"30s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NHAKA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NHAKA_REDIS_ADDR"`
	Password     string        `envconfig:"NHAKA_REDIS_PASSWORD"`
	DB           int           `envconfig:"NHAKA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NHAKA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NHAKA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NHAKA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NHAKA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NHAKA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NHAKA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NHAKA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"NHAKA_JWT_EXPIRATION_MINUTES" default:"720"`
	SessionTTLMinutes int    `envconfig:"NHAKA_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

// CheckoutConfig tunes the simulated payment gateway and submission guards.
type CheckoutConfig struct {
	GatewayDelay   time.Duration `envconfig:"NHAKA_CHECKOUT_GATEWAY_DELAY" default:"1500ms"`
	GatewayOutcome string        `envconfig:"NHAKA_CHECKOUT_GATEWAY_OUTCOME" default:"succeeded"`
	Currency       string        `envconfig:"NHAKA_CHECKOUT_CURRENCY" default:"USD"`
}

var validGatewayOutcomes = map[string]struct{}{
	"succeeded": {},
	"declined":  {},
	"timed_out": {},
}

func (c CheckoutConfig) validate() error {
	outcome := strings.ToLower(strings.TrimSpace(c.GatewayOutcome))
	if _, ok := validGatewayOutcomes[outcome]; !ok {
		return fmt.Errorf("invalid checkout gateway outcome %q", c.GatewayOutcome)
	}
	return nil
}
