// Package config loads the service configuration from STOREFRONT_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvFreightOrigin  = "STOREFRONT_FREIGHT_ORIGIN_POSTAL_CODE"
	EnvFreightTimeout = "STOREFRONT_FREIGHT_TIMEOUT"
	EnvOrderGraceDays = "STOREFRONT_ORDER_GRACE_DAYS"
	EnvStoreCurrency  = "STOREFRONT_STORE_CURRENCY"
	EnvSessionTTL     = "STOREFRONT_SESSION_TTL"
	EnvFreightBaseURL = "STOREFRONT_FREIGHT_BASE_URL"
	EnvFreightService = "STOREFRONT_FREIGHT_SERVICE_CODE"
	EnvFreightEnabled = "STOREFRONT_FREIGHT_ENABLED"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Freight FreightConfig
	Order   OrderConfig
	Store   StoreConfig
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

func (c Config) validate() error {
	if _, err := c.Store.Unit(); err != nil {
		return err
	}
	if c.Order.GraceDays < 0 {
		return fmt.Errorf("%s must not be negative", EnvOrderGraceDays)
	}
	if len(c.Freight.OriginPostalCode) != 8 {
		return fmt.Errorf("%s must have 8 digits", EnvFreightOrigin)
	}
	return nil
}

type AppConfig struct {
	Env       string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port      string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel  string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"STOREFRONT_DB_DSN" required:"true"`
	MaxConns        int32         `envconfig:"STOREFRONT_DB_MAX_CONNS" default:"20"`
	MinConns        int32         `envconfig:"STOREFRONT_DB_MIN_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	RunMigrations   bool          `envconfig:"STOREFRONT_DB_RUN_MIGRATIONS" default:"true"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type SessionConfig struct {
	TTL          time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"720h"`
	CookieName   string        `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_session"`
	CookieSecure bool          `envconfig:"STOREFRONT_SESSION_COOKIE_SECURE" default:"false"`
}

type FreightConfig struct {
	Enabled          bool          `envconfig:"STOREFRONT_FREIGHT_ENABLED" default:"true"`
	BaseURL          string        `envconfig:"STOREFRONT_FREIGHT_BASE_URL" default:"http://ws.correios.com.br/calculador/CalcPrecoPrazo.aspx"`
	OriginPostalCode string        `envconfig:"STOREFRONT_FREIGHT_ORIGIN_POSTAL_CODE" default:"09853120"`
	ServiceCode      string        `envconfig:"STOREFRONT_FREIGHT_SERVICE_CODE" default:"04014"`
	Timeout          time.Duration `envconfig:"STOREFRONT_FREIGHT_TIMEOUT" default:"10s"`
}

type OrderConfig struct {
	GraceDays int `envconfig:"STOREFRONT_ORDER_GRACE_DAYS" default:"10"`
}

type StoreConfig struct {
	Currency string `envconfig:"STOREFRONT_STORE_CURRENCY" default:"BRL"`
}

func (s StoreConfig) Unit() (currency.Unit, error) {
	unit, err := currency.ParseISO(s.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%s[%s] is not valid: %w", EnvStoreCurrency, s.Currency, err)
	}
	return unit, nil
}
