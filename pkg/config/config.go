package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Notify  NotifyConfig
	Metrics MetricsConfig
	CORS    CORSConfig
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

type AppConfig struct {
	Env             string        `envconfig:"SCENTSHOP_APP_ENV" default:"dev"`
	Port            string        `envconfig:"SCENTSHOP_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"SCENTSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"SCENTSHOP_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"SCENTSHOP_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at an optional JSON catalog that replaces the embedded one.
type CatalogConfig struct {
	Path string `envconfig:"SCENTSHOP_CATALOG_PATH"`
}

type NotifyConfig struct {
	TTL      time.Duration `envconfig:"SCENTSHOP_NOTIFY_TTL" default:"4s"`
	Capacity int           `envconfig:"SCENTSHOP_NOTIFY_CAPACITY" default:"20"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"SCENTSHOP_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"SCENTSHOP_METRICS_PATH" default:"/metrics"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SCENTSHOP_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (c *Config) validate() error {
	if c.Notify.Capacity < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", EnvNotifyCapacity, c.Notify.Capacity)
	}
	if c.Notify.TTL <= 0 {
		return fmt.Errorf("%s must be positive, got %s", EnvNotifyTTL, c.Notify.TTL)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%s must start with '/', got %q", EnvMetricsPath, c.Metrics.Path)
	}
	return nil
}
