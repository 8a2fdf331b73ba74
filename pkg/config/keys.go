package config

const (
	EnvPrefix = "SCENTSHOP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "SCENTSHOP_APP_ENV"
	EnvPort            = "SCENTSHOP_APP_PORT"
	EnvLogLevel        = "SCENTSHOP_LOG_LEVEL"
	EnvLogWarnStack    = "SCENTSHOP_LOG_WARN_STACK"
	EnvShutdownTimeout = "SCENTSHOP_SHUTDOWN_TIMEOUT"
	EnvCatalogPath     = "SCENTSHOP_CATALOG_PATH"
	EnvNotifyTTL       = "SCENTSHOP_NOTIFY_TTL"
	EnvNotifyCapacity  = "SCENTSHOP_NOTIFY_CAPACITY"
	EnvMetricsEnabled  = "SCENTSHOP_METRICS_ENABLED"
	EnvMetricsPath     = "SCENTSHOP_METRICS_PATH"
	EnvCORSOrigins     = "SCENTSHOP_CORS_ORIGINS"
)
