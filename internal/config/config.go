package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the console front ends.
type Config struct {
	HTTP      HTTPConfig
	ShopAPI   ShopAPIConfig
	Console   ConsoleConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	MetricsPath   string
	ShutdownGrace int
}

// ShopAPIConfig points the console at the remote API. Backend "memory"
// swaps the HTTP client for an in-process fake.
type ShopAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	Backend string
}

type ConsoleConfig struct {
	Location         *time.Location
	CatalogFetchSize int
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	BackendHTTP   = "http"
	BackendMemory = "memory"
)

const (
	defaultHTTPPort         = 3000
	defaultMetricsPath      = "/metrics"
	defaultShutdownGrace    = 15
	defaultShopAPIBaseURL   = "http://localhost:8080/api"
	defaultShopAPITimeout   = 5
	defaultTimezone         = "Local"
	defaultCatalogFetchSize = 9999
	defaultServiceName      = "minishop-console"
	defaultServiceVersion   = "0.1.0"
	defaultEnvironment      = "development"
	defaultLogLevel         = "info"
	defaultOTelSampleRate   = 1.0
)

// Load reads configuration from environment variables, applying defaults when
// needed. Variables from a .env file in the working directory are applied first
// without overriding the real environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	apiCfg, err := loadShopAPIConfig()
	if err != nil {
		return nil, fmt.Errorf("loading shop API config: %w", err)
	}

	consoleCfg, err := loadConsoleConfig()
	if err != nil {
		return nil, fmt.Errorf("loading console config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		HTTP:      httpCfg,
		ShopAPI:   apiCfg,
		Console:   consoleCfg,
		Telemetry: telCfg,
		Service:   loadServiceConfig(),
	}, nil
}

func loadHTTPConfig() (HTTPConfig, error) {
	port, err := getIntEnv("CONSOLE_HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return HTTPConfig{}, err
	}

	shutdownGrace, err := getIntEnv("CONSOLE_SHUTDOWN_GRACE_SECONDS", defaultShutdownGrace)
	if err != nil {
		return HTTPConfig{}, err
	}

	return HTTPConfig{
		Port:          port,
		MetricsPath:   getEnvOrDefault("CONSOLE_METRICS_PATH", defaultMetricsPath),
		ShutdownGrace: shutdownGrace,
	}, nil
}

func loadShopAPIConfig() (ShopAPIConfig, error) {
	timeout, err := getIntEnv("SHOP_API_TIMEOUT_SECONDS", defaultShopAPITimeout)
	if err != nil {
		return ShopAPIConfig{}, err
	}

	backend := getEnvOrDefault("SHOP_API_BACKEND", BackendHTTP)
	if backend != BackendHTTP && backend != BackendMemory {
		return ShopAPIConfig{}, fmt.Errorf("invalid SHOP_API_BACKEND %q: want %s or %s", backend, BackendHTTP, BackendMemory)
	}

	return ShopAPIConfig{
		BaseURL: getEnvOrDefault("SHOP_API_BASE_URL", defaultShopAPIBaseURL),
		Timeout: time.Duration(timeout) * time.Second,
		Backend: backend,
	}, nil
}

func loadConsoleConfig() (ConsoleConfig, error) {
	name := getEnvOrDefault("CONSOLE_TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(name)
	if err != nil {
		return ConsoleConfig{}, fmt.Errorf("invalid CONSOLE_TIMEZONE: %w", err)
	}

	fetchSize, err := getIntEnv("CONSOLE_CATALOG_FETCH_SIZE", defaultCatalogFetchSize)
	if err != nil {
		return ConsoleConfig{}, err
	}
	if fetchSize < 1 {
		return ConsoleConfig{}, fmt.Errorf("invalid CONSOLE_CATALOG_FETCH_SIZE: must be positive")
	}

	return ConsoleConfig{
		Location:         loc,
		CatalogFetchSize: fetchSize,
	}, nil
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTelEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EnableTracing: getBoolEnv("OTEL_ENABLE_TRACING", true),
		EnableMetrics: getBoolEnv("OTEL_ENABLE_METRICS", true),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("CONSOLE_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
