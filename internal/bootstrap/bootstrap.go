// Package bootstrap assembles the pieces both console front ends share.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dejobratic/minishop/internal/config"
	"github.com/dejobratic/minishop/internal/shop/adapters/api"
	"github.com/dejobratic/minishop/internal/shop/adapters/memory"
	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/metrics"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"github.com/dejobratic/minishop/internal/telemetry"
	"go.opentelemetry.io/otel/metric"
)

// Console holds the wired dependencies of a running console.
type Console struct {
	Config    *config.Config
	Logger    *slog.Logger
	Telemetry *telemetry.Telemetry
	API       ports.ShopAPI
	Metrics   *metrics.Metrics
}

// New loads configuration, starts telemetry and connects the shop API.
// Logs go to logOut.
func New(ctx context.Context, logOut io.Writer) (*Console, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.NewLogger(logOut, telemetry.ParseLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	meter := tel.Meter(cfg.Service.Name)

	screenMetrics, err := metrics.NewMetrics(meter)
	if err != nil {
		_ = tel.Shutdown(ctx)
		return nil, fmt.Errorf("create console metrics: %w", err)
	}

	shop, err := newShopAPI(cfg, meter, logger)
	if err != nil {
		_ = tel.Shutdown(ctx)
		return nil, err
	}

	return &Console{
		Config:    cfg,
		Logger:    logger,
		Telemetry: tel,
		API:       shop,
		Metrics:   screenMetrics,
	}, nil
}

func newShopAPI(cfg *config.Config, meter metric.Meter, logger *slog.Logger) (ports.ShopAPI, error) {
	apiMetrics, err := api.NewMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("create shop api metrics: %w", err)
	}

	if cfg.ShopAPI.Backend == config.BackendMemory {
		logger.Info("using in-memory shop backend")
		backend := memory.NewBackend()
		backend.Seed(DemoCatalog()...)
		return api.NewObservableClient(backend, apiMetrics), nil
	}

	logger.Info("using remote shop api", "base_url", cfg.ShopAPI.BaseURL, "timeout", cfg.ShopAPI.Timeout)
	client := api.NewClient(cfg.ShopAPI.BaseURL, cfg.ShopAPI.Timeout)
	return api.NewObservableClient(client, apiMetrics), nil
}

// Shutdown flushes telemetry.
func (c *Console) Shutdown(ctx context.Context) error {
	return c.Telemetry.Shutdown(ctx)
}

// DemoCatalog is the product set the in-memory backend starts with.
func DemoCatalog() []domain.Product {
	names := []string{
		"볼펜", "노트", "연필", "지우개", "형광펜", "스테이플러", "가위", "풀",
		"테이프", "자", "클립", "포스트잇", "파일철", "수정테이프", "마커",
	}
	products := make([]domain.Product, 0, len(names))
	for i, name := range names {
		products = append(products, domain.Product{
			Name:  name,
			Price: float64(500 + 250*i),
			Stock: (i * 3) % 7,
		})
	}
	return products
}
