package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dejobratic/minishop/internal/bootstrap"
	"github.com/dejobratic/minishop/internal/shop/adapters/api"
	"github.com/dejobratic/minishop/internal/shop/adapters/web"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console, err := bootstrap.New(ctx, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start console: %v\n", err)
		os.Exit(1)
	}
	cfg := console.Config
	logger := console.Logger

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := console.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	webMetrics, err := web.NewMetrics(console.Telemetry.Meter(cfg.Service.Name))
	if err != nil {
		logger.Error("failed to create web metrics", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)

	handler := web.NewHandler(console.API, logger, console.Metrics, web.Options{
		Location:         cfg.Console.Location,
		CatalogFetchSize: cfg.Console.CatalogFetchSize,
	})
	router, err := web.NewRouter(handler, webMetrics, logger, web.RouterConfig{
		MetricsPath: cfg.HTTP.MetricsPath,
		Ready: func(ctx context.Context) error {
			return api.CheckHealth(ctx, console.API)
		},
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           otelhttp.NewHandler(router, "console"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("console starting", "port", cfg.HTTP.Port, "backend", cfg.ShopAPI.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("console stopped")
	}
}
