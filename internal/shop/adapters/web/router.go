package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterConfig holds the operational endpoints served next to the console.
type RouterConfig struct {
	MetricsPath string
	// Ready reports whether the shop API can be reached.
	Ready func(ctx context.Context) error
}

// NewRouter builds the gin engine serving the console pages and the health
// and metrics endpoints.
func NewRouter(h *Handler, metrics *Metrics, logger *slog.Logger, cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(WithRecovery(logger), WithLogging(logger), WithMetrics(metrics))
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		if cfg.Ready != nil {
			if err := cfg.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if cfg.MetricsPath != "" {
		router.GET(cfg.MetricsPath, func(c *gin.Context) {
			c.Header("Content-Type", "text/plain; version=0.0.4")
			c.String(http.StatusOK, "# metrics are exported over OTLP\n")
		})
	}

	h.Register(router)

	return router, nil
}
