// Package web serves the MiniShop admin console as server-rendered pages.
// Every request builds fresh screens from the shop API; page, selection and
// open dialog travel in query and form values.
package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dejobratic/minishop/internal/shop/app"
	"github.com/dejobratic/minishop/internal/shop/metrics"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"github.com/gin-gonic/gin"
)

type Options struct {
	Location         *time.Location
	CatalogFetchSize int
}

// Handler exposes the console pages.
type Handler struct {
	api     ports.ShopAPI
	logger  *slog.Logger
	metrics *metrics.Metrics
	opts    Options
}

func NewHandler(api ports.ShopAPI, logger *slog.Logger, m *metrics.Metrics, opts Options) *Handler {
	return &Handler{api: api, logger: logger, metrics: m, opts: opts}
}

// Register binds the console routes.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/products")
	})

	r.GET("/products", h.listProducts)
	r.POST("/products", h.createProduct)
	r.GET("/products/deleted", h.listDeletedProducts)
	r.POST("/products/:id", h.editProduct)
	r.POST("/products/:id/delete", h.deleteProduct)
	r.POST("/products/:id/restore", h.restoreProduct)

	r.GET("/order-product", h.showOrderProduct)
	r.POST("/order-product/select", h.selectProduct)
	r.POST("/order-product/orders", h.placeOrder)

	r.GET("/orders", h.listOrders)
	r.POST("/orders/:id/cancel", h.cancelOrder)
}

func (h *Handler) newProductManager() *app.ProductManager {
	return app.NewProductManager(h.api, h.logger, h.metrics)
}

func (h *Handler) newOrderPlacer() *app.OrderPlacer {
	return app.NewOrderPlacer(h.api, h.logger, h.metrics, h.opts.CatalogFetchSize)
}

func (h *Handler) newOrderList() *app.OrderList {
	return app.NewOrderList(h.api, h.logger, h.metrics, h.opts.Location, h.opts.CatalogFetchSize)
}

// statusFor maps a notice to the response code: rejected input is 422, a
// failed upstream call 502.
func statusFor(n app.Notice) int {
	switch n.Level {
	case app.NoticeInvalid:
		return http.StatusUnprocessableEntity
	case app.NoticeFailure:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// firstError returns the first notice that reports a problem, else the last one.
func firstError(notices ...app.Notice) app.Notice {
	var last app.Notice
	for _, n := range notices {
		if n.IsError() {
			return n
		}
		if !n.IsZero() {
			last = n
		}
	}
	return last
}

func intValue(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
