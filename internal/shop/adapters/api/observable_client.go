package api

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"github.com/dejobratic/minishop/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableClient wraps a ShopAPI with a span and a duration metric per call.
type ObservableClient struct {
	api     ports.ShopAPI
	metrics *Metrics
}

func NewObservableClient(api ports.ShopAPI, metrics *Metrics) *ObservableClient {
	return &ObservableClient{
		api:     api,
		metrics: metrics,
	}
}

func (c *ObservableClient) observe(ctx context.Context, operation string, attrs []attribute.KeyValue, call func(context.Context) error) error {
	ctx, span := telemetry.StartClientSpan(ctx, "ShopAPI."+operation, append(attrs, attribute.String("operation", operation))...)

	start := time.Now()
	err := call(ctx)
	duration := time.Since(start).Seconds()

	c.metrics.RecordRequest(ctx, operation, requestStatus(err), duration)
	telemetry.EndSpan(span, err)
	return err
}

func requestStatus(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) {
		return strconv.Itoa(apiErr.StatusCode)
	}
	return "transport_error"
}

func (c *ObservableClient) ListProducts(ctx context.Context, req ports.PageRequest) (*ports.ProductPage, error) {
	var page *ports.ProductPage
	err := c.observe(ctx, "ListProducts", []attribute.KeyValue{
		attribute.Int("page", req.Page),
		attribute.Int("page_size", req.Size),
	}, func(ctx context.Context) error {
		var err error
		page, err = c.api.ListProducts(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (c *ObservableClient) ListDeletedProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.observe(ctx, "ListDeletedProducts", nil, func(ctx context.Context) error {
		var err error
		products, err = c.api.ListDeletedProducts(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (c *ObservableClient) CreateProduct(ctx context.Context, form domain.ProductForm) error {
	return c.observe(ctx, "CreateProduct", nil, func(ctx context.Context) error {
		return c.api.CreateProduct(ctx, form)
	})
}

func (c *ObservableClient) UpdateProduct(ctx context.Context, id domain.ID, form domain.ProductForm) error {
	attrs := []attribute.KeyValue{attribute.String("product.id", id.String())}
	return c.observe(ctx, "UpdateProduct", attrs, func(ctx context.Context) error {
		return c.api.UpdateProduct(ctx, id, form)
	})
}

func (c *ObservableClient) DeleteProduct(ctx context.Context, id domain.ID) error {
	attrs := []attribute.KeyValue{attribute.String("product.id", id.String())}
	return c.observe(ctx, "DeleteProduct", attrs, func(ctx context.Context) error {
		return c.api.DeleteProduct(ctx, id)
	})
}

func (c *ObservableClient) RestoreProduct(ctx context.Context, id domain.ID) error {
	attrs := []attribute.KeyValue{attribute.String("product.id", id.String())}
	return c.observe(ctx, "RestoreProduct", attrs, func(ctx context.Context) error {
		return c.api.RestoreProduct(ctx, id)
	})
}

func (c *ObservableClient) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.observe(ctx, "ListOrders", nil, func(ctx context.Context) error {
		var err error
		orders, err = c.api.ListOrders(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *ObservableClient) CreateOrder(ctx context.Context, req domain.OrderRequest) error {
	attrs := []attribute.KeyValue{
		attribute.String("product.id", req.ProductID.String()),
		attribute.Int("quantity", req.Quantity),
	}
	return c.observe(ctx, "CreateOrder", attrs, func(ctx context.Context) error {
		return c.api.CreateOrder(ctx, req)
	})
}

func (c *ObservableClient) CancelOrder(ctx context.Context, id domain.ID) error {
	attrs := []attribute.KeyValue{attribute.String("order.id", id.String())}
	return c.observe(ctx, "CancelOrder", attrs, func(ctx context.Context) error {
		return c.api.CancelOrder(ctx, id)
	})
}

var _ ports.ShopAPI = (*ObservableClient)(nil)
