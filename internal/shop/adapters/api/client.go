// Package api is the HTTP client for the remote shop API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	headerRequestID      = "X-Request-ID"
	headerIdempotencyKey = "Idempotency-Key"

	// maxErrorBody caps how much of a failed response is read looking for a message.
	maxErrorBody = 64 << 10
)

// Client talks JSON to the shop API under a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context, req ports.PageRequest) (*ports.ProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("size", strconv.Itoa(req.Size))

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products?"+query.Encode(), nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	page, err := decodeProductPage(raw)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return page, nil
}

func (c *Client) ListDeletedProducts(ctx context.Context) ([]domain.Product, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products/deleted", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("list deleted products: %w", err)
	}

	page, err := decodeProductPage(raw)
	if err != nil {
		return nil, fmt.Errorf("list deleted products: %w", err)
	}
	return page.Items, nil
}

func (c *Client) CreateProduct(ctx context.Context, form domain.ProductForm) error {
	if err := c.do(ctx, http.MethodPost, "/products", form, nil, nil); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (c *Client) UpdateProduct(ctx context.Context, id domain.ID, form domain.ProductForm) error {
	if err := c.do(ctx, http.MethodPatch, "/products/"+url.PathEscape(id.String()), form, nil, nil); err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteProduct(ctx context.Context, id domain.ID) error {
	if err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id.String()), nil, nil, nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (c *Client) RestoreProduct(ctx context.Context, id domain.ID) error {
	if err := c.do(ctx, http.MethodPost, "/products/"+url.PathEscape(id.String())+"/restore", nil, nil, nil); err != nil {
		return fmt.Errorf("restore product %s: %w", id, err)
	}
	return nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders, err := decodeOrders(raw)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// CreateOrder posts the order with a fresh idempotency key so a retried
// request cannot place it twice.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) error {
	headers := http.Header{}
	headers.Set(headerIdempotencyKey, uuid.NewString())

	if err := c.do(ctx, http.MethodPost, "/orders", req, headers, nil); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (c *Client) CancelOrder(ctx context.Context, id domain.ID) error {
	if err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id.String())+"/cancel", nil, nil, nil); err != nil {
		return fmt.Errorf("cancel order %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers http.Header, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ports.APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("decode response: empty body")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ ports.ShopAPI = (*Client)(nil)
