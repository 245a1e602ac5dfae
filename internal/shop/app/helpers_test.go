package app_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/dejobratic/minishop/internal/shop/adapters/memory"
	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/metrics"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"go.opentelemetry.io/otel/metric/noop"
)

// mockAPI delegates to an in-memory backend, counts calls and lets tests
// replace single operations.
type mockAPI struct {
	*memory.Backend

	mu    sync.Mutex
	calls map[string]int

	listProductsFn func(ctx context.Context, req ports.PageRequest) (*ports.ProductPage, error)
	createFn       func(ctx context.Context, form domain.ProductForm) error
	updateFn       func(ctx context.Context, id domain.ID, form domain.ProductForm) error
	deleteFn       func(ctx context.Context, id domain.ID) error
	listDeletedFn  func(ctx context.Context) ([]domain.Product, error)
	listOrdersFn   func(ctx context.Context) ([]domain.Order, error)
	createOrderFn  func(ctx context.Context, req domain.OrderRequest) error
	cancelOrderFn  func(ctx context.Context, id domain.ID) error
}

func newMockAPI(products ...domain.Product) *mockAPI {
	b := memory.NewBackend()
	b.Seed(products...)
	return &mockAPI{Backend: b, calls: map[string]int{}}
}

func (m *mockAPI) ListProducts(ctx context.Context, req ports.PageRequest) (*ports.ProductPage, error) {
	m.record("ListProducts")
	if m.listProductsFn != nil {
		return m.listProductsFn(ctx, req)
	}
	return m.Backend.ListProducts(ctx, req)
}

func (m *mockAPI) ListDeletedProducts(ctx context.Context) ([]domain.Product, error) {
	m.record("ListDeletedProducts")
	if m.listDeletedFn != nil {
		return m.listDeletedFn(ctx)
	}
	return m.Backend.ListDeletedProducts(ctx)
}

func (m *mockAPI) CreateProduct(ctx context.Context, form domain.ProductForm) error {
	m.record("CreateProduct")
	if m.createFn != nil {
		return m.createFn(ctx, form)
	}
	return m.Backend.CreateProduct(ctx, form)
}

func (m *mockAPI) UpdateProduct(ctx context.Context, id domain.ID, form domain.ProductForm) error {
	m.record("UpdateProduct")
	if m.updateFn != nil {
		return m.updateFn(ctx, id, form)
	}
	return m.Backend.UpdateProduct(ctx, id, form)
}

func (m *mockAPI) DeleteProduct(ctx context.Context, id domain.ID) error {
	m.record("DeleteProduct")
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return m.Backend.DeleteProduct(ctx, id)
}

func (m *mockAPI) RestoreProduct(ctx context.Context, id domain.ID) error {
	m.record("RestoreProduct")
	return m.Backend.RestoreProduct(ctx, id)
}

func (m *mockAPI) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.record("ListOrders")
	if m.listOrdersFn != nil {
		return m.listOrdersFn(ctx)
	}
	return m.Backend.ListOrders(ctx)
}

func (m *mockAPI) CreateOrder(ctx context.Context, req domain.OrderRequest) error {
	m.record("CreateOrder")
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, req)
	}
	return m.Backend.CreateOrder(ctx, req)
}

func (m *mockAPI) CancelOrder(ctx context.Context, id domain.ID) error {
	m.record("CancelOrder")
	if m.cancelOrderFn != nil {
		return m.cancelOrderFn(ctx, id)
	}
	return m.Backend.CancelOrder(ctx, id)
}

func (m *mockAPI) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
}

// network counts every call that would have gone over the wire.
func (m *mockAPI) network() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func testDeps(t *testing.T) (*slog.Logger, *metrics.Metrics) {
	t.Helper()
	m, err := metrics.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil)), m
}

func products(n int, stock int) []domain.Product {
	result := make([]domain.Product, n)
	for i := range result {
		result[i] = domain.Product{Name: "item", Price: 1000, Stock: stock}
	}
	return result
}
