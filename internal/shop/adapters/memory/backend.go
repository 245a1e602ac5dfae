package memory

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/ports"
)

// Backend is an in-memory shop API useful for local development and tests.
// It follows the remote contract: soft deletes, stock taken on order and
// given back on cancel, errors carried as *ports.APIError.
type Backend struct {
	mu          sync.RWMutex
	products    map[domain.ID]domain.Product
	orders      map[domain.ID]domain.Order
	nextProduct int
	nextOrder   int
	now         func() time.Time
}

// NewBackend constructs an empty backend.
func NewBackend() *Backend {
	return &Backend{
		products: make(map[domain.ID]domain.Product),
		orders:   make(map[domain.ID]domain.Order),
		now:      time.Now,
	}
}

// Seed stores products as given, assigning identifiers to those without one.
func (b *Backend) Seed(products ...domain.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = b.newID()
		}
		b.products[p.ID] = p
	}
}

func (b *Backend) newID() domain.ID {
	b.nextProduct++
	return domain.ID(strconv.Itoa(b.nextProduct))
}

func notFound(what string) error {
	return &ports.APIError{StatusCode: http.StatusNotFound, Message: what + " not found"}
}

func badRequest(message string) error {
	return &ports.APIError{StatusCode: http.StatusBadRequest, Message: message}
}

// ListProducts returns a zero-based page of products that are not deleted.
func (b *Backend) ListProducts(_ context.Context, req ports.PageRequest) (*ports.ProductPage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	active := b.productsWhere(func(p domain.Product) bool { return !p.Deleted })

	size := req.Size
	if size <= 0 {
		size = 20
	}
	page := req.Page
	if page < 0 {
		page = 0
	}
	totalPages := (len(active) + size - 1) / size

	items := []domain.Product{}
	start := page * size
	if start < len(active) {
		end := start + size
		if end > len(active) {
			end = len(active)
		}
		items = append(items, active[start:end]...)
	}

	return &ports.ProductPage{Items: items, TotalPages: &totalPages, Number: &page}, nil
}

// ListDeletedProducts returns every soft-deleted product.
func (b *Backend) ListDeletedProducts(_ context.Context) ([]domain.Product, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.productsWhere(func(p domain.Product) bool { return p.Deleted }), nil
}

func (b *Backend) productsWhere(keep func(domain.Product) bool) []domain.Product {
	result := []domain.Product{}
	for _, p := range b.products {
		if keep(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return idLess(result[i].ID, result[j].ID) })
	return result
}

func (b *Backend) CreateProduct(_ context.Context, form domain.ProductForm) error {
	if err := form.Validate(); err != nil {
		return badRequest(err.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.newID()
	b.products[id] = domain.Product{ID: id, Name: form.Name, Price: form.Price, Stock: form.Stock}
	return nil
}

func (b *Backend) UpdateProduct(_ context.Context, id domain.ID, form domain.ProductForm) error {
	if err := form.Validate(); err != nil {
		return badRequest(err.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.products[id]
	if !ok || p.Deleted {
		return notFound("product")
	}
	p.Name, p.Price, p.Stock = form.Name, form.Price, form.Stock
	b.products[id] = p
	return nil
}

func (b *Backend) DeleteProduct(_ context.Context, id domain.ID) error {
	return b.setDeleted(id, true)
}

func (b *Backend) RestoreProduct(_ context.Context, id domain.ID) error {
	return b.setDeleted(id, false)
}

func (b *Backend) setDeleted(id domain.ID, deleted bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.products[id]
	if !ok || p.Deleted == deleted {
		return notFound("product")
	}
	p.Deleted = deleted
	b.products[id] = p
	return nil
}

// ListOrders returns every order, oldest first.
func (b *Backend) ListOrders(_ context.Context) ([]domain.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]domain.Order, 0, len(b.orders))
	for _, o := range b.orders {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return idLess(result[i].ID, result[j].ID) })
	return result, nil
}

// CreateOrder takes req.Quantity units of stock from the product.
func (b *Backend) CreateOrder(_ context.Context, req domain.OrderRequest) error {
	if req.Quantity < 1 {
		return badRequest("quantity must be positive")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.products[req.ProductID]
	if !ok || p.Deleted {
		return notFound("product")
	}
	if p.Stock < req.Quantity {
		return &ports.APIError{StatusCode: http.StatusConflict, Message: "재고가 부족합니다"}
	}

	p.Stock -= req.Quantity
	b.products[p.ID] = p

	b.nextOrder++
	id := domain.ID(strconv.Itoa(b.nextOrder))
	b.orders[id] = domain.Order{
		ID:          id,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    req.Quantity,
		Status:      domain.StatusCreated,
		CreatedAt:   b.now().Format("2006-01-02T15:04:05"),
	}
	return nil
}

// CancelOrder cancels a created order and returns its stock.
func (b *Backend) CancelOrder(_ context.Context, id domain.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[id]
	if !ok {
		return notFound("order")
	}
	if !o.Cancelable() {
		return &ports.APIError{StatusCode: http.StatusConflict, Message: "order already canceled"}
	}

	o.Status = domain.StatusCanceled
	b.orders[id] = o

	if p, ok := b.products[o.ProductID]; ok {
		p.Stock += o.Quantity
		b.products[p.ID] = p
	}
	return nil
}

// idLess orders numeric identifiers numerically and everything else lexically.
func idLess(a, b domain.ID) bool {
	x, errX := strconv.Atoi(string(a))
	y, errY := strconv.Atoi(string(b))
	if errX == nil && errY == nil {
		return x < y
	}
	return a < b
}

var _ ports.ShopAPI = (*Backend)(nil)
