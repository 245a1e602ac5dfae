package ports

import (
	"context"

	"github.com/dejobratic/minishop/internal/shop/domain"
)

// ProductAPI exposes the product operations of the remote shop API.
type ProductAPI interface {
	ListProducts(ctx context.Context, req PageRequest) (*ProductPage, error)
	ListDeletedProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, form domain.ProductForm) error
	UpdateProduct(ctx context.Context, id domain.ID, form domain.ProductForm) error
	DeleteProduct(ctx context.Context, id domain.ID) error
	RestoreProduct(ctx context.Context, id domain.ID) error
}

// OrderAPI exposes the order operations of the remote shop API.
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	CreateOrder(ctx context.Context, req domain.OrderRequest) error
	CancelOrder(ctx context.Context, id domain.ID) error
}

// ShopAPI is the full contract consumed by the console.
type ShopAPI interface {
	ProductAPI
	OrderAPI
}

// PageRequest selects a zero-based page of the product listing.
type PageRequest struct {
	Page int
	Size int
}

// ProductPage is a product listing response. TotalPages and Number are nil
// when the server answered with a bare list.
type ProductPage struct {
	Items      []domain.Product
	TotalPages *int
	Number     *int
}
