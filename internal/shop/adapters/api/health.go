package api

import (
	"context"
	"time"

	"github.com/dejobratic/minishop/internal/shop/ports"
)

// CheckHealth asks the API for the smallest possible product page.
func CheckHealth(ctx context.Context, products ports.ProductAPI) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := products.ListProducts(ctx, ports.PageRequest{Page: 0, Size: 1})
	return err
}
