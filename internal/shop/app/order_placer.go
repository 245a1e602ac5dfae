package app

import (
	"context"
	"log/slog"

	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/metrics"
	"github.com/dejobratic/minishop/internal/shop/paging"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// OrderPageSize is the number of product cards per page on the ordering screen.
	OrderPageSize = 12
	// DefaultCatalogFetchSize is the page size used to pull the whole catalog in one request.
	DefaultCatalogFetchSize = 9999
)

// OrderPlacer is the ordering screen: the whole catalog is fetched once and
// paginated locally, one product is selected and ordered with quantity 1.
type OrderPlacer struct {
	api       ports.ShopAPI
	obs       *observer
	fetchSize int

	Catalog    *paging.Local[domain.Product]
	Selected   *domain.Product
	Submitting bool
}

func NewOrderPlacer(api ports.ShopAPI, logger *slog.Logger, m *metrics.Metrics, fetchSize int) *OrderPlacer {
	if fetchSize <= 0 {
		fetchSize = DefaultCatalogFetchSize
	}
	return &OrderPlacer{
		api:       api,
		obs:       &observer{logger: logger, metrics: m},
		fetchSize: fetchSize,
		Catalog:   paging.NewLocal[domain.Product](OrderPageSize),
	}
}

// LoadCatalog replaces the catalog with a fresh listing and clamps the page.
// The selection is left alone. On failure the previous catalog is kept.
func (p *OrderPlacer) LoadCatalog(ctx context.Context) ([]domain.Product, Notice) {
	ctx, run := p.obs.start(ctx, "catalog.load")

	items, err := p.fetchCatalog(ctx)
	if err != nil {
		return p.Catalog.All(), run.finish(failure(ports.MessageOr(err, "products load failed")), err)
	}

	return items, run.finish(Notice{}, nil)
}

func (p *OrderPlacer) fetchCatalog(ctx context.Context) ([]domain.Product, error) {
	res, err := p.api.ListProducts(ctx, ports.PageRequest{Page: 0, Size: p.fetchSize})
	if err != nil {
		return nil, err
	}

	items := res.Items
	if items == nil {
		items = []domain.Product{}
	}
	p.Catalog.SetItems(items)
	return items, nil
}

// Paginate moves the catalog to page, clamped into range.
func (p *OrderPlacer) Paginate(page int) {
	p.Catalog.Go(page)
}

// SelectProduct makes product the selection. Sold-out products cannot be
// selected and leave the current selection as it is.
func (p *OrderPlacer) SelectProduct(product domain.Product) bool {
	if product.SoldOut() {
		return false
	}
	selected := product
	p.Selected = &selected
	return true
}

// SelectByID selects the catalog entry with id, if there is one and it is in stock.
func (p *OrderPlacer) SelectByID(id domain.ID) bool {
	for _, product := range p.Catalog.All() {
		if product.ID == id {
			return p.SelectProduct(product)
		}
	}
	return false
}

// ResumeSelection restores a selection made earlier, looked up in the current
// catalog. Stock is not checked: the product may have sold out since.
func (p *OrderPlacer) ResumeSelection(id domain.ID) bool {
	for _, product := range p.Catalog.All() {
		if product.ID == id {
			selected := product
			p.Selected = &selected
			return true
		}
	}
	return false
}

// IsSelected reports whether product is the current selection.
func (p *OrderPlacer) IsSelected(product domain.Product) bool {
	return p.Selected != nil && p.Selected.ID == product.ID
}

// PlaceOrder orders one unit of the selection. After a successful order the
// catalog is reloaded and the selection refreshed from it; if the product is
// gone from the new catalog the stale selection stays.
func (p *OrderPlacer) PlaceOrder(ctx context.Context) Notice {
	ctx, run := p.obs.start(ctx, "order.place")

	if p.Selected == nil {
		return run.finish(invalid("상품을 선택해주세요"), nil)
	}
	if p.Selected.Stock < 1 {
		return run.finish(invalid("재고가 부족합니다"), nil)
	}

	selected := *p.Selected
	run.annotate(attribute.String("product.id", selected.ID.String()))

	p.Submitting = true
	defer func() { p.Submitting = false }()

	err := p.api.CreateOrder(ctx, domain.OrderRequest{ProductID: selected.ID, Quantity: 1})
	if err != nil {
		return run.finish(failure(ports.MessageOr(err, "order failed")), err)
	}

	done := success(MessageOrdered)
	if _, err := p.fetchCatalog(ctx); err != nil {
		return run.finish(done.withRefreshError(err, "products load failed"), err)
	}
	for _, product := range p.Catalog.All() {
		if product.ID == selected.ID {
			refreshed := product
			p.Selected = &refreshed
			break
		}
	}

	return run.finish(done, nil)
}
