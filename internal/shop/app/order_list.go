package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/metrics"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// OrderList is the order history screen. Product names come from a catalog
// fetched alongside the orders.
type OrderList struct {
	api       ports.ShopAPI
	obs       *observer
	loc       *time.Location
	fetchSize int

	Orders  []domain.Order
	Names   map[domain.ID]string
	Loading bool
}

func NewOrderList(api ports.ShopAPI, logger *slog.Logger, m *metrics.Metrics, loc *time.Location, fetchSize int) *OrderList {
	if loc == nil {
		loc = time.Local
	}
	if fetchSize <= 0 {
		fetchSize = DefaultCatalogFetchSize
	}
	return &OrderList{
		api:       api,
		obs:       &observer{logger: logger, metrics: m},
		loc:       loc,
		fetchSize: fetchSize,
		Names:     map[domain.ID]string{},
	}
}

// Load fetches orders and products concurrently and rebuilds the name map.
// Either fetch failing fails the whole load and keeps the previous state.
func (l *OrderList) Load(ctx context.Context) Notice {
	ctx, run := l.obs.start(ctx, "orders.load")

	l.Loading = true
	defer func() { l.Loading = false }()

	if err := l.load(ctx); err != nil {
		return run.finish(failure(ports.MessageOr(err, "orders load failed")), err)
	}
	return run.finish(Notice{}, nil)
}

func (l *OrderList) load(ctx context.Context) error {
	var (
		orders   []domain.Order
		products *ports.ProductPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = l.api.ListOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = l.api.ListProducts(gctx, ports.PageRequest{Page: 0, Size: l.fetchSize})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	names := make(map[domain.ID]string, len(products.Items))
	for _, p := range products.Items {
		names[p.ID] = p.Name
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	l.Orders = orders
	l.Names = names
	return nil
}

// Cancel cancels order id and reloads the list.
func (l *OrderList) Cancel(ctx context.Context, id domain.ID) Notice {
	ctx, run := l.obs.start(ctx, "order.cancel", attribute.String("order.id", id.String()))

	if err := l.api.CancelOrder(ctx, id); err != nil {
		return run.finish(failure(ports.MessageOr(err, "cancel failed")), err)
	}

	l.Loading = true
	defer func() { l.Loading = false }()

	if err := l.load(ctx); err != nil {
		return run.finish(success("").withRefreshError(err, "orders load failed"), err)
	}
	return run.finish(Notice{}, nil)
}

// ProductName resolves the name shown for o.
func (l *OrderList) ProductName(o domain.Order) string {
	return o.DisplayName(l.Names)
}

// StatusLabel maps the wire status to its display label.
func (l *OrderList) StatusLabel(o domain.Order) string {
	return o.Status.Label()
}

// Timestamp formats the creation time of o in the console's zone.
func (l *OrderList) Timestamp(o domain.Order) string {
	return domain.FormatTimestamp(o.CreatedAt, l.loc)
}
