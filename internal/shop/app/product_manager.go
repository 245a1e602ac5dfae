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

// ProductPageSize is the fixed page size of the management listing.
const ProductPageSize = 10

// DeletePrompt is the question a Confirmer is asked before a product is deleted.
const DeletePrompt = "상품을 삭제하시겠습니까?"

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) bool

// Dialog identifies the modal form open on the product manager.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogCreate
	DialogEdit
)

// ProductManager is the product management screen: a server-paginated list
// with create, edit, delete and restore. Every successful mutation reloads the
// list from the server instead of patching it.
type ProductManager struct {
	api ports.ProductAPI
	obs *observer

	Products []domain.Product
	Pager    *paging.Server

	Dialog    Dialog
	Form      domain.ProductForm
	EditingID domain.ID

	DeletedOpen bool
	Deleted     []domain.Product

	Submitting bool
}

func NewProductManager(api ports.ProductAPI, logger *slog.Logger, m *metrics.Metrics) *ProductManager {
	return &ProductManager{
		api:   api,
		obs:   &observer{logger: logger, metrics: m},
		Pager: paging.NewServer(ProductPageSize),
	}
}

// List loads page and adopts the page index and count the server reports.
// On failure the current list is kept.
func (m *ProductManager) List(ctx context.Context, page int) Notice {
	ctx, run := m.obs.start(ctx, "product.list", attribute.Int("page", page))
	err := m.load(ctx, page)
	if err != nil {
		return run.finish(failure(ports.MessageOr(err, "products load failed")), err)
	}
	return run.finish(Notice{}, nil)
}

// Resume puts the screen back on page without fetching, so a following
// action reloads the page the user was looking at.
func (m *ProductManager) Resume(page int) {
	m.Pager.Seek(page)
}

func (m *ProductManager) load(ctx context.Context, page int) error {
	res, err := m.api.ListProducts(ctx, ports.PageRequest{Page: page, Size: ProductPageSize})
	if err != nil {
		return err
	}

	m.Products = res.Items
	if m.Products == nil {
		m.Products = []domain.Product{}
	}
	m.Pager.Adopt(page, res.Number, res.TotalPages)
	return nil
}

func (m *ProductManager) reload(ctx context.Context) error {
	return m.load(ctx, m.Pager.Page())
}

func (m *ProductManager) OpenCreate() {
	m.Dialog = DialogCreate
	m.Form = domain.ProductForm{}
	m.EditingID = ""
}

func (m *ProductManager) OpenEdit(p domain.Product) {
	m.Dialog = DialogEdit
	m.Form = p.Form()
	m.EditingID = p.ID
}

func (m *ProductManager) CloseDialog() {
	m.Dialog = DialogNone
	m.Form = domain.ProductForm{}
	m.EditingID = ""
}

// Create validates form locally, submits it and reloads the current page.
// The dialog closes only on success.
func (m *ProductManager) Create(ctx context.Context, form domain.ProductForm) Notice {
	ctx, run := m.obs.start(ctx, "product.create")

	m.Dialog = DialogCreate
	m.Form = form

	if err := form.Validate(); err != nil {
		return run.finish(invalid(err.Error()), nil)
	}

	m.Submitting = true
	defer func() { m.Submitting = false }()

	if err := m.api.CreateProduct(ctx, form); err != nil {
		return run.finish(failure(ports.MessageOr(err, "create failed")), err)
	}
	m.CloseDialog()
	done := success(MessageCreated)
	if err := m.reload(ctx); err != nil {
		return run.finish(done.withRefreshError(err, "products load failed"), err)
	}
	return run.finish(done, nil)
}

// Edit sends the name, price and stock of form for product id. The identifier
// itself is never changed.
func (m *ProductManager) Edit(ctx context.Context, id domain.ID, form domain.ProductForm) Notice {
	if id.IsZero() {
		return Notice{}
	}

	ctx, run := m.obs.start(ctx, "product.update", attribute.String("product.id", id.String()))

	m.Dialog = DialogEdit
	m.EditingID = id
	m.Form = form

	if err := form.Validate(); err != nil {
		return run.finish(invalid(err.Error()), nil)
	}

	m.Submitting = true
	defer func() { m.Submitting = false }()

	if err := m.api.UpdateProduct(ctx, id, form); err != nil {
		return run.finish(failure(ports.MessageOr(err, "update failed")), err)
	}
	m.CloseDialog()
	done := success(MessageUpdated)
	if err := m.reload(ctx); err != nil {
		return run.finish(done.withRefreshError(err, "products load failed"), err)
	}
	return run.finish(done, nil)
}

// Delete soft-deletes product id once confirm agrees. A declined confirmation
// sends nothing.
func (m *ProductManager) Delete(ctx context.Context, id domain.ID, confirm Confirmer) Notice {
	ctx, run := m.obs.start(ctx, "product.delete", attribute.String("product.id", id.String()))

	if confirm != nil && !confirm(DeletePrompt) {
		return run.declined()
	}

	m.Submitting = true
	defer func() { m.Submitting = false }()

	if err := m.api.DeleteProduct(ctx, id); err != nil {
		return run.finish(failure(ports.MessageOr(err, "delete failed")), err)
	}
	if err := m.reload(ctx); err != nil {
		return run.finish(success("").withRefreshError(err, "products load failed"), err)
	}

	return run.finish(Notice{}, nil)
}

// ListDeleted loads the soft-deleted products into the side view and opens it.
// The main list and its page are not touched.
func (m *ProductManager) ListDeleted(ctx context.Context) Notice {
	ctx, run := m.obs.start(ctx, "product.list_deleted")

	deleted, err := m.api.ListDeletedProducts(ctx)
	if err != nil {
		return run.finish(failure(ports.MessageOr(err, "deleted products load failed")), err)
	}

	m.Deleted = deleted
	m.DeletedOpen = true
	return run.finish(Notice{}, nil)
}

func (m *ProductManager) CloseDeleted() {
	m.DeletedOpen = false
	m.Deleted = nil
}

// Restore un-deletes product id, then refreshes the deleted view and the main
// list on its current page.
func (m *ProductManager) Restore(ctx context.Context, id domain.ID) Notice {
	ctx, run := m.obs.start(ctx, "product.restore", attribute.String("product.id", id.String()))

	m.Submitting = true
	defer func() { m.Submitting = false }()

	if err := m.api.RestoreProduct(ctx, id); err != nil {
		return run.finish(failure(ports.MessageOr(err, "restore failed")), err)
	}

	done := success(MessageRestored)

	deleted, err := m.api.ListDeletedProducts(ctx)
	if err != nil {
		return run.finish(done.withRefreshError(err, "deleted products load failed"), err)
	}
	m.Deleted = deleted
	m.DeletedOpen = true

	if err := m.reload(ctx); err != nil {
		return run.finish(done.withRefreshError(err, "products load failed"), err)
	}
	return run.finish(done, nil)
}

// Find returns the product with id from the current page.
func (m *ProductManager) Find(id domain.ID) (domain.Product, bool) {
	for _, p := range m.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
