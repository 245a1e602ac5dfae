package web

import (
	"fmt"
	"strconv"

	"github.com/dejobratic/minishop/internal/shop/app"
	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/paging"
)

const (
	navProducts     = "products"
	navOrders       = "orders"
	navOrderProduct = "order-product"
)

type layoutView struct {
	Title  string
	Active string
	Notice noticeView
}

// noticeView is the flash shown at the top of a page.
type noticeView struct {
	Message string
	Warning string
	Class   string
}

type productRow struct {
	ID      string
	Name    string
	Price   string
	Stock   int
	SoldOut bool
	Deleted bool
}

type formView struct {
	Name  string
	Price string
	Stock string
}

type pageLink struct {
	Index   int
	Label   int
	Current bool
}

type serverPagerView struct {
	Links     []pageLink
	Prev      int
	Next      int
	HasPrev   bool
	HasNext   bool
	Indicator string
}

type localPagerView struct {
	First     int
	Prev      int
	Next      int
	Last      int
	HasPrev   bool
	HasNext   bool
	Indicator string
}

type productsView struct {
	Layout       layoutView
	Page         int
	Products     []productRow
	Pager        serverPagerView
	Dialog       string
	EditingID    string
	Form         formView
	DeleteID     string
	DeletePrompt string
	DeletedOpen  bool
	Deleted      []productRow
}

type productCard struct {
	Product  productRow
	Selected bool
}

type orderProductView struct {
	Layout   layoutView
	Page     int
	Cards    []productCard
	Pager    localPagerView
	Selected *productRow
}

type orderRow struct {
	ID          string
	ProductName string
	Quantity    int
	StatusLabel string
	CreatedAt   string
	Cancelable  bool
}

type ordersView struct {
	Layout layoutView
	Orders []orderRow
}

func newLayout(title, active string, notice app.Notice) layoutView {
	return layoutView{Title: title, Active: active, Notice: newNoticeView(notice)}
}

func newNoticeView(n app.Notice) noticeView {
	switch n.Level {
	case app.NoticeSuccess:
		return noticeView{Message: n.Message, Warning: n.Warning, Class: "success"}
	case app.NoticeInvalid:
		return noticeView{Message: n.Message, Class: "invalid"}
	case app.NoticeFailure:
		return noticeView{Message: n.Message, Class: "failure"}
	default:
		return noticeView{}
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newProductRow(p domain.Product) productRow {
	return productRow{
		ID:      p.ID.String(),
		Name:    p.Name,
		Price:   formatPrice(p.Price),
		Stock:   p.Stock,
		SoldOut: p.SoldOut(),
		Deleted: p.Deleted,
	}
}

func newProductRows(products []domain.Product) []productRow {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, newProductRow(p))
	}
	return rows
}

func newFormView(f domain.ProductForm) formView {
	return formView{Name: f.Name, Price: formatPrice(f.Price), Stock: strconv.Itoa(f.Stock)}
}

func newServerPager(p *paging.Server) serverPagerView {
	view := serverPagerView{
		Prev:      p.Page() - 1,
		Next:      p.Page() + 1,
		HasPrev:   p.HasPrev(),
		HasNext:   p.HasNext(),
		Indicator: fmt.Sprintf("%d / %d", p.Page()+1, p.TotalPages()),
	}
	for _, i := range p.Pages() {
		view.Links = append(view.Links, pageLink{Index: i, Label: i + 1, Current: i == p.Page()})
	}
	return view
}

func newLocalPager[T any](p *paging.Local[T]) localPagerView {
	return localPagerView{
		First:     1,
		Prev:      p.Page() - 1,
		Next:      p.Page() + 1,
		Last:      p.TotalPages(),
		HasPrev:   p.HasPrev(),
		HasNext:   p.HasNext(),
		Indicator: fmt.Sprintf("%d / %d", p.Page(), p.TotalPages()),
	}
}

// newProductsView renders the manager's state. raw, when set, replaces the
// dialog form so rejected input is shown back as typed.
func newProductsView(pm *app.ProductManager, notice app.Notice, raw *formView) productsView {
	view := productsView{
		Layout:      newLayout("상품 관리", navProducts, notice),
		Page:        pm.Pager.Page(),
		Products:    newProductRows(pm.Products),
		Pager:       newServerPager(pm.Pager),
		EditingID:   pm.EditingID.String(),
		Form:        newFormView(pm.Form),
		DeletedOpen: pm.DeletedOpen,
		Deleted:     newProductRows(pm.Deleted),
	}

	switch pm.Dialog {
	case app.DialogCreate:
		view.Dialog = "create"
	case app.DialogEdit:
		view.Dialog = "edit"
	}
	if raw != nil {
		view.Form = *raw
	}
	return view
}

func newOrderProductView(op *app.OrderPlacer, notice app.Notice) orderProductView {
	view := orderProductView{
		Layout: newLayout("상품 주문", navOrderProduct, notice),
		Page:   op.Catalog.Page(),
		Pager:  newLocalPager(op.Catalog),
	}
	for _, p := range op.Catalog.Items() {
		view.Cards = append(view.Cards, productCard{Product: newProductRow(p), Selected: op.IsSelected(p)})
	}
	if op.Selected != nil {
		row := newProductRow(*op.Selected)
		view.Selected = &row
	}
	return view
}

func newOrdersView(ol *app.OrderList, notice app.Notice) ordersView {
	view := ordersView{Layout: newLayout("주문 관리", navOrders, notice)}
	for _, o := range ol.Orders {
		view.Orders = append(view.Orders, orderRow{
			ID:          o.ID.String(),
			ProductName: ol.ProductName(o),
			Quantity:    o.Quantity,
			StatusLabel: ol.StatusLabel(o),
			CreatedAt:   ol.Timestamp(o),
			Cancelable:  o.Cancelable(),
		})
	}
	return view
}
