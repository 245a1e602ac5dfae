package web

import (
	"net/url"

	"github.com/dejobratic/minishop/internal/shop/app"
	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) renderOrderProduct(c *gin.Context, op *app.OrderPlacer, notice app.Notice) {
	c.HTML(statusFor(notice), "order_product", newOrderProductView(op, notice))
}

// loadOrderPlacer fetches the catalog and restores the page and selection the
// browser sent back.
func (h *Handler) loadOrderPlacer(c *gin.Context, page int, selected string) (*app.OrderPlacer, app.Notice) {
	op := h.newOrderPlacer()
	_, notice := op.LoadCatalog(c.Request.Context())
	if selected != "" {
		op.ResumeSelection(domain.ID(selected))
	}
	op.Paginate(page)
	return op, notice
}

// orderProductQuery keeps the page and selection across a redirect.
func orderProductQuery(op *app.OrderPlacer) url.Values {
	query := pageQuery(op.Catalog.Page())
	if op.Selected != nil {
		query.Set("selected", op.Selected.ID.String())
	}
	return query
}

func (h *Handler) showOrderProduct(c *gin.Context) {
	op, notice := h.loadOrderPlacer(c, intValue(c.Query("page")), c.Query("selected"))
	c.HTML(statusFor(notice), "order_product", newOrderProductView(op, withFlash(c, notice)))
}

func (h *Handler) selectProduct(c *gin.Context) {
	op, notice := h.loadOrderPlacer(c, intValue(c.PostForm("page")), c.PostForm("selected"))
	if notice.IsError() {
		h.renderOrderProduct(c, op, notice)
		return
	}

	op.SelectByID(domain.ID(c.PostForm("id")))
	redirectAfter(c, "/order-product", orderProductQuery(op), "")
}

func (h *Handler) placeOrder(c *gin.Context) {
	op, notice := h.loadOrderPlacer(c, intValue(c.PostForm("page")), c.PostForm("selected"))
	if notice.IsError() {
		h.renderOrderProduct(c, op, notice)
		return
	}

	notice = op.PlaceOrder(c.Request.Context())
	if notice.IsError() {
		h.renderOrderProduct(c, op, notice)
		return
	}
	redirectAfter(c, "/order-product", orderProductQuery(op), "ordered")
}
