package web

import (
	"github.com/dejobratic/minishop/internal/shop/app"
	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) renderOrders(c *gin.Context, ol *app.OrderList, notice app.Notice) {
	c.HTML(statusFor(notice), "orders", newOrdersView(ol, notice))
}

func (h *Handler) listOrders(c *gin.Context) {
	ol := h.newOrderList()
	notice := ol.Load(c.Request.Context())
	c.HTML(statusFor(notice), "orders", newOrdersView(ol, withFlash(c, notice)))
}

func (h *Handler) cancelOrder(c *gin.Context) {
	ctx := c.Request.Context()
	ol := h.newOrderList()

	notice := ol.Cancel(ctx, domain.ID(c.Param("id")))
	if notice.IsError() {
		ol.Load(ctx)
		h.renderOrders(c, ol, notice)
		return
	}
	redirectAfter(c, "/orders", nil, "")
}
