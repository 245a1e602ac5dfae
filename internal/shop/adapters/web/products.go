package web

import (
	"github.com/dejobratic/minishop/internal/shop/app"
	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) renderProducts(c *gin.Context, pm *app.ProductManager, notice app.Notice, raw *formView) {
	c.HTML(statusFor(notice), "products", newProductsView(pm, notice, raw))
}

func rawForm(c *gin.Context) formView {
	return formView{
		Name:  c.PostForm("name"),
		Price: c.PostForm("price"),
		Stock: c.PostForm("stock"),
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	pm := h.newProductManager()

	notice := pm.List(ctx, intValue(c.Query("page")))

	var deleteID string
	switch c.Query("dialog") {
	case "create":
		pm.OpenCreate()
	case "edit":
		if p, ok := pm.Find(domain.ID(c.Query("id"))); ok {
			pm.OpenEdit(p)
		}
	case "delete":
		deleteID = c.Query("id")
	}

	view := newProductsView(pm, withFlash(c, notice), nil)
	if deleteID != "" {
		view.Dialog = "delete"
		view.DeleteID = deleteID
		view.DeletePrompt = app.DeletePrompt
	}
	c.HTML(statusFor(notice), "products", view)
}

func (h *Handler) createProduct(c *gin.Context) {
	ctx := c.Request.Context()
	page := intValue(c.PostForm("page"))
	raw := rawForm(c)

	pm := h.newProductManager()
	pm.Resume(page)

	var notice app.Notice
	form, err := domain.ParseProductForm(raw.Name, raw.Price, raw.Stock)
	if err != nil {
		pm.OpenCreate()
		notice = app.Notice{Level: app.NoticeInvalid, Message: err.Error()}
	} else {
		notice = pm.Create(ctx, form)
	}

	if notice.IsError() {
		pm.List(ctx, page)
		h.renderProducts(c, pm, notice, &raw)
		return
	}
	redirectAfter(c, "/products", pageQuery(pm.Pager.Page()), "created")
}

func (h *Handler) editProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := domain.ID(c.Param("id"))
	page := intValue(c.PostForm("page"))
	raw := rawForm(c)

	pm := h.newProductManager()
	pm.Resume(page)

	var notice app.Notice
	form, err := domain.ParseProductForm(raw.Name, raw.Price, raw.Stock)
	if err != nil {
		pm.OpenEdit(domain.Product{ID: id})
		notice = app.Notice{Level: app.NoticeInvalid, Message: err.Error()}
	} else {
		notice = pm.Edit(ctx, id, form)
	}

	if notice.IsError() {
		pm.List(ctx, page)
		h.renderProducts(c, pm, notice, &raw)
		return
	}
	redirectAfter(c, "/products", pageQuery(pm.Pager.Page()), "updated")
}

func (h *Handler) deleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	page := intValue(c.PostForm("page"))
	confirmed := c.PostForm("confirmed") == "true"

	pm := h.newProductManager()
	pm.Resume(page)

	notice := pm.Delete(ctx, domain.ID(c.Param("id")), func(string) bool { return confirmed })
	if notice.IsError() {
		pm.List(ctx, page)
		h.renderProducts(c, pm, notice, nil)
		return
	}
	redirectAfter(c, "/products", pageQuery(pm.Pager.Page()), "")
}

func (h *Handler) listDeletedProducts(c *gin.Context) {
	ctx := c.Request.Context()
	pm := h.newProductManager()

	listed := pm.List(ctx, intValue(c.Query("page")))
	deleted := pm.ListDeleted(ctx)

	notice := firstError(deleted, listed)
	c.HTML(statusFor(notice), "products", newProductsView(pm, withFlash(c, notice), nil))
}

func (h *Handler) restoreProduct(c *gin.Context) {
	ctx := c.Request.Context()
	page := intValue(c.PostForm("page"))

	pm := h.newProductManager()
	pm.Resume(page)

	notice := pm.Restore(ctx, domain.ID(c.Param("id")))
	if notice.IsError() {
		pm.List(ctx, page)
		pm.ListDeleted(ctx)
		h.renderProducts(c, pm, notice, nil)
		return
	}
	redirectAfter(c, "/products/deleted", pageQuery(pm.Pager.Page()), "restored")
}
