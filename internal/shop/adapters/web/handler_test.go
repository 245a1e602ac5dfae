package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dejobratic/minishop/internal/shop/adapters/memory"
	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/metrics"
	"github.com/dejobratic/minishop/internal/shop/ports"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric/noop"
)

// flakyBackend fails the operations whose error is set.
type flakyBackend struct {
	*memory.Backend
	listProductsErr error
	listOrdersErr   error
	cancelErr       error
}

func (f *flakyBackend) ListProducts(ctx context.Context, req ports.PageRequest) (*ports.ProductPage, error) {
	if f.listProductsErr != nil {
		return nil, f.listProductsErr
	}
	return f.Backend.ListProducts(ctx, req)
}

func (f *flakyBackend) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if f.listOrdersErr != nil {
		return nil, f.listOrdersErr
	}
	return f.Backend.ListOrders(ctx)
}

func (f *flakyBackend) CancelOrder(ctx context.Context, id domain.ID) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	return f.Backend.CancelOrder(ctx, id)
}

func newTestRouter(t *testing.T, api ports.ShopAPI) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	meter := noop.NewMeterProvider().Meter("test")
	screenMetrics, err := metrics.NewMetrics(meter)
	if err != nil {
		t.Fatalf("failed to create screen metrics: %v", err)
	}
	webMetrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("failed to create web metrics: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(api, logger, screenMetrics, Options{Location: time.UTC, CatalogFetchSize: 100})

	router, err := NewRouter(h, webMetrics, logger, RouterConfig{})
	if err != nil {
		t.Fatalf("NewRouter() failed: %v", err)
	}
	return router
}

func seeded(n, stock int) *memory.Backend {
	b := memory.NewBackend()
	for i := 0; i < n; i++ {
		b.Seed(domain.Product{Name: "item", Price: 1500, Stock: stock})
	}
	return b
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func post(router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

// follow asserts that w is a 303 and loads the page it points at.
func follow(t *testing.T, router http.Handler, w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()
	assertStatus(t, w, http.StatusSeeOther)
	return get(router, w.Header().Get("Location"))
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func assertContains(t *testing.T, w *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := w.Body.String()
	for _, part := range parts {
		if !strings.Contains(body, part) {
			t.Errorf("expected body to contain %q", part)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthz is always ok", func(t *testing.T) {
		router := newTestRouter(t, memory.NewBackend())
		assertStatus(t, get(router, "/healthz"), http.StatusOK)
	})

	t.Run("readyz reports the upstream readiness error", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		meter := noop.NewMeterProvider().Meter("test")
		screenMetrics, _ := metrics.NewMetrics(meter)
		webMetrics, _ := NewMetrics(meter)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		h := NewHandler(memory.NewBackend(), logger, screenMetrics, Options{})
		router, err := NewRouter(h, webMetrics, logger, RouterConfig{
			Ready: func(context.Context) error { return &ports.APIError{Message: "down"} },
		})
		if err != nil {
			t.Fatalf("NewRouter() failed: %v", err)
		}

		w := get(router, "/readyz")
		assertStatus(t, w, http.StatusServiceUnavailable)
		assertContains(t, w, "down")
	})
}

func TestProductPages(t *testing.T) {
	t.Run("root redirects to the product manager", func(t *testing.T) {
		router := newTestRouter(t, memory.NewBackend())
		w := get(router, "/")
		assertStatus(t, w, http.StatusFound)
		if loc := w.Header().Get("Location"); loc != "/products" {
			t.Errorf("expected redirect to /products, got %q", loc)
		}
	})

	t.Run("lists the requested page with the page indicator", func(t *testing.T) {
		router := newTestRouter(t, seeded(25, 3))
		w := get(router, "/products?page=2")
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "<td>21</td>", "<td>25</td>", "3 / 3")
		if strings.Contains(w.Body.String(), "<td>20</td>") {
			t.Error("expected page 2 to start at product 21")
		}
	})

	t.Run("marks sold out products", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 0))
		assertContains(t, get(router, "/products"), "(재고없음)")
	})

	t.Run("shows the empty state", func(t *testing.T) {
		router := newTestRouter(t, memory.NewBackend())
		assertContains(t, get(router, "/products"), "empty")
	})

	t.Run("listing failure answers 502 with the server message", func(t *testing.T) {
		api := &flakyBackend{Backend: seeded(1, 1), listProductsErr: &ports.APIError{StatusCode: 500, Message: "db down"}}
		router := newTestRouter(t, api)
		w := get(router, "/products")
		assertStatus(t, w, http.StatusBadGateway)
		assertContains(t, w, "db down")
	})

	t.Run("opens the edit dialog prefilled", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 4))
		w := get(router, "/products?dialog=edit&id=1")
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "상품 수정", `action="/products/1"`, `value="1500"`)
	})

	t.Run("opens the delete confirmation", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 4))
		assertContains(t, get(router, "/products?dialog=delete&id=1"), "상품을 삭제하시겠습니까?")
	})
}

func TestProductMutations(t *testing.T) {
	t.Run("creates a product and reports success", func(t *testing.T) {
		backend := memory.NewBackend()
		router := newTestRouter(t, backend)

		w := follow(t, router, post(router, "/products", url.Values{"name": {"pen"}, "price": {"1200"}, "stock": {"5"}}))
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "상품이 추가되었습니다", ">pen</a>")

		page, _ := backend.ListProducts(context.Background(), ports.PageRequest{Size: 10})
		if len(page.Items) != 1 {
			t.Fatalf("expected 1 product, got %d", len(page.Items))
		}
	})

	t.Run("create reports success even when the reload fails", func(t *testing.T) {
		backend := memory.NewBackend()
		api := &flakyBackend{Backend: backend, listProductsErr: &ports.APIError{StatusCode: 500, Message: "list exploded"}}
		router := newTestRouter(t, api)

		w := follow(t, router, post(router, "/products", url.Values{"name": {"pen"}, "price": {"1200"}, "stock": {"5"}}))
		assertStatus(t, w, http.StatusBadGateway)
		assertContains(t, w, "상품이 추가되었습니다", "list exploded")

		page, _ := backend.ListProducts(context.Background(), ports.PageRequest{Size: 10})
		if len(page.Items) != 1 {
			t.Fatalf("expected 1 product, got %d", len(page.Items))
		}
	})

	t.Run("reloading after a create does not submit it again", func(t *testing.T) {
		backend := memory.NewBackend()
		router := newTestRouter(t, backend)

		w := post(router, "/products", url.Values{"name": {"pen"}, "price": {"1200"}, "stock": {"5"}})
		assertStatus(t, w, http.StatusSeeOther)
		loc := w.Header().Get("Location")
		if !strings.HasPrefix(loc, "/products?") || !strings.Contains(loc, "done=created") {
			t.Fatalf("expected redirect to the product list with the created flash, got %q", loc)
		}

		get(router, loc)
		get(router, loc)

		page, _ := backend.ListProducts(context.Background(), ports.PageRequest{Size: 10})
		if len(page.Items) != 1 {
			t.Fatalf("expected 1 product, got %d", len(page.Items))
		}
	})

	t.Run("unknown flash codes are ignored", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 1))
		w := get(router, "/products?done=bogus")
		assertStatus(t, w, http.StatusOK)
		if strings.Contains(w.Body.String(), `class="notice`) {
			t.Error("expected no notice for an unknown flash code")
		}
	})

	t.Run("rejects a blank name and keeps the typed values", func(t *testing.T) {
		backend := memory.NewBackend()
		router := newTestRouter(t, backend)

		w := post(router, "/products", url.Values{"name": {" "}, "price": {"77"}, "stock": {"1"}})
		assertStatus(t, w, http.StatusUnprocessableEntity)
		assertContains(t, w, "name required", "상품 추가", `value="77"`)

		page, _ := backend.ListProducts(context.Background(), ports.PageRequest{Size: 10})
		if len(page.Items) != 0 {
			t.Errorf("expected nothing created, got %d products", len(page.Items))
		}
	})

	t.Run("rejects text in numeric fields", func(t *testing.T) {
		router := newTestRouter(t, memory.NewBackend())
		w := post(router, "/products", url.Values{"name": {"pen"}, "price": {"abc"}})
		assertStatus(t, w, http.StatusUnprocessableEntity)
		assertContains(t, w, `value="abc"`)
	})

	t.Run("edits a product", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 1))
		w := follow(t, router, post(router, "/products/1", url.Values{"name": {"renamed"}, "price": {"10"}, "stock": {"2"}}))
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "수정 완료되었습니다", ">renamed</a>")
	})

	t.Run("editing a missing product answers 502", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 1))
		w := post(router, "/products/99", url.Values{"name": {"x"}})
		assertStatus(t, w, http.StatusBadGateway)
		assertContains(t, w, "product not found", "상품 수정")
	})

	t.Run("declined delete sends nothing and redirects", func(t *testing.T) {
		backend := seeded(1, 1)
		router := newTestRouter(t, backend)

		w := post(router, "/products/1/delete", url.Values{"page": {"0"}, "confirmed": {"false"}})
		assertStatus(t, w, http.StatusSeeOther)

		deleted, _ := backend.ListDeletedProducts(context.Background())
		if len(deleted) != 0 {
			t.Errorf("expected no deleted products, got %d", len(deleted))
		}
	})

	t.Run("confirmed delete moves the product to the deleted list", func(t *testing.T) {
		backend := seeded(2, 1)
		router := newTestRouter(t, backend)

		w := follow(t, router, post(router, "/products/1/delete", url.Values{"confirmed": {"true"}}))
		assertStatus(t, w, http.StatusOK)

		w = get(router, "/products/deleted")
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "삭제된 상품 목록", `action="/products/1/restore"`)
	})

	t.Run("restores a deleted product", func(t *testing.T) {
		backend := seeded(1, 1)
		router := newTestRouter(t, backend)
		post(router, "/products/1/delete", url.Values{"confirmed": {"true"}})

		w := follow(t, router, post(router, "/products/1/restore", url.Values{"page": {"0"}}))
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "복구 완료되었습니다", "삭제된 상품이 없습니다", "<td>1</td>")
	})
}

func TestOrderProductPage(t *testing.T) {
	t.Run("shows twelve cards per page", func(t *testing.T) {
		router := newTestRouter(t, seeded(13, 1))

		w := get(router, "/order-product")
		assertStatus(t, w, http.StatusOK)
		if got := strings.Count(w.Body.String(), `name="id"`); got != 12 {
			t.Errorf("expected 12 cards, got %d", got)
		}
		assertContains(t, w, "1 / 2")

		w = get(router, "/order-product?page=2")
		if got := strings.Count(w.Body.String(), `name="id"`); got != 1 {
			t.Errorf("expected 1 card on page 2, got %d", got)
		}
	})

	t.Run("order button is disabled until a product is selected", func(t *testing.T) {
		router := newTestRouter(t, seeded(2, 3))

		w := get(router, "/order-product")
		assertContains(t, w, `<button type="submit" disabled>주문하기</button>`)

		w = follow(t, router, post(router, "/order-product/select", url.Values{"id": {"1"}}))
		assertContains(t, w, `<button type="submit">주문하기</button>`)
	})

	t.Run("first and last links follow the page boundaries", func(t *testing.T) {
		router := newTestRouter(t, seeded(13, 1))

		w := get(router, "/order-product?page=1")
		body := w.Body.String()
		if strings.Contains(body, "&lt;&lt;</a>") || strings.Contains(body, "&lt;</a>") {
			t.Error("expected no backward links on the first page")
		}
		assertContains(t, w, "&gt;&gt;</a>", "&gt;</a>")

		w = get(router, "/order-product?page=2")
		body = w.Body.String()
		if strings.Contains(body, "&gt;&gt;</a>") || strings.Contains(body, "&gt;</a>") {
			t.Error("expected no forward links on the last page")
		}
		assertContains(t, w, "&lt;&lt;</a>", "&lt;</a>")
	})

	t.Run("clamps an out of range page", func(t *testing.T) {
		router := newTestRouter(t, seeded(3, 1))
		assertContains(t, get(router, "/order-product?page=9"), "1 / 1")
	})

	t.Run("selects an in-stock product", func(t *testing.T) {
		router := newTestRouter(t, seeded(2, 3))
		w := follow(t, router, post(router, "/order-product/select", url.Values{"id": {"2"}, "page": {"1"}}))
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "가격: 1500원 / 재고: 3", `name="selected" value="2"`)
	})

	t.Run("ignores a sold out product", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 0))
		w := follow(t, router, post(router, "/order-product/select", url.Values{"id": {"1"}}))
		if strings.Contains(w.Body.String(), "가격: 1500원 / 재고") {
			t.Error("expected no selection for a sold out product")
		}
	})

	t.Run("ordering without a selection is rejected", func(t *testing.T) {
		router := newTestRouter(t, seeded(1, 1))
		w := post(router, "/order-product/orders", url.Values{})
		assertStatus(t, w, http.StatusUnprocessableEntity)
		assertContains(t, w, "상품을 선택해주세요")
	})

	t.Run("places an order of one unit and refreshes stock", func(t *testing.T) {
		backend := seeded(1, 2)
		router := newTestRouter(t, backend)

		w := post(router, "/order-product/orders", url.Values{"selected": {"1"}})
		assertStatus(t, w, http.StatusSeeOther)
		if loc := w.Header().Get("Location"); !strings.Contains(loc, "selected=1") || !strings.Contains(loc, "done=ordered") {
			t.Errorf("expected redirect to keep the selection and flash the order, got %q", loc)
		}

		w = follow(t, router, w)
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "주문이 완료되었습니다", "가격: 1500원 / 재고: 1")

		orders, _ := backend.ListOrders(context.Background())
		if len(orders) != 1 || orders[0].Quantity != 1 {
			t.Fatalf("expected one order of quantity 1, got %+v", orders)
		}
	})

	t.Run("a sold out selection is rejected before sending", func(t *testing.T) {
		backend := seeded(1, 0)
		router := newTestRouter(t, backend)

		w := post(router, "/order-product/orders", url.Values{"selected": {"1"}})
		assertStatus(t, w, http.StatusUnprocessableEntity)
		assertContains(t, w, "재고가 부족합니다")

		orders, _ := backend.ListOrders(context.Background())
		if len(orders) != 0 {
			t.Errorf("expected no orders, got %d", len(orders))
		}
	})
}

func TestOrdersPage(t *testing.T) {
	t.Run("lists orders with labels", func(t *testing.T) {
		backend := seeded(1, 5)
		if err := backend.CreateOrder(context.Background(), domain.OrderRequest{ProductID: "1", Quantity: 1}); err != nil {
			t.Fatalf("CreateOrder() failed: %v", err)
		}
		router := newTestRouter(t, backend)

		w := get(router, "/orders")
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "<td>item</td>", "주문 완료", "주문취소")
	})

	t.Run("cancels an order", func(t *testing.T) {
		backend := seeded(1, 5)
		_ = backend.CreateOrder(context.Background(), domain.OrderRequest{ProductID: "1", Quantity: 1})
		router := newTestRouter(t, backend)

		w := follow(t, router, post(router, "/orders/1/cancel", url.Values{}))
		assertStatus(t, w, http.StatusOK)
		assertContains(t, w, "주문 취소", "취소완료")
	})

	t.Run("cancel failure answers 502 and keeps the list", func(t *testing.T) {
		backend := seeded(1, 5)
		_ = backend.CreateOrder(context.Background(), domain.OrderRequest{ProductID: "1", Quantity: 1})
		api := &flakyBackend{Backend: backend, cancelErr: &ports.APIError{StatusCode: 500, Message: "cancel exploded"}}
		router := newTestRouter(t, api)

		w := post(router, "/orders/1/cancel", url.Values{})
		assertStatus(t, w, http.StatusBadGateway)
		assertContains(t, w, "cancel exploded", "주문취소")
	})

	t.Run("load failure answers 502", func(t *testing.T) {
		api := &flakyBackend{Backend: memory.NewBackend(), listOrdersErr: &ports.APIError{StatusCode: 503}}
		router := newTestRouter(t, api)
		assertStatus(t, get(router, "/orders"), http.StatusBadGateway)
	})
}
