package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dejobratic/minishop/internal/shop/app"
)

type tab int

const (
	tabOrderProduct tab = iota
	tabOrders
)

// actionDone carries the notice of a finished background action.
type actionDone struct {
	notice app.Notice
}

// model drives the two order screens from the keyboard. Screens are only
// touched from Update, or from a command while busy is set; View reads the
// body rendered at the last idle Update.
type model struct {
	ctx    context.Context
	placer *app.OrderPlacer
	orders *app.OrderList

	tab    tab
	cursor int
	busy   bool
	notice app.Notice
	body   string
}

func newModel(ctx context.Context, placer *app.OrderPlacer, orders *app.OrderList) model {
	m := model{ctx: ctx, placer: placer, orders: orders, busy: true}
	m.body = "불러오는 중..."
	return m
}

func (m model) Init() tea.Cmd {
	return m.run(func(ctx context.Context) app.Notice {
		_, notice := m.placer.LoadCatalog(ctx)
		return notice
	})
}

// run marks the model busy and performs action off the event loop.
func (m model) run(action func(ctx context.Context) app.Notice) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDone{notice: action(ctx)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if key == "tab" {
			return m.switchTab()
		}
		if m.tab == tabOrderProduct {
			return m.updateOrderProduct(key)
		}
		return m.updateOrders(key)

	case actionDone:
		m.busy = false
		m.notice = msg.notice
		m.clampCursor()
		m.body = m.render()
	}
	return m, nil
}

func (m model) switchTab() (tea.Model, tea.Cmd) {
	m.notice = app.Notice{}
	m.cursor = 0
	m.busy = true
	if m.tab == tabOrderProduct {
		m.tab = tabOrders
		return m, m.run(m.orders.Load)
	}
	m.tab = tabOrderProduct
	return m, m.run(func(ctx context.Context) app.Notice {
		_, notice := m.placer.LoadCatalog(ctx)
		return notice
	})
}

func (m model) updateOrderProduct(key string) (tea.Model, tea.Cmd) {
	catalog := m.placer.Catalog
	switch key {
	case "up", "left":
		m.cursor--
	case "down", "right":
		m.cursor++
	case "[":
		catalog.Prev()
		m.cursor = 0
	case "]":
		catalog.Next()
		m.cursor = 0
	case "home":
		catalog.First()
		m.cursor = 0
	case "end":
		catalog.Last()
		m.cursor = 0
	case "enter":
		items := catalog.Items()
		if m.cursor >= 0 && m.cursor < len(items) {
			m.placer.SelectProduct(items[m.cursor])
		}
	case "o":
		m.busy = true
		return m, m.run(m.placer.PlaceOrder)
	case "r":
		m.busy = true
		return m, m.run(func(ctx context.Context) app.Notice {
			_, notice := m.placer.LoadCatalog(ctx)
			return notice
		})
	default:
		return m, nil
	}
	m.clampCursor()
	m.body = m.render()
	return m, nil
}

func (m model) updateOrders(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up":
		m.cursor--
	case "down":
		m.cursor++
	case "c":
		if m.cursor >= 0 && m.cursor < len(m.orders.Orders) {
			order := m.orders.Orders[m.cursor]
			if order.Cancelable() {
				m.busy = true
				return m, m.run(func(ctx context.Context) app.Notice {
					return m.orders.Cancel(ctx, order.ID)
				})
			}
		}
	case "r":
		m.busy = true
		return m, m.run(m.orders.Load)
	default:
		return m, nil
	}
	m.clampCursor()
	m.body = m.render()
	return m, nil
}

func (m *model) clampCursor() {
	n := len(m.placer.Catalog.Items())
	if m.tab == tabOrders {
		n = len(m.orders.Orders)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) render() string {
	if m.tab == tabOrders {
		return m.renderOrders()
	}
	return m.renderOrderProduct()
}

func (m model) renderOrderProduct() string {
	b := &strings.Builder{}

	if sel := m.placer.Selected; sel != nil {
		fmt.Fprintf(b, "선택 상품: %s\n가격: %s원 / 재고: %d\n수량: 1개\n\n", sel.Name, formatPrice(sel.Price), sel.Stock)
	} else {
		fmt.Fprintf(b, "선택 상품:\n\n")
	}

	items := m.placer.Catalog.Items()
	if len(items) == 0 {
		fmt.Fprintln(b, "상품이 없습니다")
	}
	for i, p := range items {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		mark := " "
		if m.placer.IsSelected(p) {
			mark = "*"
		}
		soldOut := ""
		if p.SoldOut() {
			soldOut = " 품절"
		}
		fmt.Fprintf(b, " %s%s %-12s 가격: %s원  재고: %d%s\n", cursor, mark, p.Name, formatPrice(p.Price), p.Stock, soldOut)
	}

	catalog := m.placer.Catalog
	fmt.Fprintf(b, "\n<< < %d / %d > >>\n", catalog.Page(), catalog.TotalPages())
	return b.String()
}

func (m model) renderOrders() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "   %-6s %-14s %-4s %-8s %-16s\n", "주문 ID", "상품명", "수량", "상태", "주문날짜")

	if len(m.orders.Orders) == 0 {
		fmt.Fprintln(b, "   empty")
	}
	for i, o := range m.orders.Orders {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		action := "주문취소"
		if !o.Cancelable() {
			action = "취소완료"
		}
		fmt.Fprintf(b, " %s %-6s %-14s %-4d %-8s %-16s %s\n", cursor, o.ID, m.orders.ProductName(o),
			o.Quantity, m.orders.StatusLabel(o), m.orders.Timestamp(o), action)
	}
	return b.String()
}

func (m model) View() string {
	b := &strings.Builder{}

	tabs := []string{"상품 주문", "주문 관리"}
	for i, name := range tabs {
		if tab(i) == m.tab {
			fmt.Fprintf(b, "[%s] ", name)
		} else {
			fmt.Fprintf(b, " %s  ", name)
		}
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b)

	if m.busy && m.tab == tabOrders {
		fmt.Fprintln(b, "loading...")
	} else if m.busy {
		fmt.Fprintln(b, "처리 중...")
	} else if !m.notice.IsZero() {
		fmt.Fprintf(b, "%s\n", m.notice.Message)
		if m.notice.Warning != "" {
			fmt.Fprintf(b, "%s\n", m.notice.Warning)
		}
	}
	fmt.Fprintln(b)

	b.WriteString(m.body)

	if m.tab == tabOrderProduct {
		fmt.Fprintln(b, "\nControls: arrows move, enter select, o order, [ ] page, home/end first/last, r reload, tab switch, q quit")
	} else {
		fmt.Fprintln(b, "\nControls: up/down move, c cancel, r reload, tab switch, q quit")
	}
	return b.String()
}
