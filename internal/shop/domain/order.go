package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the server-side lifecycle state of an order.
type OrderStatus string

const (
	StatusCreated  OrderStatus = "CREATED"
	StatusCanceled OrderStatus = "CANCELED"
)

var statusLabels = map[OrderStatus]string{
	StatusCreated:  "주문 완료",
	StatusCanceled: "주문 취소",
}

// Label returns the display text for the status. Statuses introduced by the
// server later are shown as sent.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Order is a placed order as reported by the remote API.
type Order struct {
	ID          ID          `json:"orderId"`
	ProductID   ID          `json:"productId"`
	ProductName string      `json:"productName,omitempty"`
	Quantity    int         `json:"quantity"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"createdAt"`
}

// Cancelable reports whether a cancel action may be offered for the order.
func (o Order) Cancelable() bool {
	return o.Status != StatusCanceled
}

// DisplayName resolves the product name shown next to the order: the
// denormalized name first, then the catalog lookup, then a placeholder.
func (o Order) DisplayName(names map[ID]string) string {
	if o.ProductName != "" {
		return o.ProductName
	}
	if name, ok := names[o.ProductID]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("상품#%s", o.ProductID)
}

// OrderRequest is the body sent to create an order.
type OrderRequest struct {
	ProductID ID  `json:"productId"`
	Quantity  int `json:"quantity"`
}

const displayLayout = "2006년 01월 02일 15시 04분"

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatTimestamp renders an ISO-8601 timestamp for display in loc.
// Offset-less values are read as local time. Unparsable input is returned
// verbatim and empty input renders empty.
func FormatTimestamp(raw string, loc *time.Location) string {
	if raw == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}

	value := strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc).Format(displayLayout)
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.Format(displayLayout)
		}
	}
	return raw
}
