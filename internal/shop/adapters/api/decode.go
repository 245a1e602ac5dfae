package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dejobratic/minishop/internal/shop/domain"
	"github.com/dejobratic/minishop/internal/shop/ports"
)

// productEnvelope is the paginated listing. Servers put the list under
// "content" or "items".
type productEnvelope struct {
	Content    []domain.Product `json:"content"`
	Items      []domain.Product `json:"items"`
	TotalPages *int             `json:"totalPages"`
	Number     *int             `json:"number"`
}

// decodeProductPage accepts either a bare JSON array or an envelope.
func decodeProductPage(raw json.RawMessage) (*ports.ProductPage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &ports.ProductPage{Items: []domain.Product{}}, nil
	}

	if trimmed[0] == '[' {
		var items []domain.Product
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode product list: %w", err)
		}
		return &ports.ProductPage{Items: items}, nil
	}

	var env productEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode product page: %w", err)
	}

	items := env.Content
	if items == nil {
		items = env.Items
	}
	if items == nil {
		items = []domain.Product{}
	}
	return &ports.ProductPage{Items: items, TotalPages: env.TotalPages, Number: env.Number}, nil
}

type orderEnvelope struct {
	Content []domain.Order `json:"content"`
	Items   []domain.Order `json:"items"`
}

func decodeOrders(raw json.RawMessage) ([]domain.Order, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Order{}, nil
	}

	if trimmed[0] == '[' {
		var orders []domain.Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return nil, fmt.Errorf("decode order list: %w", err)
		}
		return orders, nil
	}

	var env orderEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode order page: %w", err)
	}
	if env.Content != nil {
		return env.Content, nil
	}
	if env.Items != nil {
		return env.Items, nil
	}
	return []domain.Order{}, nil
}

type errorBody struct {
	Message string `json:"message"`
}

// errorMessage pulls the human-readable text out of an error body. Only the
// message field counts; a body without one, or anything that is not JSON,
// yields no message.
func errorMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}
