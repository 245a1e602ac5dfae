package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNameRequired   = errors.New("name required")
	ErrNegativeAmount = errors.New("price/stock must be >= 0")
	ErrInvalidNumber  = errors.New("price/stock must be numbers")
)

// Product is a catalog entry as reported by the remote API.
type Product struct {
	ID      ID      `json:"productId"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
	Deleted bool    `json:"deleted"`
}

// SoldOut reports whether the product has no stock left.
func (p Product) SoldOut() bool {
	return p.Stock <= 0
}

// Form returns the editable fields of the product.
func (p Product) Form() ProductForm {
	return ProductForm{Name: p.Name, Price: p.Price, Stock: p.Stock}
}

// ProductForm carries the fields a user can set when creating or editing a
// product. It is also the request body for both operations.
type ProductForm struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Validate performs the client-side checks run before any request is sent.
// Everything else is the server's call.
func (f ProductForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if !isFinite(f.Price) {
		return ErrInvalidNumber
	}
	if f.Price < 0 || f.Stock < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// ParseProductForm builds a form from raw text input. Empty numeric fields
// count as zero.
func ParseProductForm(name, price, stock string) (ProductForm, error) {
	form := ProductForm{Name: name}

	if s := strings.TrimSpace(price); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(v) {
			return form, ErrInvalidNumber
		}
		form.Price = v
	}

	if s := strings.TrimSpace(stock); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return form, ErrInvalidNumber
		}
		form.Stock = v
	}

	return form, nil
}

// isFinite rejects the NaN and infinities ParseFloat accepts.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
