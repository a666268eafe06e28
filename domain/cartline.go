package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine pairs a catalog product with a quantity. The product is shared
// with the catalog and never copied or modified by the cart.
type CartLine struct {
	product  *Product
	quantity int
}

// NewCartLine requires a product and a positive quantity.
func NewCartLine(product *Product, quantity int) (*CartLine, error) {
	if product == nil {
		return nil, NewValidationError("product", "required", nil)
	}
	if quantity <= 0 {
		return nil, NewValidationError("quantity", "must be positive", quantity)
	}
	return &CartLine{product: product, quantity: quantity}, nil
}

// Product returns the catalog product this line refers to.
func (l CartLine) Product() *Product { return l.product }

// Quantity returns the number of units on the line.
func (l CartLine) Quantity() int { return l.quantity }

// Add increases the quantity by a positive delta. A delta that would push
// the quantity past math.MaxInt is rejected and the line is left as is.
func (l *CartLine) Add(delta int) error {
	if delta <= 0 {
		return NewValidationError("quantity", "must be positive", delta)
	}
	if delta > math.MaxInt-l.quantity {
		return NewValidationError("quantity", "would overflow", delta)
	}
	l.quantity += delta
	return nil
}

// Remove decreases the quantity by a positive delta, clamped at zero, and
// returns what is left. Zero means the owning cart must drop the line.
func (l *CartLine) Remove(delta int) (int, error) {
	if delta <= 0 {
		return l.quantity, NewValidationError("quantity", "must be positive", delta)
	}
	l.quantity -= delta
	if l.quantity < 0 {
		l.quantity = 0
	}
	return l.quantity, nil
}

// Total is unit price times quantity.
func (l CartLine) Total() decimal.Decimal {
	return l.product.UnitPrice().Mul(decimal.NewFromInt(int64(l.quantity)))
}

// String formats the line as "ID | name | qty=N | $total".
func (l CartLine) String() string {
	return fmt.Sprintf("%s | %s | qty=%d | $%s",
		l.product.ID(), l.product.Name(), l.quantity, l.Total().StringFixed(2))
}

// Receipt records a completed checkout.
type Receipt struct {
	ID       string
	Lines    []CartLine
	Total    decimal.Decimal
	IssuedAt time.Time
}
