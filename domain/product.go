// Package domain defines core business types and interfaces.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry. Identity is the normalized SKU.
type Product struct {
	id        string
	name      string
	unitPrice decimal.Decimal
}

// NewProduct validates and normalizes its inputs: id is trimmed and
// upper-cased, name is trimmed, price must not be negative.
func NewProduct(id, name string, price decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("id", "cannot be empty", id)
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "cannot be empty", name)
	}
	if price.IsNegative() {
		return nil, NewValidationError("price", "must be non-negative", price.String())
	}
	return &Product{
		id:        NormalizeSKU(id),
		name:      strings.TrimSpace(name),
		unitPrice: price,
	}, nil
}

// MustProduct is NewProduct for fixed data known to be valid.
func MustProduct(id, name, price string) *Product {
	p, err := NewProduct(id, name, decimal.RequireFromString(price))
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePrice reads a decimal price from text. Blank input is a missing price.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, NewValidationError("price", "required", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewValidationError("price", "not a decimal number", s)
	}
	return d, nil
}

// NormalizeSKU is the key form used by the catalog and cart.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// ID returns the normalized SKU.
func (p *Product) ID() string { return p.id }

// Name returns the display name.
func (p *Product) Name() string { return p.name }

// UnitPrice returns the price of a single unit.
func (p *Product) UnitPrice() decimal.Decimal { return p.unitPrice }

// Equal compares SKUs only; name and price are ignored.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id
}

func (p *Product) String() string {
	return p.id + " - " + p.name + " ($" + p.unitPrice.StringFixed(2) + ")"
}

// Catalog is the product lookup surface used by the cart and the menu.
type Catalog interface {
	ListItems() []*Product
	AddItem(product *Product) error
	RemoveItem(product *Product) error
	FindByName(name string) (*Product, bool)
	FindByID(id string) (*Product, bool)
	Len() int
}

// Cart holds at most one line per SKU.
type Cart interface {
	AddItem(product *Product, quantity int) error
	RemoveItem(product *Product, quantity int) error
	Lines() []CartLine
	Subtotal() decimal.Decimal
	Checkout() decimal.Decimal
	Len() int
	Quantity(sku string) int
}
