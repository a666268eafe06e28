package store

import (
	"log/slog"
	"shopcart/domain"
	"sync"

	"github.com/shopspring/decimal"
)

// InMemoryCart holds one line per SKU in the order the SKUs were first added
type InMemoryCart struct {
	mu    sync.RWMutex
	order []string
	lines map[string]*domain.CartLine
}

// NewInMemoryCart constructs an empty cart
func NewInMemoryCart() *InMemoryCart {
	return &InMemoryCart{
		lines: make(map[string]*domain.CartLine),
	}
}

// compile-time assertion that InMemoryCart implements domain.Cart
var _ domain.Cart = (*InMemoryCart)(nil)

// AddItem merges into an existing line or appends a new one.
func (c *InMemoryCart) AddItem(product *domain.Product, quantity int) error {
	if product == nil {
		return domain.NewValidationError("product", "required", nil)
	}
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "must be positive", quantity)
	}
	sku := domain.NormalizeSKU(product.ID())

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[sku]; ok {
		if err := line.Add(quantity); err != nil {
			return err
		}
		slog.Debug("cart line merged", "sku", sku, "quantity", line.Quantity())
		return nil
	}

	line, err := domain.NewCartLine(product, quantity)
	if err != nil {
		return err
	}
	c.lines[sku] = line
	c.order = append(c.order, sku)
	slog.Debug("cart line added", "sku", sku, "quantity", quantity)
	return nil
}

// RemoveItem takes quantity off a line, deleting it once nothing is left.
// Removing a product that is not in the cart does nothing.
func (c *InMemoryCart) RemoveItem(product *domain.Product, quantity int) error {
	if product == nil {
		return domain.NewValidationError("product", "required", nil)
	}
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "must be positive", quantity)
	}
	sku := domain.NormalizeSKU(product.ID())

	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[sku]
	if !ok {
		return nil
	}
	left, err := line.Remove(quantity)
	if err != nil {
		return err
	}
	if left <= 0 {
		c.deleteLocked(sku)
		slog.Debug("cart line removed", "sku", sku)
		return nil
	}
	slog.Debug("cart line reduced", "sku", sku, "quantity", left)
	return nil
}

func (c *InMemoryCart) deleteLocked(sku string) {
	delete(c.lines, sku)
	for i, id := range c.order {
		if id == sku {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Lines returns copies of the lines in insertion order.
func (c *InMemoryCart) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.CartLine, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, *c.lines[sku])
	}
	return out
}

func (c *InMemoryCart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subtotalLocked()
}

func (c *InMemoryCart) subtotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, sku := range c.order {
		total = total.Add(c.lines[sku].Total())
	}
	return total
}

// Checkout returns the subtotal and empties the cart in one step.
func (c *InMemoryCart) Checkout() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.subtotalLocked()
	c.lines = make(map[string]*domain.CartLine)
	c.order = nil
	return total
}

func (c *InMemoryCart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Quantity reports the quantity held for sku, or 0.
func (c *InMemoryCart) Quantity(sku string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if line, ok := c.lines[domain.NormalizeSKU(sku)]; ok {
		return line.Quantity()
	}
	return 0
}
