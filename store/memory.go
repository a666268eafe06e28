// Package store provides in-memory catalog and cart implementations.
package store

import (
	"shopcart/domain"
	"strings"
	"sync"
)

// InMemoryCatalog keeps products in insertion order, keyed by normalized SKU
type InMemoryCatalog struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*domain.Product
}

// NewInMemoryCatalog constructs an empty InMemoryCatalog
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		products: make(map[string]*domain.Product),
	}
}

// compile-time assertion that InMemoryCatalog implements domain.Catalog
var _ domain.Catalog = (*InMemoryCatalog)(nil)

// ListItems returns a snapshot; changing it does not touch the catalog.
func (c *InMemoryCatalog) ListItems() []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}

func (c *InMemoryCatalog) AddItem(product *domain.Product) error {
	if product == nil {
		return domain.NewValidationError("product", "required", nil)
	}
	key := domain.NormalizeSKU(product.ID())

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.products[key]; exists {
		return domain.NewDuplicateProductError(key)
	}
	c.products[key] = product
	c.order = append(c.order, key)
	return nil
}

// RemoveItem drops the product's SKU; an absent SKU is a no-op.
func (c *InMemoryCatalog) RemoveItem(product *domain.Product) error {
	if product == nil {
		return domain.NewValidationError("product", "required", nil)
	}
	key := domain.NormalizeSKU(product.ID())

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.products[key]; !ok {
		return nil
	}
	delete(c.products, key)
	for i, id := range c.order {
		if id == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByName matches names exactly, ignoring case and surrounding space.
func (c *InMemoryCatalog) FindByName(name string) (*domain.Product, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if p := c.products[id]; strings.EqualFold(p.Name(), name) {
			return p, true
		}
	}
	return nil, false
}

func (c *InMemoryCatalog) FindByID(id string) (*domain.Product, bool) {
	key := domain.NormalizeSKU(id)
	if key == "" {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[key]
	return p, ok
}

func (c *InMemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
