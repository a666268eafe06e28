package store

import (
	"fmt"
	"shopcart/domain"
)

// SampleProducts is the catalog the simulator starts with by default.
func SampleProducts() []*domain.Product {
	return []*domain.Product{
		domain.MustProduct("APL", "Apple", "0.89"),
		domain.MustProduct("MLK", "Milk (1 gal)", "3.49"),
		domain.MustProduct("BRD", "Bread", "2.79"),
		domain.MustProduct("EGG", "Eggs (dozen)", "2.99"),
		domain.MustProduct("CHP", "Chips", "1.99"),
	}
}

// NewSampleCatalog returns a catalog seeded with SampleProducts.
func NewSampleCatalog() *InMemoryCatalog {
	c := NewInMemoryCatalog()
	for _, p := range SampleProducts() {
		// sample SKUs are unique
		_ = c.AddItem(p)
	}
	return c
}

// NewCatalog constructs a catalog by kind: "sample", "empty" or "file".
// For file catalogs, provide the file path in path; otherwise path is ignored.
// A file catalog may come back together with a non-nil error listing the
// records that were skipped.
func NewCatalog(kind, path string) (*InMemoryCatalog, error) {
	switch kind {
	case "", "sample", "static":
		return NewSampleCatalog(), nil
	case "empty":
		return NewInMemoryCatalog(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file path required for file catalog")
		}
		return LoadCatalogFile(path)
	default:
		return nil, fmt.Errorf("unknown catalog kind: %s", kind)
	}
}
