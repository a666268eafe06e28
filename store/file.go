package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"shopcart/domain"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogRecord is the on-disk shape of a product
type catalogRecord struct {
	ID    string    `json:"id" yaml:"id"`
	Name  string    `json:"name" yaml:"name"`
	Price priceText `json:"price" yaml:"price"`
}

// priceText keeps the literal digits of a price so no float conversion
// happens between the file and the decimal.
type priceText string

func (p *priceText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = priceText(s)
	default:
		*p = priceText(b)
	}
	return nil
}

// LoadCatalogFile builds a catalog from a JSON array, NDJSON or YAML file.
// Invalid or duplicate records are reported together in the returned error
// while the valid ones are kept; the catalog is nil only if the file itself
// could not be read or parsed.
func LoadCatalogFile(path string) (*InMemoryCatalog, error) {
	records, err := readCatalogRecords(path)
	if err != nil {
		return nil, err
	}

	c := NewInMemoryCatalog()
	var errs []error
	for i, r := range records {
		price, err := domain.ParsePrice(string(r.Price))
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		p, err := domain.NewProduct(r.ID, r.Name, price)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		if err := c.AddItem(p); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
		}
	}
	return c, errors.Join(errs...)
}

func readCatalogRecords(path string) ([]catalogRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	btrim := bytes.TrimSpace(b)
	if len(btrim) == 0 {
		return nil, fmt.Errorf("catalog file %s is empty", path)
	}

	var records []catalogRecord

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(btrim, &records); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return records, nil
	}

	// JSON array
	if btrim[0] == '[' {
		if err := json.Unmarshal(btrim, &records); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return records, nil
	}

	// NDJSON or single JSON object
	scanner := bufio.NewScanner(bytes.NewReader(btrim))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var r catalogRecord
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveCatalogFile writes products as a JSON array, keeping their order.
// The file is replaced atomically.
func SaveCatalogFile(path string, products []*domain.Product) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	list := make([]catalogRecord, 0, len(products))
	for _, p := range products {
		list = append(list, catalogRecord{
			ID:    p.ID(),
			Name:  p.Name(),
			Price: priceText(p.UnitPrice().String()),
		})
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
