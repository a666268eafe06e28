package store

import (
	"os"
	"path/filepath"
	"shopcart/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func catalogIDs(c *InMemoryCatalog) []string {
	var ids []string
	for _, p := range c.ListItems() {
		ids = append(ids, p.ID())
	}
	return ids
}

func TestLoadCatalogFile_JSONArray(t *testing.T) {
	path := writeFile(t, "catalog.json", `[
  {"id": "apl", "name": " Apple ", "price": "0.89"},
  {"id": "MLK", "name": "Milk (1 gal)", "price": 3.49}
]`)

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"APL", "MLK"}, catalogIDs(c))

	apple, ok := c.FindByID("APL")
	require.True(t, ok)
	assert.Equal(t, "Apple", apple.Name())
	assert.Equal(t, "0.89", apple.UnitPrice().String())

	milk, _ := c.FindByID("MLK")
	assert.Equal(t, "3.49", milk.UnitPrice().String(), "numeric prices keep their literal digits")
}

func TestLoadCatalogFile_NDJSON(t *testing.T) {
	path := writeFile(t, "catalog.ndjson",
		"{\"id\":\"n1\",\"name\":\"N1\",\"price\":\"1.10\"}\n\n{\"id\":\"n2\",\"name\":\"N2\",\"price\":2}\n")

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"N1", "N2"}, catalogIDs(c))
}

func TestLoadCatalogFile_YAML(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
- id: brd
  name: Bread
  price: 2.79
- id: EGG
  name: Eggs (dozen)
  price: "2.99"
`)

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BRD", "EGG"}, catalogIDs(c))
	brd, _ := c.FindByID("brd")
	assert.Equal(t, "2.79", brd.UnitPrice().String())
}

func TestLoadCatalogFile_KeepsValidRecords(t *testing.T) {
	path := writeFile(t, "catalog.json", `[
  {"id": "APL", "name": "Apple", "price": "0.89"},
  {"id": "", "name": "No SKU", "price": "1"},
  {"id": "NEG", "name": "Negative", "price": "-1"},
  {"id": "NUL", "name": "No price"},
  {"id": "apl", "name": "Apple again", "price": "0.99"},
  {"id": "CHP", "name": "Chips", "price": "1.99"}
]`)

	c, err := LoadCatalogFile(path)
	require.Error(t, err)
	require.NotNil(t, c)
	assert.Equal(t, []string{"APL", "CHP"}, catalogIDs(c))
	assert.True(t, domain.IsValidationError(err))
	assert.True(t, domain.IsDuplicateProductError(err))
	assert.Contains(t, err.Error(), "record 2")
	assert.Contains(t, err.Error(), "record 5")
}

func TestLoadCatalogFile_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		c, err := LoadCatalogFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadCatalogFile(writeFile(t, "empty.json", "  \n"))
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := LoadCatalogFile(writeFile(t, "bad.json", "this is not json"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadCatalogFile(writeFile(t, "bad.yml", "- id: [unclosed"))
		assert.Error(t, err)
	})
}

func TestSaveCatalogFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "catalog.json")
	src := NewSampleCatalog()

	require.NoError(t, SaveCatalogFile(path, src.ListItems()))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, catalogIDs(src), catalogIDs(loaded))
	for _, p := range src.ListItems() {
		q, ok := loaded.FindByID(p.ID())
		require.True(t, ok)
		assert.Equal(t, p.Name(), q.Name())
		assert.True(t, p.UnitPrice().Equal(q.UnitPrice()))
	}
}

func TestSaveCatalogFile_CleansUpOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	// a non-empty directory at the target makes the rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(path, "keep"), 0o755))

	err := SaveCatalogFile(path, NewSampleCatalog().ListItems())
	require.Error(t, err)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed")
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
