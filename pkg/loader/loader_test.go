package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humphrey-He/storefront/pkg/catalog"
	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

const yamlCatalog = `
categories:
  - id: fans
    name: Fans
    productCount: 2
products:
  - id: fan-1
    name: Fan One
    brand: Breeze
    category: fans
    price: 500000
    stock: 3
    tags: [fan]
    createdAt: "2024-01-01"
  - id: fan-2
    name: Fan Two
    brand: Breeze
    category: fans
    isContactPrice: true
    stock: 1
    tags: [fan]
`

func TestReaderLoaderYAML(t *testing.T) {
	c, err := NewReaderLoader(strings.NewReader(yamlCatalog), "yaml").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	p, err := c.Product("fan-2")
	require.NoError(t, err)
	assert.True(t, p.IsContactPrice())
}

func TestFileLoaderJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	body := `{"categories":[],"products":[{"id":"m","name":"Motor","brand":"X","category":"motors","price":100,"stock":1,"tags":[]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestFileLoaderUnsupportedExtension(t *testing.T) {
	_, err := NewFileLoader("catalog.csv").Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderRejectsInvalidDocument(t *testing.T) {
	body := `{"products":[{"id":"a","stock":1},{"id":"a","stock":2}]}`
	_, err := NewReaderLoader(strings.NewReader(body), "json").Load(context.Background())
	assert.ErrorIs(t, err, storeerrors.ErrInvalidCatalog)
}

func TestSampleCatalog(t *testing.T) {
	c, err := Sample().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, c.Len())
	assert.Len(t, c.Categories(), 3)

	contact := 0
	for _, p := range c.Products() {
		if p.IsContactPrice() {
			contact++
		}
	}
	assert.Equal(t, 2, contact)
}

func TestFallbackLoader(t *testing.T) {
	var seen error
	l := ForPath(filepath.Join(t.TempDir(), "missing.json"), func(err error) { seen = err })

	c, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, c.Len())
	assert.Error(t, seen)
}

func TestFallbackLoaderWithoutSecondary(t *testing.T) {
	boom := errors.New("boom")
	fl := NewFallbackLoader(LoaderFunc(func(context.Context) (*catalog.Catalog, error) {
		return nil, boom
	}), nil)

	_, err := fl.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReaderLoader(strings.NewReader(yamlCatalog), "yaml").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
