package filter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humphrey-He/storefront/pkg/catalog"
)

func TestBrands(t *testing.T) {
	products := fixture()
	products = append(products, catalog.Product{ID: "nobrand"})
	assert.Equal(t, []string{"Breeze", "Gale", "Volt"}, Brands(products))
	assert.Empty(t, Brands(nil))
}

func TestPriceBounds(t *testing.T) {
	bounds, ok := PriceBounds(fixture())
	require.True(t, ok)
	assert.True(t, bounds.Min.Equal(decimal.NewFromInt(100)))
	assert.True(t, bounds.Max.Equal(decimal.NewFromInt(900000)))

	_, ok = PriceBounds([]catalog.Product{contact("x", "X", "fans"), flat("z", "Z", "", "c", 0, 1)})
	assert.False(t, ok)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions([]catalog.Product{contact("x", "X", "fans")})
	require.NotNil(t, opts.PriceRange)
	assert.True(t, opts.PriceRange.Min.IsZero())
	assert.True(t, opts.PriceRange.Max.Equal(DefaultMaxPrice))
	assert.Equal(t, SortByName, opts.SortBy)
	assert.Zero(t, opts.ActiveCount(*opts.PriceRange))
}

func TestActiveCount(t *testing.T) {
	bounds := PriceRange{Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(900000)}
	narrowed := PriceRange{Min: decimal.NewFromInt(1000), Max: bounds.Max}

	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"reset", Options{PriceRange: &bounds}, 0},
		{"nil range", Options{}, 0},
		{"categories and brands", Options{Categories: []string{"fans"}, Brands: []string{"Gale"}}, 2},
		{"narrowed range", Options{PriceRange: &narrowed}, 1},
		{"toggles", Options{InStock: true, SpecialOffers: true, ContactPrice: true}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.ActiveCount(bounds))
		})
	}
}

func TestGroupByCategory(t *testing.T) {
	categories := []catalog.Category{{ID: "fans"}, {ID: "motors"}, {ID: "packages"}}
	groups := GroupByCategory(fixture(), categories)

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"a", "b", "d", "e"}, ids(groups["fans"]))
	assert.Equal(t, []string{"c"}, ids(groups["motors"]))
	assert.Empty(t, groups["packages"])
}
