package filter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

// Supported sort keys.
const (
	SortByName       SortKey = "name"
	SortByPriceAsc   SortKey = "price-asc"
	SortByPriceDesc  SortKey = "price-desc"
	SortByNewest     SortKey = "newest"
	SortByPopularity SortKey = "popularity"
)

// DefaultMaxPrice is the upper bound used when no product has a numeric price.
var DefaultMaxPrice = decimal.NewFromInt(100000000)

// ParseSortKey validates s. An empty string selects SortByName.
//
// ParseSortKey 验证s。空字符串选择SortByName。
//
// Parameters:
//   - s: The raw sort key
//
// Returns:
//   - SortKey: The parsed key
//   - error: An error wrapping ErrUnknownSortKey for anything else
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByName, nil
	case SortByName, SortByPriceAsc, SortByPriceDesc, SortByNewest, SortByPopularity:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", storeerrors.ErrUnknownSortKey, s)
	}
}

// PriceRange is an inclusive [Min, Max] price interval.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Contains reports whether Min <= price <= Max.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Equal reports whether both bounds match.
func (r PriceRange) Equal(o PriceRange) bool {
	return r.Min.Equal(o.Min) && r.Max.Equal(o.Max)
}

// Options are the shopper's filter selections.
// Empty Categories or Brands select everything; a nil PriceRange is unbounded.
//
// Options 是购物者的筛选选择。
// 空的Categories或Brands表示选择全部；nil的PriceRange表示不限价格。
type Options struct {
	Categories    []string    `json:"categories"`
	Brands        []string    `json:"brands"`
	PriceRange    *PriceRange `json:"priceRange,omitempty"`
	InStock       bool        `json:"inStock,omitempty"`
	SpecialOffers bool        `json:"specialOffers,omitempty"`
	ContactPrice  bool        `json:"contactPrice,omitempty"`
	SortBy        SortKey     `json:"sortBy"`
}

// ActiveCount returns how many filter groups differ from their reset state.
// A price range counts as active when it differs from bounds.
//
// ActiveCount 返回有多少个筛选组与其重置状态不同。
// 当价格范围与bounds不同时视为已激活。
func (o Options) ActiveCount(bounds PriceRange) int {
	n := 0
	if len(o.Categories) > 0 {
		n++
	}
	if len(o.Brands) > 0 {
		n++
	}
	if o.PriceRange != nil && !o.PriceRange.Equal(bounds) {
		n++
	}
	for _, on := range []bool{o.InStock, o.SpecialOffers, o.ContactPrice} {
		if on {
			n++
		}
	}
	return n
}
