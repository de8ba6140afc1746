package filter

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/pkg/catalog"
)

// Brands returns the distinct brand names of products, sorted ascending.
func Brands(products []catalog.Product) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range products {
		if p.Brand == "" || seen[p.Brand] {
			continue
		}
		seen[p.Brand] = true
		out = append(out, p.Brand)
	}
	sort.Strings(out)
	return out
}

// PriceBounds returns the lowest and highest positive resolved price among
// products that are not contact-priced. The boolean is false when no product
// qualifies.
//
// PriceBounds 返回非联系询价商品中最低和最高的正解析价格。
// 当没有符合条件的商品时，布尔值为false。
func PriceBounds(products []catalog.Product) (PriceRange, bool) {
	var r PriceRange
	found := false
	for _, p := range products {
		price, ok := p.ResolvedPrice()
		if !ok || !price.IsPositive() {
			continue
		}
		if !found {
			r.Min, r.Max = price, price
			found = true
			continue
		}
		r.Min = decimal.Min(r.Min, price)
		r.Max = decimal.Max(r.Max, price)
	}
	return r, found
}

// DefaultOptions returns the reset state of the filter sidebar for products:
// nothing selected, the full price range, sorted by name.
//
// DefaultOptions 返回products对应的筛选侧栏重置状态：
// 不选择任何项、完整价格范围、按名称排序。
func DefaultOptions(products []catalog.Product) Options {
	bounds, ok := PriceBounds(products)
	if !ok {
		bounds = PriceRange{Min: decimal.Zero, Max: DefaultMaxPrice}
	}
	return Options{
		PriceRange: &bounds,
		SortBy:     SortByName,
	}
}

// GroupByCategory buckets products under each category id, keeping the order of
// products. Every category gets an entry, possibly empty; products whose category
// is not listed are left out.
//
// GroupByCategory 将商品按分类ID分组，保持商品的顺序。
// 每个分类都有一个条目（可能为空）；分类未列出的商品会被忽略。
func GroupByCategory(products []catalog.Product, categories []catalog.Category) map[string][]catalog.Product {
	groups := make(map[string][]catalog.Product, len(categories))
	for _, c := range categories {
		groups[c.ID] = []catalog.Product{}
	}
	for _, p := range products {
		if g, ok := groups[p.Category]; ok {
			groups[p.Category] = append(g, p)
		}
	}
	return groups
}
