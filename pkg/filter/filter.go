// Package filter implements the product search, filter and sort pipeline.
// Apply is a pure projection: it never mutates its input and always returns a
// fresh, stably sorted subset of the products it was given.
//
// Package filter 实现商品搜索、筛选和排序管道。
// Apply 是纯投影：它从不修改输入，总是返回所给商品的一个新的、稳定排序的子集。
package filter

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Humphrey-He/storefront/pkg/catalog"
)

// DefaultLocale is the collation locale used for name ordering.
var DefaultLocale = language.Persian

// Engine runs the pipeline with a fixed collation locale.
// An Engine holds no mutable state and may be shared.
//
// Engine 使用固定的排序规则区域设置运行管道。
// Engine 不持有可变状态，可以共享。
type Engine struct {
	locale language.Tag
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocale sets the collation locale for SortByName.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.locale = tag
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{locale: DefaultLocale}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Apply runs the pipeline with the default engine.
func Apply(products []catalog.Product, query string, opts Options) []catalog.Product {
	return defaultEngine.Apply(products, query, opts)
}

// Apply filters products by query and opts and sorts the survivors.
// Stages run in order: text search, category, brand, price range, in-stock,
// special offers, contact price, then a stable sort by opts.SortBy.
//
// Apply 按query和opts筛选商品并对结果排序。
// 各阶段按顺序执行：文本搜索、分类、品牌、价格范围、有货、特价、联系询价，
// 然后按opts.SortBy进行稳定排序。
//
// Parameters:
//   - products: The full product list, left untouched
//   - query: Free text matched case-insensitively against name, brand and tags; only "" skips the stage
//   - opts: The filter selections
//
// Returns:
//   - []catalog.Product: A new slice holding the matching products in order
func (e *Engine) Apply(products []catalog.Product, query string, opts Options) []catalog.Product {
	categories := toSet(opts.Categories)
	brands := toSet(opts.Brands)
	q := strings.ToLower(query)

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if len(categories) > 0 && !categories[p.Category] {
			continue
		}
		if len(brands) > 0 && !brands[p.Brand] {
			continue
		}
		// The contact toggle makes the range check moot.
		if !opts.ContactPrice && opts.PriceRange != nil && !p.IsContactPrice() {
			price, _ := p.ResolvedPrice()
			if !opts.PriceRange.Contains(price) {
				continue
			}
		}
		if opts.InStock && !p.InStock() {
			continue
		}
		if opts.SpecialOffers && !p.SpecialOffer {
			continue
		}
		if opts.ContactPrice && !p.IsContactPrice() {
			continue
		}
		out = append(out, p)
	}

	e.sort(out, opts.SortBy)
	return out
}

func (e *Engine) sort(products []catalog.Product, key SortKey) {
	switch key {
	case SortByPriceAsc:
		slices.SortStableFunc(products, comparePrice(false))
	case SortByPriceDesc:
		slices.SortStableFunc(products, comparePrice(true))
	case SortByNewest:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortByPopularity:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return cmp.Compare(b.ReviewCount(), a.ReviewCount())
		})
	default:
		// collate.Collator keeps scratch buffers, so one per call.
		coll := collate.New(e.locale)
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return coll.CompareString(a.Name, b.Name)
		})
	}
}

// comparePrice orders by resolved price and always puts contact-priced products last.
func comparePrice(desc bool) func(a, b catalog.Product) int {
	return func(a, b catalog.Product) int {
		ap, aok := a.ResolvedPrice()
		bp, bok := b.ResolvedPrice()
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		if desc {
			return bp.Cmp(ap)
		}
		return ap.Cmp(bp)
	}
}

func matchesQuery(p catalog.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
