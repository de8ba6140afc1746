package filter

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/pkg/catalog"
)

// benchCatalog builds n products spread over 8 categories and 20 brands,
// with every tenth product contact-priced and every seventh discounted.
//
// benchCatalog 构建n个分布在8个类别和20个品牌中的商品。
func benchCatalog(n int) []catalog.Product {
	r := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := make([]catalog.Product, n)
	for i := range products {
		p := flat(
			fmt.Sprintf("p-%d", i),
			fmt.Sprintf("Product %d", r.Intn(n)),
			fmt.Sprintf("brand-%d", i%20),
			fmt.Sprintf("cat-%d", i%8),
			int64(100000+r.Intn(50000000)),
			r.Intn(10),
		)
		p.CreatedAt = base.Add(time.Duration(r.Intn(365*24)) * time.Hour)
		switch {
		case i%10 == 0:
			p.Pricing = catalog.ContactOnly{}
		case i%7 == 0:
			p.Pricing = catalog.Discounted{Original: decimal.NewFromInt(int64(200000 + r.Intn(1000000))), Percent: decimal.NewFromInt(15)}
			p.SpecialOffer = true
		}
		products[i] = p
	}
	return products
}

// BenchmarkApply measures the filter pipeline for each sort key over catalogs
// of increasing size.
//
// BenchmarkApply 测量不同规模目录下每种排序键的筛选流水线性能。
func BenchmarkApply(b *testing.B) {
	engine := New()
	for _, size := range []int{100, 1000, 10000} {
		products := benchCatalog(size)
		for _, key := range []SortKey{SortByName, SortByPriceAsc, SortByNewest} {
			b.Run(fmt.Sprintf("Size=%d/Sort=%s", size, key), func(b *testing.B) {
				opts := Options{
					Categories: []string{"cat-1", "cat-3", "cat-5"},
					PriceRange: &PriceRange{Min: decimal.NewFromInt(500000), Max: decimal.NewFromInt(30000000)},
					InStock:    true,
					SortBy:     key,
				}
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					_ = engine.Apply(products, "product", opts)
				}
			})
		}
	}
}

// BenchmarkFacets measures facet derivation on a large catalog.
func BenchmarkFacets(b *testing.B) {
	products := benchCatalog(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Brands(products)
		_, _ = PriceBounds(products)
	}
}
