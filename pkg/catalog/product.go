// Package catalog holds the read-only product and category data of the store.
// Products carry a sealed Pricing variant so that every price resolution is an
// exhaustive switch over flat, discounted and contact-only pricing.
//
// Package catalog 保存商店的只读商品和分类数据。
// 商品携带一个封闭的Pricing变体，使每次价格解析都是对固定价格、折扣价格和
// 仅联系询价三种情况的穷举判断。
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Pricing is one of Flat, Discounted or ContactOnly.
// The unexported marker method keeps the set closed to this package.
//
// Pricing 是Flat、Discounted或ContactOnly之一。
// 未导出的标记方法使该集合仅限于本包。
type Pricing interface {
	pricing()
}

// Flat is a plain numeric price.
type Flat struct {
	Price decimal.Decimal
}

// Discounted is an original price reduced by a percentage.
type Discounted struct {
	Original decimal.Decimal
	Percent  decimal.Decimal
}

// ContactOnly marks a product without a numeric price; shoppers must contact the seller.
type ContactOnly struct{}

func (Flat) pricing()        {}
func (Discounted) pricing()  {}
func (ContactOnly) pricing() {}

// Price returns the discounted price: original - original*percent/100.
func (d Discounted) Price() decimal.Decimal {
	return d.Original.Sub(d.Original.Mul(d.Percent).Div(hundred))
}

// Review holds optional rating metadata.
type Review struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// Product is a catalog entry. Products are values; the catalog hands out copies.
//
// Product 是目录条目。商品是值类型；目录分发的是副本。
type Product struct {
	ID             string
	Name           string
	Brand          string
	Category       string
	Subcategory    string
	Description    string
	Tags           []string
	Image          string
	Images         []string
	Specifications map[string]string
	Pricing        Pricing
	Stock          int
	Featured       bool
	SpecialOffer   bool
	Review         *Review
	CreatedAt      time.Time
}

// IsContactPrice reports whether the product uses contact-only pricing.
func (p Product) IsContactPrice() bool {
	_, ok := p.Pricing.(ContactOnly)
	return ok
}

// ResolvedPrice returns the price a shopper pays for one unit.
// The boolean is false for contact-only products, which have no numeric price.
//
// ResolvedPrice 返回购物者为一件商品支付的价格。
// 对于仅联系询价的商品（没有数字价格），布尔值为false。
//
// Returns:
//   - decimal.Decimal: The discounted price, the flat price, or zero
//   - bool: False when the product is contact-priced
func (p Product) ResolvedPrice() (decimal.Decimal, bool) {
	switch pr := p.Pricing.(type) {
	case Flat:
		return pr.Price, true
	case Discounted:
		return pr.Price(), true
	case ContactOnly:
		return decimal.Zero, false
	default:
		return decimal.Zero, true
	}
}

// Savings is the amount saved against the original price, zero unless discounted.
func (p Product) Savings() decimal.Decimal {
	if d, ok := p.Pricing.(Discounted); ok {
		return d.Original.Sub(d.Price())
	}
	return decimal.Zero
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ReviewCount returns the number of reviews, treating missing metadata as zero.
func (p Product) ReviewCount() int {
	if p.Review == nil {
		return 0
	}
	return p.Review.Count
}
