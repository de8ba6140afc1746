package service

import (
	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/pkg/cart"
	"github.com/Humphrey-He/storefront/pkg/catalog"
	"github.com/Humphrey-He/storefront/pkg/checkout"
	"github.com/Humphrey-He/storefront/pkg/filter"
	"github.com/Humphrey-He/storefront/pkg/money"
)

// ProductView is a product as presented to shoppers.
type ProductView struct {
	catalog.ProductRecord
	InStock          bool   `json:"inStock"`
	FormattedPrice   string `json:"formattedPrice,omitempty"`
	FormattedSavings string `json:"formattedSavings,omitempty"`
}

// LineView is a cart line with its subtotal.
type LineView struct {
	cart.Line
	Subtotal          decimal.Decimal `json:"subtotal"`
	FormattedSubtotal string          `json:"formattedSubtotal"`
}

// CartView is the full state of a session's cart with its price quote.
type CartView struct {
	SessionID         string         `json:"sessionId"`
	Lines             []LineView     `json:"lines"`
	Totals            cart.Totals    `json:"totals"`
	Quote             checkout.Quote `json:"quote"`
	FormattedTotal    string         `json:"formattedTotal"`
	FormattedShipping string         `json:"formattedShipping"`
	FormattedFinal    string         `json:"formattedFinal"`
}

// AddOutcome is the result of adding a product to a cart.
type AddOutcome struct {
	Outcome string    `json:"outcome"`
	Line    *LineView `json:"line,omitempty"`
	Phone   string    `json:"phone,omitempty"`
}

// Facets summarise a product list for the filter sidebar.
type Facets struct {
	Brands        []string           `json:"brands"`
	PriceBounds   filter.PriceRange  `json:"priceBounds"`
	HasPrices     bool               `json:"hasPrices"`
	Defaults      filter.Options     `json:"defaults"`
	CategoryCount map[string]int     `json:"categoryCount"`
	Categories    []catalog.Category `json:"categories"`
}

func productView(p catalog.Product, f *money.Formatter) ProductView {
	v := ProductView{ProductRecord: catalog.RecordOf(p), InStock: p.InStock()}
	if price, ok := p.ResolvedPrice(); ok {
		v.FormattedPrice = f.Format(price)
	}
	if s := p.Savings(); s.IsPositive() {
		v.FormattedSavings = f.Format(s)
	}
	return v
}

func lineView(l cart.Line, f *money.Formatter) LineView {
	sub := l.Subtotal()
	return LineView{Line: l, Subtotal: sub, FormattedSubtotal: f.Format(sub)}
}
