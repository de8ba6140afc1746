package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

// Document is the on-disk shape of a catalog: two arrays of records.
//
// Document 是目录在磁盘上的形式：两个记录数组。
type Document struct {
	Categories []Category      `json:"categories" yaml:"categories"`
	Products   []ProductRecord `json:"products" yaml:"products"`
}

// ProductRecord is the flat wire form of a product, with the pricing modes
// spread over nullable fields.
//
// ProductRecord 是商品的扁平传输形式，定价模式分散在可空字段中。
type ProductRecord struct {
	ID                 string            `json:"id" yaml:"id"`
	Name               string            `json:"name" yaml:"name"`
	Brand              string            `json:"brand" yaml:"brand"`
	Category           string            `json:"category" yaml:"category"`
	Subcategory        string            `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Price              *float64          `json:"price,omitempty" yaml:"price,omitempty"`
	OriginalPrice      *float64          `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	DiscountPercentage *float64          `json:"discountPercentage,omitempty" yaml:"discountPercentage,omitempty"`
	IsSpecialOffer     bool              `json:"isSpecialOffer,omitempty" yaml:"isSpecialOffer,omitempty"`
	IsFeatured         bool              `json:"isFeatured,omitempty" yaml:"isFeatured,omitempty"`
	IsContactPrice     bool              `json:"isContactPrice,omitempty" yaml:"isContactPrice,omitempty"`
	Image              string            `json:"image" yaml:"image"`
	Images             []string          `json:"images,omitempty" yaml:"images,omitempty"`
	Description        string            `json:"description" yaml:"description"`
	Specifications     map[string]string `json:"specifications,omitempty" yaml:"specifications,omitempty"`
	Stock              int               `json:"stock" yaml:"stock"`
	Tags               []string          `json:"tags" yaml:"tags"`
	Rating             *float64          `json:"rating,omitempty" yaml:"rating,omitempty"`
	ReviewCount        *int              `json:"reviewCount,omitempty" yaml:"reviewCount,omitempty"`
	CreatedAt          string            `json:"createdAt" yaml:"createdAt"`
}

// Product converts the wire record into a Product.
// The contact flag takes precedence over numeric fields; an original price with a
// positive discount becomes Discounted; otherwise the flat price is used.
//
// Product 将传输记录转换为Product。
// 联系询价标志优先于数字字段；带有正折扣的原价变为Discounted；否则使用固定价格。
//
// Returns:
//   - Product: The converted product
//   - error: An error wrapping ErrInvalidCatalog if the record is malformed
func (r ProductRecord) Product() (Product, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return Product{}, fmt.Errorf("%w: product without id", storeerrors.ErrInvalidCatalog)
	}
	if r.Stock < 0 {
		return Product{}, fmt.Errorf("%w: product %q has negative stock %d", storeerrors.ErrInvalidCatalog, id, r.Stock)
	}

	var createdAt time.Time
	if s := strings.TrimSpace(r.CreatedAt); s != "" {
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return Product{}, fmt.Errorf("%w: product %q has unreadable createdAt %q: %v", storeerrors.ErrInvalidCatalog, id, s, err)
		}
		createdAt = t
	}

	p := Product{
		ID:             id,
		Name:           r.Name,
		Brand:          r.Brand,
		Category:       r.Category,
		Subcategory:    r.Subcategory,
		Description:    r.Description,
		Tags:           append([]string(nil), r.Tags...),
		Image:          r.Image,
		Images:         append([]string(nil), r.Images...),
		Specifications: copySpecs(r.Specifications),
		Pricing:        pricingOf(r),
		Stock:          r.Stock,
		Featured:       r.IsFeatured,
		SpecialOffer:   r.IsSpecialOffer,
		CreatedAt:      createdAt,
	}
	if r.Rating != nil || r.ReviewCount != nil {
		p.Review = &Review{}
		if r.Rating != nil {
			p.Review.Rating = *r.Rating
		}
		if r.ReviewCount != nil {
			p.Review.Count = *r.ReviewCount
		}
	}
	return p, nil
}

func pricingOf(r ProductRecord) Pricing {
	if r.IsContactPrice {
		return ContactOnly{}
	}
	if r.OriginalPrice != nil && r.DiscountPercentage != nil && *r.OriginalPrice > 0 && *r.DiscountPercentage > 0 {
		return Discounted{
			Original: decimal.NewFromFloat(*r.OriginalPrice),
			Percent:  decimal.NewFromFloat(*r.DiscountPercentage),
		}
	}
	if r.Price != nil {
		return Flat{Price: decimal.NewFromFloat(*r.Price)}
	}
	return Flat{Price: decimal.Zero}
}

// RecordOf converts a Product back into its wire form.
//
// RecordOf 将Product转换回其传输形式。
func RecordOf(p Product) ProductRecord {
	r := ProductRecord{
		ID:             p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		Category:       p.Category,
		Subcategory:    p.Subcategory,
		IsSpecialOffer: p.SpecialOffer,
		IsFeatured:     p.Featured,
		Image:          p.Image,
		Images:         append([]string(nil), p.Images...),
		Description:    p.Description,
		Specifications: copySpecs(p.Specifications),
		Stock:          p.Stock,
		Tags:           append([]string(nil), p.Tags...),
	}
	if !p.CreatedAt.IsZero() {
		r.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}

	switch pr := p.Pricing.(type) {
	case ContactOnly:
		r.IsContactPrice = true
	case Discounted:
		original := pr.Original.InexactFloat64()
		percent := pr.Percent.InexactFloat64()
		price := pr.Price().InexactFloat64()
		r.OriginalPrice, r.DiscountPercentage, r.Price = &original, &percent, &price
	case Flat:
		price := pr.Price.InexactFloat64()
		r.Price = &price
	}

	if p.Review != nil {
		rating, count := p.Review.Rating, p.Review.Count
		r.Rating, r.ReviewCount = &rating, &count
	}
	return r
}

func copySpecs(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
