package catalog

import (
	"fmt"

	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

// Catalog is the immutable set of products and categories loaded at startup.
// It is safe for concurrent readers because nothing mutates it after New.
//
// Catalog 是启动时加载的不可变商品和分类集合。
// 由于New之后没有任何操作会修改它，因此可以安全地被并发读取。
type Catalog struct {
	products   []Product
	categories []Category
	byID       map[string]int
	catByID    map[string]int
}

// New builds a Catalog from already converted products and categories.
// Product ids must be unique.
//
// New 从已转换的商品和分类构建Catalog。
// 商品ID必须唯一。
//
// Parameters:
//   - products: The products in display order
//   - categories: The categories in display order
//
// Returns:
//   - *Catalog: The catalog
//   - error: An error wrapping ErrInvalidCatalog on duplicate ids
func New(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		products:   make([]Product, 0, len(products)),
		categories: append([]Category(nil), categories...),
		byID:       make(map[string]int, len(products)),
		catByID:    make(map[string]int, len(categories)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", storeerrors.ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	for i, cat := range c.categories {
		if _, dup := c.catByID[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", storeerrors.ErrInvalidCatalog, cat.ID)
		}
		c.catByID[cat.ID] = i
	}
	return c, nil
}

// FromDocument converts every record of doc and builds a Catalog.
//
// FromDocument 转换doc中的每条记录并构建Catalog。
func FromDocument(doc *Document) (*Catalog, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", storeerrors.ErrInvalidCatalog)
	}
	products := make([]Product, 0, len(doc.Products))
	for i, rec := range doc.Products {
		p, err := rec.Product()
		if err != nil {
			return nil, fmt.Errorf("product #%d: %w", i, err)
		}
		products = append(products, p)
	}
	return New(products, doc.Categories)
}

// Products returns a copy of all products in document order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Categories returns a copy of all categories in document order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Product looks up a product by id.
//
// Returns:
//   - Product: The product
//   - error: A ProductError wrapping ErrProductNotFound when the id is unknown
func (c *Catalog) Product(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, storeerrors.NewProductError(id, storeerrors.ErrProductNotFound)
	}
	return c.products[i], nil
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.catByID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
