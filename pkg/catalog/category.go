package catalog

// Category groups products for browsing.
// ProductCount is copied from the source document as-is; it is informational
// and is never recomputed from the catalog.
type Category struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Slug          string        `json:"slug" yaml:"slug"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	Image         string        `json:"image,omitempty" yaml:"image,omitempty"`
	ProductCount  int           `json:"productCount" yaml:"productCount"`
	Subcategories []Subcategory `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
}

// Subcategory is a second-level grouping inside a Category.
type Subcategory struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Slug         string `json:"slug" yaml:"slug"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	ProductCount int    `json:"productCount" yaml:"productCount"`
}
