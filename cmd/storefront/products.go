package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Humphrey-He/storefront/internal/service"
	"github.com/Humphrey-He/storefront/pkg/filter"
)

type productsFlags struct {
	query         string
	categories    []string
	brands        []string
	sort          string
	minPrice      string
	maxPrice      string
	inStock       bool
	specialOffers bool
	contactPrice  bool
}

func (f productsFlags) options() (filter.Options, error) {
	sortBy, err := filter.ParseSortKey(f.sort)
	if err != nil {
		return filter.Options{}, err
	}
	opts := filter.Options{
		Categories:    f.categories,
		Brands:        f.brands,
		InStock:       f.inStock,
		SpecialOffers: f.specialOffers,
		ContactPrice:  f.contactPrice,
		SortBy:        sortBy,
	}
	if f.minPrice != "" || f.maxPrice != "" {
		r := filter.PriceRange{Min: decimal.Zero, Max: filter.DefaultMaxPrice}
		if f.minPrice != "" {
			if r.Min, err = decimal.NewFromString(f.minPrice); err != nil {
				return filter.Options{}, fmt.Errorf("invalid --min-price: %w", err)
			}
		}
		if f.maxPrice != "" {
			if r.Max, err = decimal.NewFromString(f.maxPrice); err != nil {
				return filter.Options{}, fmt.Errorf("invalid --max-price: %w", err)
			}
		}
		opts.PriceRange = &r
	}
	return opts, nil
}

func newProductsCommand(root *rootOptions) *cobra.Command {
	var f productsFlags
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Search, filter and sort the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			a, err := root.build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			return printProducts(cmd.OutOrStdout(), a.service.ListProducts(f.query, opts), a.service.ContactPhone())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.query, "query", "q", "", "free text matched against name, brand and tags")
	flags.StringSliceVar(&f.categories, "category", nil, "category ids")
	flags.StringSliceVar(&f.brands, "brand", nil, "brand names")
	flags.StringVar(&f.sort, "sort", string(filter.SortByName), "name, price-asc, price-desc, newest or popularity")
	flags.StringVar(&f.minPrice, "min-price", "", "lowest price")
	flags.StringVar(&f.maxPrice, "max-price", "", "highest price")
	flags.BoolVar(&f.inStock, "in-stock", false, "only products with stock")
	flags.BoolVar(&f.specialOffers, "special-offers", false, "only special offers")
	flags.BoolVar(&f.contactPrice, "contact-price", false, "only contact-priced products")
	return cmd
}

func printProducts(w io.Writer, products []service.ProductView, phone string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		price := p.FormattedPrice
		if p.IsContactPrice {
			price = "call " + phone
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Brand, p.Category, price, p.Stock)
	}
	fmt.Fprintf(tw, "\n%d products\n", len(products))
	return tw.Flush()
}
