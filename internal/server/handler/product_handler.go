// Package handler provides HTTP request handlers for the storefront API.
// It implements the presentation layer of the application, handling HTTP requests
// and responses while delegating business logic to the service layer.
//
// Package handler 提供店面API的HTTP请求处理程序。
// 它实现了应用程序的表示层，处理HTTP请求和响应，同时将业务逻辑委托给服务层。
package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/internal/service"
	"github.com/Humphrey-He/storefront/pkg/filter"
)

// ProductHandler handles HTTP requests for the catalog.
//
// ProductHandler 处理目录的HTTP请求。
type ProductHandler struct {
	service *service.StoreService
}

// NewProductHandler creates a new product handler with the given service.
//
// NewProductHandler 使用给定的服务创建一个新的商品处理程序。
//
// Parameters:
//   - service: The store service to use for business logic
//
// Returns:
//   - *ProductHandler: A new product handler instance
func NewProductHandler(service *service.StoreService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListProducts handles GET /api/products.
// Query parameters: q, category and brand (repeated or comma-separated),
// min_price, max_price, in_stock, special_offers, contact_price, sort.
//
// ListProducts 处理GET /api/products。
func (h *ProductHandler) ListProducts(c *gin.Context) {
	opts, err := ParseFilterQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	products := h.service.ListProducts(c.Query("q"), opts)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"active":   opts.ActiveCount(h.service.PriceBounds()),
		"products": products,
	})
}

// GetProduct handles GET /api/products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.service.Product(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListCategories handles GET /api/categories.
func (h *ProductHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Categories())
}

// GetFacets handles GET /api/facets.
func (h *ProductHandler) GetFacets(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Facets())
}

// ParseFilterQuery reads filter options from the request query.
// A missing bound of a price range defaults to 0 or filter.DefaultMaxPrice.
//
// ParseFilterQuery 从请求查询中读取筛选选项。
// 价格范围缺失的边界默认为0或filter.DefaultMaxPrice。
func ParseFilterQuery(c *gin.Context) (filter.Options, error) {
	var opts filter.Options
	var err error

	if opts.SortBy, err = filter.ParseSortKey(c.Query("sort")); err != nil {
		return opts, err
	}
	opts.Categories = splitList(c.QueryArray("category"))
	opts.Brands = splitList(c.QueryArray("brand"))

	for name, dst := range map[string]*bool{
		"in_stock":       &opts.InStock,
		"special_offers": &opts.SpecialOffers,
		"contact_price":  &opts.ContactPrice,
	} {
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			continue
		}
		if *dst, err = strconv.ParseBool(raw); err != nil {
			return opts, fmt.Errorf("invalid %s: %q", name, raw)
		}
	}

	minRaw, hasMin := c.GetQuery("min_price")
	maxRaw, hasMax := c.GetQuery("max_price")
	if hasMin || hasMax {
		r := filter.PriceRange{Min: decimal.Zero, Max: filter.DefaultMaxPrice}
		if hasMin && minRaw != "" {
			if r.Min, err = decimal.NewFromString(minRaw); err != nil {
				return opts, fmt.Errorf("invalid min_price: %q", minRaw)
			}
		}
		if hasMax && maxRaw != "" {
			if r.Max, err = decimal.NewFromString(maxRaw); err != nil {
				return opts, fmt.Errorf("invalid max_price: %q", maxRaw)
			}
		}
		if r.Min.GreaterThan(r.Max) {
			return opts, fmt.Errorf("min_price %s exceeds max_price %s", r.Min, r.Max)
		}
		opts.PriceRange = &r
	}

	return opts, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
