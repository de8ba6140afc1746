// Package errors provides standardized error types for the storefront core.
// It defines the sentinel errors returned by the catalog, cart and checkout
// packages, typed errors that carry the offending product or field, and helper
// functions for error checking at the presentation layer.
//
// Package errors 提供店面核心的标准化错误类型。
// 它定义了目录、购物车和结账包返回的哨兵错误、携带出错商品或字段的类型化错误，
// 以及供表示层进行错误检查的辅助函数。
package errors

import (
	"errors"
	"fmt"
)

// Standard errors that can be returned by the storefront core.
// None of them is fatal: every failure leaves prior state unchanged.
//
// 店面核心可能返回的标准错误。
// 它们都不是致命错误：每次失败都会保持先前的状态不变。
var (
	// ErrStockExceeded is returned when a cart mutation would go beyond the stock ceiling.
	// 当购物车变更将超过库存上限时返回ErrStockExceeded。
	ErrStockExceeded = errors.New("cart: insufficient stock")

	// ErrValidation is returned when required checkout input is missing or malformed.
	// 当必需的结账输入缺失或格式错误时返回ErrValidation。
	ErrValidation = errors.New("checkout: validation failed")

	// ErrEmptyCart is returned when a checkout is attempted with no cart lines.
	// 当在没有购物车行的情况下尝试结账时返回ErrEmptyCart。
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrProductNotFound is returned when a product id is not in the catalog.
	// 当商品ID不在目录中时返回ErrProductNotFound。
	ErrProductNotFound = errors.New("catalog: product not found")

	// ErrSessionNotFound is returned when a cart session does not exist or has expired.
	// 当购物车会话不存在或已过期时返回ErrSessionNotFound。
	ErrSessionNotFound = errors.New("session: not found")

	// ErrInvalidCatalog is returned when a catalog document violates its invariants.
	// 当目录文档违反其不变量时返回ErrInvalidCatalog。
	ErrInvalidCatalog = errors.New("catalog: invalid document")

	// ErrUnknownSortKey is returned when a sort key is not one of the supported keys.
	// 当排序键不是受支持的键之一时返回ErrUnknownSortKey。
	ErrUnknownSortKey = errors.New("filter: unknown sort key")
)

// StockError reports a rejected cart mutation for a specific product.
// It wraps ErrStockExceeded with the product and the ceiling that was hit.
//
// StockError 报告针对特定商品被拒绝的购物车变更。
// 它用商品和达到的上限包装ErrStockExceeded。
type StockError struct {
	ProductID string // The product that was rejected / 被拒绝的商品
	Stock     int    // The stock ceiling in effect / 生效的库存上限
}

// Error returns the error message.
//
// Error 返回错误消息。
//
// Returns:
//   - string: The formatted error message including the product id and ceiling
func (e *StockError) Error() string {
	return fmt.Sprintf("%s: %s (stock %d)", ErrStockExceeded, e.ProductID, e.Stock)
}

// Unwrap returns ErrStockExceeded so errors.Is works with StockError values.
//
// Unwrap 返回ErrStockExceeded，使errors.Is可以处理StockError值。
func (e *StockError) Unwrap() error {
	return ErrStockExceeded
}

// NewStockError creates a new StockError.
//
// NewStockError 创建一个新的StockError。
//
// Parameters:
//   - productID: The product whose ceiling was reached
//   - stock: The ceiling
//
// Returns:
//   - *StockError: A new stock error instance
func NewStockError(productID string, stock int) *StockError {
	return &StockError{ProductID: productID, Stock: stock}
}

// FieldError represents a checkout validation failure on a single input field.
//
// FieldError 表示单个输入字段上的结账验证失败。
type FieldError struct {
	Field string // The offending field / 出错的字段
	Err   error  // The underlying error / 底层错误
}

// Error returns the error message.
//
// Error 返回错误消息。
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

// Unwrap returns the underlying error.
// FieldError values built by NewFieldError always match ErrValidation as well.
//
// Unwrap 返回底层错误。
// 由NewFieldError构建的FieldError值也总是匹配ErrValidation。
func (e *FieldError) Unwrap() []error {
	if e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}

// NewFieldError creates a new FieldError for the given field.
// A nil err defaults to ErrValidation.
//
// NewFieldError 为给定字段创建一个新的FieldError。
// err为nil时默认为ErrValidation。
//
// Parameters:
//   - field: The input field name
//   - err: The underlying error
//
// Returns:
//   - *FieldError: A new field error instance
func NewFieldError(field string, err error) *FieldError {
	if err == nil {
		err = ErrValidation
	}
	return &FieldError{Field: field, Err: err}
}

// ProductError associates a product id with a catalog error.
//
// ProductError 将商品ID与目录错误关联起来。
type ProductError struct {
	ID  string
	Err error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.ID)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// NewProductError creates a new ProductError.
func NewProductError(id string, err error) *ProductError {
	return &ProductError{ID: id, Err: err}
}

// IsStockExceeded returns true if the error reports an insufficient stock condition.
//
// IsStockExceeded 如果错误表示库存不足，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrStockExceeded
func IsStockExceeded(err error) bool {
	return errors.Is(err, ErrStockExceeded)
}

// IsValidation returns true if the error is a checkout validation failure.
//
// IsValidation 如果错误是结账验证失败，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrValidation
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound returns true if the error reports a missing product or session.
//
// IsNotFound 如果错误表示缺少商品或会话，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrProductNotFound or ErrSessionNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrSessionNotFound)
}

// FieldOf extracts the offending field name from a validation error.
// It returns an empty string when err carries no FieldError.
//
// FieldOf 从验证错误中提取出错的字段名称。
// 当err不携带FieldError时返回空字符串。
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
