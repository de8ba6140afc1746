// Package checkout validates shopper input and assembles priced orders from
// cart lines.
//
// Package checkout 验证购物者输入，并从购物车行组装已定价的订单。
package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/pkg/cart"
	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

// Shipping policy. Orders strictly above the threshold ship for free.
var (
	FreeShippingThreshold = decimal.NewFromInt(5000000)
	ShippingFee           = decimal.NewFromInt(300000)
)

// Quote is the price breakdown of a set of cart lines.
type Quote struct {
	Goods    decimal.Decimal `json:"goods"`
	Shipping decimal.Decimal `json:"shipping"`
	Final    decimal.Decimal `json:"final"`
}

// FreeShipping reports whether the quote qualified for free delivery.
func (q Quote) FreeShipping() bool {
	return q.Shipping.IsZero()
}

// QuoteLines prices lines: goods is the sum of subtotals, shipping is free
// above FreeShippingThreshold and ShippingFee otherwise.
//
// QuoteLines 为lines定价：商品金额为小计之和，超过FreeShippingThreshold免运费，
// 否则收取ShippingFee。
func QuoteLines(lines []cart.Line) Quote {
	goods := decimal.Zero
	for _, l := range lines {
		goods = goods.Add(l.Subtotal())
	}
	shipping := ShippingFee
	if goods.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Quote{Goods: goods, Shipping: shipping, Final: goods.Add(shipping)}
}

// Assembler turns cart lines and shopper input into an Order.
// An Assembler is safe for concurrent use if its clock and id generator are.
//
// Assembler 将购物车行和购物者输入转换为Order。
type Assembler struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock sets the time source for Order.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// WithIDGenerator sets the order id source.
func WithIDGenerator(gen func() string) Option {
	return func(a *Assembler) {
		a.newID = gen
	}
}

// NewAssembler creates an Assembler using time.Now and random UUIDs by default.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Quote prices lines without validating anything.
func (a *Assembler) Quote(lines []cart.Line) Quote {
	return QuoteLines(lines)
}

// Assemble validates the input and builds an Order.
// Validation stops at the first failure, checked in this order: first name,
// last name, phone, address, city, payment method, non-empty cart.
//
// Assemble 验证输入并构建Order。
// 验证在第一次失败时停止，检查顺序为：名、姓、电话、地址、城市、支付方式、购物车非空。
//
// Parameters:
//   - lines: The cart lines to order; copied into the Order
//   - customer: The shopper's contact details
//   - shipping: The delivery address
//   - method: The payment method
//
// Returns:
//   - *Order: The assembled order, nil on failure
//   - error: A *errors.FieldError wrapping ErrValidation (and ErrEmptyCart for "items")
func (a *Assembler) Assemble(lines []cart.Line, customer Customer, shipping ShippingAddress, method PaymentMethod) (*Order, error) {
	required := []struct {
		field string
		value string
	}{
		{"firstName", customer.FirstName},
		{"lastName", customer.LastName},
		{"phone", customer.Phone},
		{"address", shipping.Address},
		{"city", shipping.City},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, storeerrors.NewFieldError(r.field, nil)
		}
	}
	if !method.Valid() {
		return nil, storeerrors.NewFieldError("paymentMethod", nil)
	}
	if len(lines) == 0 {
		return nil, storeerrors.NewFieldError("items", storeerrors.ErrEmptyCart)
	}

	items := make([]cart.Line, len(lines))
	copy(items, lines)
	return &Order{
		id:        a.newID(),
		createdAt: a.now(),
		customer:  trimCustomer(customer),
		shipping:  trimShipping(shipping),
		method:    method,
		items:     items,
		quote:     QuoteLines(items),
	}, nil
}

func trimCustomer(c Customer) Customer {
	return Customer{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
	}
}

func trimShipping(s ShippingAddress) ShippingAddress {
	return ShippingAddress{
		Address:    strings.TrimSpace(s.Address),
		City:       strings.TrimSpace(s.City),
		PostalCode: strings.TrimSpace(s.PostalCode),
		State:      strings.TrimSpace(s.State),
	}
}
