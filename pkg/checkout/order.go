package checkout

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/pkg/cart"
)

// PaymentMethod is how the shopper intends to pay.
type PaymentMethod string

// Accepted payment methods.
const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
)

// Valid reports whether m is one of the accepted methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}

// Customer holds the shopper's contact details.
// FirstName, LastName and Phone are required; Email is optional.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
}

// ShippingAddress holds the delivery destination.
// Address and City are required; PostalCode and State are optional.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	State      string `json:"state,omitempty"`
}

// Order is a validated, priced checkout record. It is never mutated after
// Assemble returns it.
//
// Order 是经过验证和定价的结账记录。Assemble返回后它不会再被修改。
type Order struct {
	id        string
	createdAt time.Time
	customer  Customer
	shipping  ShippingAddress
	method    PaymentMethod
	items     []cart.Line
	quote     Quote
}

// ID returns the order id.
func (o *Order) ID() string { return o.id }

// CreatedAt returns when the order was assembled.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Customer returns the shopper's contact details.
func (o *Order) Customer() Customer { return o.customer }

// Shipping returns the delivery address.
func (o *Order) Shipping() ShippingAddress { return o.shipping }

// PaymentMethod returns the chosen payment method.
func (o *Order) PaymentMethod() PaymentMethod { return o.method }

// GoodsTotal returns the sum of line subtotals.
func (o *Order) GoodsTotal() decimal.Decimal { return o.quote.Goods }

// ShippingCost returns the delivery charge.
func (o *Order) ShippingCost() decimal.Decimal { return o.quote.Shipping }

// FinalTotal returns GoodsTotal plus ShippingCost.
func (o *Order) FinalTotal() decimal.Decimal { return o.quote.Final }

// Items returns a copy of the ordered lines.
func (o *Order) Items() []cart.Line {
	out := make([]cart.Line, len(o.items))
	copy(out, o.items)
	return out
}

type orderJSON struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"createdAt"`
	Customer      Customer        `json:"customer"`
	Shipping      ShippingAddress `json:"shipping"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Items         []cart.Line     `json:"items"`
	GoodsTotal    decimal.Decimal `json:"goodsTotal"`
	ShippingCost  decimal.Decimal `json:"shippingCost"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
}

// MarshalJSON renders the order record.
func (o *Order) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(orderJSON{
		ID:            o.id,
		CreatedAt:     o.createdAt,
		Customer:      o.customer,
		Shipping:      o.shipping,
		PaymentMethod: o.method,
		Items:         o.items,
		GoodsTotal:    o.quote.Goods,
		ShippingCost:  o.quote.Shipping,
		FinalTotal:    o.quote.Final,
	})
}
