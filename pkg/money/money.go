// Package money renders decimal amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default display settings for the storefront currency.
const (
	DefaultLocale = "fa-IR"
	DefaultLabel  = "تومان"
)

// Formatter formats whole-unit amounts with locale digit grouping followed by
// a currency label. A Formatter is safe for concurrent use.
//
// Formatter 使用区域设置的数字分组格式化整数金额，并在其后附加货币标签。
// Formatter 可以安全地并发使用。
type Formatter struct {
	tag   language.Tag
	label string
}

// NewFormatter creates a Formatter for a BCP-47 locale string.
// An unparsable locale falls back to DefaultLocale.
//
// NewFormatter 为BCP-47区域字符串创建Formatter。
// 无法解析的区域设置回退到DefaultLocale。
//
// Parameters:
//   - locale: The BCP-47 tag, e.g. "fa-IR" or "en"
//   - label: The unit appended after the number; empty omits it
//
// Returns:
//   - *Formatter: A new formatter
func NewFormatter(locale, label string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{tag: tag, label: label}
}

// Default returns a Formatter using DefaultLocale and DefaultLabel.
func Default() *Formatter {
	return NewFormatter(DefaultLocale, DefaultLabel)
}

// Format rounds amount to whole units and renders it.
func (f *Formatter) Format(amount decimal.Decimal) string {
	// message.Printer is not safe for concurrent use.
	p := message.NewPrinter(f.tag)
	n := amount.Round(0).IntPart()
	if f.label == "" {
		return p.Sprintf("%d", n)
	}
	return p.Sprintf("%d %s", n, f.label)
}

// Tag returns the formatter's locale.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}
