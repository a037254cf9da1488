package types

import "github.com/shopspring/decimal"

// Money formats integer cents for API responses. Arithmetic stays in cents;
// decimal is only used at the display boundary so no float rounding leaks in.
type Money struct {
	Cents    int64  `json:"cents"`
	Display  string `json:"display"`
	Currency string `json:"currency"`
}

const defaultCurrency = "INR"

// NewMoney converts cents into the display representation.
func NewMoney(cents int64) Money {
	return NewMoneyCurrency(cents, defaultCurrency)
}

// NewMoneyCurrency converts cents into the display representation with an
// explicit currency tag.
func NewMoneyCurrency(cents int64, currency string) Money {
	if currency == "" {
		currency = defaultCurrency
	}
	amount := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	return Money{
		Cents:    cents,
		Display:  amount.StringFixed(2),
		Currency: currency,
	}
}
