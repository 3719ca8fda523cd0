package dashboard

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sig-0/vesdash/quote"
)

var errInvalidQuote = errors.New("quotation has no usable price")

// Conversion is one calculator result for a single quotation
type Conversion struct {
	Quote  quote.Quotation `json:"quote"`
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
}

// ToVES converts an amount of the quotation's base currency into
// the quote currency, at the sell price (what the holder pays
// to acquire bolívares)
func ToVES(q quote.Quotation, amount decimal.Decimal) (*Conversion, error) {
	rate := decimal.NewFromFloat(q.Sell)
	if !rate.IsPositive() {
		return nil, errInvalidQuote
	}

	return &Conversion{
		Quote:  q,
		Amount: amount,
		Result: amount.Mul(rate).Round(4),
	}, nil
}

// FromVES converts a bolívar amount into the quotation's base
// currency, at the buy price
func FromVES(q quote.Quotation, amount decimal.Decimal) (*Conversion, error) {
	rate := decimal.NewFromFloat(q.Buy)
	if !rate.IsPositive() {
		return nil, errInvalidQuote
	}

	return &Conversion{
		Quote:  q,
		Amount: amount,
		Result: amount.DivRound(rate, 8),
	}, nil
}
