package cart

import (
	"github.com/shopspring/decimal"
)

// TaxRate is applied to the subtotal of every cart.
var TaxRate = decimal.New(10, -2)

// Totals are the money values derived from a set of lines. They are kept at
// full precision; use Money to render them.
type Totals struct {
	Subtotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}

// Total is unit price × quantity for one line.
func (l Line) Total() decimal.Decimal {
	return l.Item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Summarize prices an arbitrary line set. The cart and the order notifier both
// call it so they can never disagree on a total.
func Summarize(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	taxes := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: subtotal,
		Taxes:    taxes,
		Total:    subtotal.Add(taxes),
	}
}

// Subtotal is Σ unit price × quantity.
func (s *Store) Subtotal() decimal.Decimal { return s.Totals().Subtotal }

// Taxes is the subtotal times TaxRate.
func (s *Store) Taxes() decimal.Decimal { return s.Totals().Taxes }

// Total is subtotal plus taxes.
func (s *Store) Total() decimal.Decimal { return s.Totals().Total }

// Money formats an amount with two decimals, the only place rounding happens.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
