// Package pricing derives display prices from a base price and a
// percentage discount using decimal arithmetic, so the rendered value
// is exact to two places rather than a float formatting artifact.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Display returns the discounted price formatted to exactly two
// decimal places, e.g. Display(100, 25) == "75.00". Discounts outside
// [0,100] are clamped so the result is never negative and never above
// the base price.
func Display(price, discount float64) string {
	return displayed(price, discount).StringFixed(2)
}

// DisplayUSD is Display with the storefront's currency prefix.
func DisplayUSD(price, discount float64) string {
	return "$" + Display(price, discount)
}

// OriginalUSD formats the undiscounted price for the strikethrough
// label, without forcing decimal places ("$100", "$19.99").
func OriginalUSD(price float64) string {
	return "$" + decimal.NewFromFloat(price).String()
}

func displayed(price, discount float64) decimal.Decimal {
	p := decimal.NewFromFloat(price)
	d := decimal.NewFromFloat(discount)
	if d.IsNegative() {
		d = decimal.Zero
	}
	if d.GreaterThan(hundred) {
		d = hundred
	}
	return p.Sub(p.Mul(d).Div(hundred)).Round(2)
}
