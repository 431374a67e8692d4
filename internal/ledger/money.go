package ledger

import "github.com/shopspring/decimal"

// All monetary values are rounded half-up to 2 decimal places.

var taxRate = decimal.New(8, -2) // 8%

// LineTotal computes quantity × unitPrice × (1 − discountPercent/100),
// rounded to 2 places.
func LineTotal(quantity int, unitPrice decimal.Decimal, discountPercent int) decimal.Decimal {
	factor := decimal.New(int64(100-discountPercent), -2)
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(factor).Round(2)
}

// TaxAmount computes the 8% sales tax on a subtotal.
func TaxAmount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(2)
}

// SaleTotals derives a sale's monetary fields from its item line totals.
// The total is a plain sum of already-rounded values, no further rounding.
func SaleTotals(lineTotals []decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	tax = TaxAmount(subtotal)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

// Price derives a selling price from cost and markup. Markup is always
// at least 1.0 so price never drops below cost.
func Price(cost decimal.Decimal, markup float64) decimal.Decimal {
	return cost.Mul(decimal.NewFromFloat(markup)).Round(2)
}
