package catalog

import "github.com/shopspring/decimal"

// EffectivePrice returns the price a customer pays for a service: the
// promo price when one is set and strictly lower than the list price,
// otherwise the list price. The boolean reports whether the promo was
// applied. This is the single source of truth for the promo rule; the
// order snapshot reuses it.
func EffectivePrice(price decimal.Decimal, promo *decimal.Decimal) (decimal.Decimal, bool) {
	if promo != nil && promo.LessThan(price) {
		return *promo, true
	}
	return price, false
}

// ApplyFee adds a processing-fee percentage to a price and rounds to
// two decimal places. A zero fee returns the price unchanged.
func ApplyFee(price decimal.Decimal, feePercent decimal.Decimal) decimal.Decimal {
	if feePercent.IsZero() {
		return price
	}
	factor := decimal.NewFromInt(1).Add(feePercent.Div(decimal.NewFromInt(100)))
	return price.Mul(factor).Round(2)
}
