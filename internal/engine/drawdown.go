package engine

import "github.com/shopspring/decimal"

// drawdownTracker keeps the running equity peak and the deepest percentage
// decline from it. maxDrawdown only ever grows.
type drawdownTracker struct {
	peakEquity  decimal.Decimal
	maxDrawdown decimal.Decimal
}

func newDrawdownTracker() *drawdownTracker {
	return &drawdownTracker{
		peakEquity:  decimal.Zero,
		maxDrawdown: decimal.Zero,
	}
}

// observe feeds one equity value, once per bar.
func (d *drawdownTracker) observe(equity decimal.Decimal) {
	if equity.GreaterThan(d.peakEquity) {
		d.peakEquity = equity
	}
	if !d.peakEquity.IsPositive() {
		return
	}
	dd := d.peakEquity.Sub(equity).Div(d.peakEquity).Mul(hundred).Round(ratioPrecision)
	if dd.GreaterThan(d.maxDrawdown) {
		d.maxDrawdown = dd
	}
}
