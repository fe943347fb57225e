package strategy

import (
	"math"

	"stratbench/types"

	"github.com/shopspring/decimal"
)

// sma returns the simple moving average of closes over the period ending at
// index end, inclusive. Caller guarantees end-period+1 >= 0.
func sma(bars []types.PriceBar, end, period int) decimal.Decimal {
	sum := decimal.Zero
	for i := end - period + 1; i <= end; i++ {
		sum = sum.Add(bars[i].Close)
	}
	return sum.Div(decimal.NewFromInt(int64(period)))
}

// stdDev returns the population standard deviation of closes over the
// period ending at index end, inclusive.
func stdDev(bars []types.PriceBar, end, period int, mean decimal.Decimal) decimal.Decimal {
	var varianceSum float64
	m := mean.InexactFloat64()
	for i := end - period + 1; i <= end; i++ {
		diff := bars[i].Close.InexactFloat64() - m
		varianceSum += diff * diff
	}
	return decimal.NewFromFloat(math.Sqrt(varianceSum / float64(period)))
}

// emaSeries computes an exponential moving average over values. Entries
// before index period-1 are zero; the first defined entry is seeded with the
// simple average of the first period values.
func emaSeries(values []decimal.Decimal, period int) []decimal.Decimal {
	if len(values) < period || period <= 0 {
		return nil
	}
	out := make([]decimal.Decimal, len(values))

	seed := decimal.Zero
	for i := 0; i < period; i++ {
		seed = seed.Add(values[i])
	}
	out[period-1] = seed.Div(decimal.NewFromInt(int64(period)))

	k := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(period + 1)))
	for i := period; i < len(values); i++ {
		out[i] = values[i].Sub(out[i-1]).Mul(k).Add(out[i-1])
	}
	return out
}

func closes(bars []types.PriceBar, end int) []decimal.Decimal {
	out := make([]decimal.Decimal, end+1)
	for i := 0; i <= end; i++ {
		out[i] = bars[i].Close
	}
	return out
}
