package marketdata

import (
	"hash/fnv"
	"math/rand"
	"time"

	"stratbench/types"

	"github.com/shopspring/decimal"
)

// Synthetic generates a deterministic pseudo-random walk for the given
// symbol and date range: one bar per weekday, slight upward bias. The seed
// comes from the symbol's hash, so the same symbol and range always
// reproduce the same series. Used when real price history is unavailable.
func Synthetic(symbol string, start, end time.Time) []types.PriceBar {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := 50.0 + rng.Float64()*150.0

	var bars []types.PriceBar
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		// Daily change: small upward drift plus noise.
		change := 0.0005 + (rng.Float64()-0.5)*0.04
		open := price
		close := open * (1 + change)
		high := max(open, close) * (1 + rng.Float64()*0.01)
		low := min(open, close) * (1 - rng.Float64()*0.01)
		volume := 100_000 + rng.Int63n(900_000)

		bars = append(bars, types.PriceBar{
			Date:   time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Open:   decimal.NewFromFloat(open).Round(4),
			High:   decimal.NewFromFloat(high).Round(4),
			Low:    decimal.NewFromFloat(low).Round(4),
			Close:  decimal.NewFromFloat(close).Round(4),
			Volume: decimal.NewFromInt(volume),
		})
		price = close
	}
	return bars
}
