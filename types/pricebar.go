package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar is a single daily OHLCV bar. Bars in a series are ordered by
// date, strictly increasing, no duplicates.
type PriceBar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}
