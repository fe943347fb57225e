package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is the immutable record of one completed round trip. It is created
// at the moment a SELL executes and is never mutated afterwards.
type Trade struct {
	TradeNumber           int             `json:"tradeNumber"`
	Symbol                string          `json:"symbol"`
	EntryDate             time.Time       `json:"entryDate"`
	ExitDate              time.Time       `json:"exitDate"`
	EntryPrice            decimal.Decimal `json:"entryPrice"`
	ExitPrice             decimal.Decimal `json:"exitPrice"`
	Quantity              decimal.Decimal `json:"quantity"`
	Profit                decimal.Decimal `json:"profit"`
	ProfitPercent         decimal.Decimal `json:"profitPercent"`
	EntrySignal           string          `json:"entrySignal"`
	ExitSignal            string          `json:"exitSignal"`
	HoldingDays           int             `json:"holdingDays"`
	PortfolioValueAtEntry decimal.Decimal `json:"portfolioValueAtEntry"`
	PortfolioValueAtExit  decimal.Decimal `json:"portfolioValueAtExit"`
}
