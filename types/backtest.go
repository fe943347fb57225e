package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// BacktestRequest describes one simulation run. Commission, slippage,
// stop-loss and take-profit are expressed in percent (0.1 means 0.1%).
// A zero StopLossPercent or TakeProfitPercent disables the check.
type BacktestRequest struct {
	Symbol            string
	Strategy          string
	Params            ParameterCombination
	StartDate         time.Time
	EndDate           time.Time
	InitialCapital    decimal.Decimal
	PositionSizePct   decimal.Decimal
	CommissionPct     decimal.Decimal
	SlippagePct       decimal.Decimal
	StopLossPercent   decimal.Decimal
	TakeProfitPercent decimal.Decimal
}

// BacktestResult is the full output aggregate of one run: every scalar
// metric plus the trade ledger and the strategy identity. Built once at the
// end of a run; persistence is the caller's concern.
type BacktestResult struct {
	Symbol         string               `json:"symbol"`
	Strategy       string               `json:"strategy"`
	StrategyParams ParameterCombination `json:"strategyParams"`
	StartDate      time.Time            `json:"startDate"`
	EndDate        time.Time            `json:"endDate"`

	InitialCapital decimal.Decimal `json:"initialCapital"`
	FinalCapital   decimal.Decimal `json:"finalCapital"`
	TotalReturn    decimal.Decimal `json:"totalReturn"`
	CAGR           decimal.Decimal `json:"cagr"`
	MaxDrawdown    decimal.Decimal `json:"maxDrawdown"`
	SharpeRatio    decimal.Decimal `json:"sharpeRatio"`
	SortinoRatio   decimal.Decimal `json:"sortinoRatio"`
	CalmarRatio    decimal.Decimal `json:"calmarRatio"`
	ProfitFactor   decimal.Decimal `json:"profitFactor"`
	WinRate        decimal.Decimal `json:"winRate"`
	AvgWin         decimal.Decimal `json:"avgWin"`
	AvgLoss        decimal.Decimal `json:"avgLoss"`
	AvgHoldingDays decimal.Decimal `json:"avgHoldingDays"`

	TotalTrades   int `json:"totalTrades"`
	WinningTrades int `json:"winningTrades"`
	LosingTrades  int `json:"losingTrades"`
	MaxWinStreak  int `json:"maxWinStreak"`
	MaxLossStreak int `json:"maxLossStreak"`

	Trades        []Trade   `json:"trades"`
	SyntheticData bool      `json:"syntheticData"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OptimizationResult pairs the winning combination with its re-run result.
type OptimizationResult struct {
	Best                  *BacktestResult      `json:"best"`
	BestCombination       ParameterCombination `json:"bestCombination"`
	BestScore             decimal.Decimal      `json:"bestScore"`
	TargetMetric          string               `json:"targetMetric"`
	TotalCombinations     int                  `json:"totalCombinations"`
	EvaluatedCombinations int                  `json:"evaluatedCombinations"`
	Elapsed               time.Duration        `json:"elapsed"`
}
