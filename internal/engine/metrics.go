package engine

import (
	"math"

	"stratbench/types"

	"github.com/shopspring/decimal"
)

// ratioPrecision is the fractional-digit count every ratio is rounded to
// (half up), so repeated runs over identical inputs are bit-for-bit equal.
const ratioPrecision = 6

// annualRiskFreeRate is the risk-free rate used by Sharpe and Sortino, in
// percent per year.
var annualRiskFreeRate = decimal.NewFromInt(3)

// maxRatio is the bounded stand-in for an infinite ratio (zero losing
// trades, zero downside deviation). Results are serialized downstream, so a
// finite named constant beats modeling true infinity.
var maxRatio = decimal.RequireFromString("999.99")

const tradingDaysPerYear = 252

// calcTotalReturn returns the percent return of final over initial capital.
func calcTotalReturn(initial, final decimal.Decimal) decimal.Decimal {
	if !initial.IsPositive() {
		return decimal.Zero
	}
	return final.Sub(initial).Div(initial).Mul(hundred).Round(ratioPrecision)
}

// calcCAGR annualizes the capital growth over the run's day span. Zero when
// the span or the inputs are degenerate.
func calcCAGR(initial, final decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || !initial.IsPositive() {
		return decimal.Zero
	}
	ratio := final.Div(initial)
	if !ratio.IsPositive() {
		return decimal.Zero
	}
	cagr := math.Pow(ratio.InexactFloat64(), 365.0/float64(days)) - 1.0
	return decimal.NewFromFloat(cagr * 100).Round(ratioPrecision)
}

func calcWinRate(s *tradeStats) decimal.Decimal {
	if s.tradeCount == 0 {
		return decimal.Zero
	}
	wins := decimal.NewFromInt(int64(s.winningTrades))
	total := decimal.NewFromInt(int64(s.tradeCount))
	return wins.Div(total).Mul(hundred).Round(ratioPrecision)
}

func calcAvgWin(s *tradeStats) decimal.Decimal {
	if s.winningTrades == 0 {
		return decimal.Zero
	}
	return s.totalWinAmount.Div(decimal.NewFromInt(int64(s.winningTrades))).Round(ratioPrecision)
}

func calcAvgLoss(s *tradeStats) decimal.Decimal {
	if s.losingTrades == 0 {
		return decimal.Zero
	}
	return s.totalLossAmount.Div(decimal.NewFromInt(int64(s.losingTrades))).Round(ratioPrecision)
}

// calcProfitFactor divides gross wins by gross losses. A run with no losing
// amount returns the bounded sentinel rather than dividing by zero.
func calcProfitFactor(s *tradeStats) decimal.Decimal {
	if s.tradeCount == 0 {
		return decimal.Zero
	}
	if s.totalLossAmount.IsZero() {
		return maxRatio
	}
	return s.totalWinAmount.Div(s.totalLossAmount).Round(ratioPrecision)
}

func calcAvgHoldingDays(trades []types.Trade) decimal.Decimal {
	if len(trades) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, t := range trades {
		sum = sum.Add(decimal.NewFromInt(int64(t.HoldingDays)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(trades)))).Round(ratioPrecision)
}

// calcSharpeRatio annualizes the run's total return by 365/days and the
// per-trade return volatility by sqrt(252/tradeCount). Zero volatility or an
// empty ledger yields 0.
func calcSharpeRatio(trades []types.Trade, totalReturn decimal.Decimal, days int) decimal.Decimal {
	if len(trades) == 0 || days <= 0 {
		return decimal.Zero
	}
	sigma := tradeReturnStdDev(trades)
	if sigma == 0 {
		return decimal.Zero
	}
	n := float64(len(trades))
	annualReturn := totalReturn.Mul(decimal.NewFromInt(365)).Div(decimal.NewFromInt(int64(days)))
	annualSigma := sigma * math.Sqrt(tradingDaysPerYear/n)

	sharpe := (annualReturn.Sub(annualRiskFreeRate).InexactFloat64()) / annualSigma
	return decimal.NewFromFloat(sharpe).Round(ratioPrecision)
}

// calcSortinoRatio is Sharpe with volatility replaced by downside deviation:
// squared negative trade returns averaged over all trades, square-rooted.
// Zero downside deviation returns the sentinel, never a division by zero.
func calcSortinoRatio(trades []types.Trade, totalReturn decimal.Decimal, days int) decimal.Decimal {
	if len(trades) == 0 || days <= 0 {
		return decimal.Zero
	}
	var downSquares float64
	for _, t := range trades {
		p := t.ProfitPercent.InexactFloat64()
		if p < 0 {
			downSquares += p * p
		}
	}
	n := float64(len(trades))
	downside := math.Sqrt(downSquares / n)
	if downside == 0 {
		return maxRatio
	}
	annualReturn := totalReturn.Mul(decimal.NewFromInt(365)).Div(decimal.NewFromInt(int64(days)))
	annualDownside := downside * math.Sqrt(tradingDaysPerYear/n)

	sortino := (annualReturn.Sub(annualRiskFreeRate).InexactFloat64()) / annualDownside
	return decimal.NewFromFloat(sortino).Round(ratioPrecision)
}

// calcCalmarRatio divides CAGR by the absolute max drawdown. Computed at
// result-assembly time, not stored on any accumulator.
func calcCalmarRatio(cagr, maxDrawdown decimal.Decimal) decimal.Decimal {
	if maxDrawdown.IsZero() {
		return decimal.Zero
	}
	return cagr.Div(maxDrawdown.Abs()).Round(ratioPrecision)
}

// tradeReturnStdDev is the population standard deviation of the per-trade
// profit percents.
func tradeReturnStdDev(trades []types.Trade) float64 {
	n := float64(len(trades))
	var sum float64
	for _, t := range trades {
		sum += t.ProfitPercent.InexactFloat64()
	}
	mean := sum / n

	var varianceSum float64
	for _, t := range trades {
		diff := t.ProfitPercent.InexactFloat64() - mean
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / n)
}
