package engine

import "github.com/shopspring/decimal"

// tradeStats accumulates win/loss counters and streaks as trades close, in
// trade order. One instance per run.
type tradeStats struct {
	tradeCount      int
	winningTrades   int
	losingTrades    int
	totalWinAmount  decimal.Decimal
	totalLossAmount decimal.Decimal

	currentWinStreak  int
	currentLossStreak int
	maxWinStreak      int
	maxLossStreak     int
}

func newTradeStats() *tradeStats {
	return &tradeStats{
		totalWinAmount:  decimal.Zero,
		totalLossAmount: decimal.Zero,
	}
}

// record updates the counters for one closed trade. A trade is a win only
// when profit is strictly positive; breakeven counts as a loss.
func (s *tradeStats) record(profit decimal.Decimal) {
	s.tradeCount++
	if profit.IsPositive() {
		s.winningTrades++
		s.totalWinAmount = s.totalWinAmount.Add(profit)
		s.currentWinStreak++
		s.currentLossStreak = 0
		if s.currentWinStreak > s.maxWinStreak {
			s.maxWinStreak = s.currentWinStreak
		}
		return
	}
	s.losingTrades++
	s.totalLossAmount = s.totalLossAmount.Add(profit.Abs())
	s.currentLossStreak++
	s.currentWinStreak = 0
	if s.currentLossStreak > s.maxLossStreak {
		s.maxLossStreak = s.currentLossStreak
	}
}
