package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTradeStatsRecord(t *testing.T) {
	tests := []struct {
		name              string
		profits           []string
		wantWins          int
		wantLosses        int
		wantTotalWin      string
		wantTotalLoss     string
		wantMaxWinStreak  int
		wantMaxLossStreak int
	}{
		{
			name:              "alternating",
			profits:           []string{"10", "-5", "20", "-3"},
			wantWins:          2,
			wantLosses:        2,
			wantTotalWin:      "30",
			wantTotalLoss:     "8",
			wantMaxWinStreak:  1,
			wantMaxLossStreak: 1,
		},
		{
			name:              "streaks",
			profits:           []string{"1", "2", "3", "-1", "-1", "5"},
			wantWins:          4,
			wantLosses:        2,
			wantTotalWin:      "11",
			wantTotalLoss:     "2",
			wantMaxWinStreak:  3,
			wantMaxLossStreak: 2,
		},
		{
			name:              "breakeven counts as loss",
			profits:           []string{"0", "0"},
			wantWins:          0,
			wantLosses:        2,
			wantTotalWin:      "0",
			wantTotalLoss:     "0",
			wantMaxWinStreak:  0,
			wantMaxLossStreak: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTradeStats()
			for _, p := range tt.profits {
				s.record(decimal.RequireFromString(p))
			}

			if s.tradeCount != len(tt.profits) {
				t.Errorf("tradeCount = %d, want %d", s.tradeCount, len(tt.profits))
			}
			if s.winningTrades != tt.wantWins {
				t.Errorf("winningTrades = %d, want %d", s.winningTrades, tt.wantWins)
			}
			if s.losingTrades != tt.wantLosses {
				t.Errorf("losingTrades = %d, want %d", s.losingTrades, tt.wantLosses)
			}
			if !s.totalWinAmount.Equal(decimal.RequireFromString(tt.wantTotalWin)) {
				t.Errorf("totalWinAmount = %s, want %s", s.totalWinAmount, tt.wantTotalWin)
			}
			if !s.totalLossAmount.Equal(decimal.RequireFromString(tt.wantTotalLoss)) {
				t.Errorf("totalLossAmount = %s, want %s", s.totalLossAmount, tt.wantTotalLoss)
			}
			if s.maxWinStreak != tt.wantMaxWinStreak {
				t.Errorf("maxWinStreak = %d, want %d", s.maxWinStreak, tt.wantMaxWinStreak)
			}
			if s.maxLossStreak != tt.wantMaxLossStreak {
				t.Errorf("maxLossStreak = %d, want %d", s.maxLossStreak, tt.wantMaxLossStreak)
			}
		})
	}
}
