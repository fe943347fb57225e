package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stratbench/internal/marketdata"
	"stratbench/types"
)

// scriptStrategy plays back a fixed signal per bar index. Anything not
// scripted is HOLD.
type scriptStrategy struct {
	signals map[int]types.Signal
}

func (s *scriptStrategy) GenerateSignal(_ []types.PriceBar, index int) types.Signal {
	if sig, ok := s.signals[index]; ok {
		return sig
	}
	return types.SignalHold
}

func (s *scriptStrategy) Name() string { return "script" }

func (s *scriptStrategy) Parameters() map[string]types.ParamValue { return nil }

func barsFromCloses(closes ...string) []types.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, len(closes))
	for i, c := range closes {
		price := decimal.RequireFromString(c)
		bars[i] = types.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: decimal.NewFromInt(1000),
		}
	}
	return bars
}

func costFreeConfig(initialCapital int64) runConfig {
	return runConfig{
		symbol:         "TEST",
		initialCapital: decimal.NewFromInt(initialCapital),
		positionSize:   hundred,
		commissionRate: decimal.Zero,
		slippage:       decimal.Zero,
		stopLoss:       decimal.Zero,
		takeProfit:     decimal.Zero,
	}
}

func TestRunBacktestRoundTrip(t *testing.T) {
	bars := barsFromCloses("5", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	strat := &scriptStrategy{signals: map[int]types.Signal{
		1: types.SignalBuy,  // close 2
		7: types.SignalSell, // close 8
	}}

	out := runBacktest(bars, strat, costFreeConfig(1000))

	if len(out.trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(out.trades))
	}
	trade := out.trades[0]

	if !trade.Quantity.Equal(decimal.NewFromInt(500)) {
		t.Errorf("quantity = %s, want 500", trade.Quantity)
	}
	if !trade.Profit.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("profit = %s, want 3000", trade.Profit)
	}
	if !trade.ProfitPercent.Equal(decimal.NewFromInt(300)) {
		t.Errorf("profitPercent = %s, want 300", trade.ProfitPercent)
	}
	if trade.HoldingDays != 6 {
		t.Errorf("holdingDays = %d, want 6", trade.HoldingDays)
	}
	if trade.EntrySignal != "BUY" || trade.ExitSignal != "SELL" {
		t.Errorf("signals = %s/%s, want BUY/SELL", trade.EntrySignal, trade.ExitSignal)
	}
	if !out.finalCapital.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("finalCapital = %s, want 4000", out.finalCapital)
	}
}

func TestRunBacktestStopLossOverridesHold(t *testing.T) {
	bars := barsFromCloses("100", "96", "94", "93")
	strat := &scriptStrategy{signals: map[int]types.Signal{0: types.SignalBuy}}

	cfg := costFreeConfig(1000)
	cfg.stopLoss = decimal.NewFromInt(5)

	out := runBacktest(bars, strat, cfg)

	if len(out.trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(out.trades))
	}
	trade := out.trades[0]
	if trade.ExitSignal != exitSignalStopLoss {
		t.Errorf("exitSignal = %s, want %s", trade.ExitSignal, exitSignalStopLoss)
	}
	// -4% at bar 1 does not trip a 5% stop; -6% at bar 2 does.
	if !trade.ExitDate.Equal(bars[2].Date) {
		t.Errorf("exitDate = %s, want %s", trade.ExitDate, bars[2].Date)
	}
}

func TestRunBacktestTakeProfitOverridesHold(t *testing.T) {
	bars := barsFromCloses("100", "105", "111", "120")
	strat := &scriptStrategy{signals: map[int]types.Signal{0: types.SignalBuy}}

	cfg := costFreeConfig(1000)
	cfg.takeProfit = decimal.NewFromInt(10)

	out := runBacktest(bars, strat, cfg)

	if len(out.trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(out.trades))
	}
	trade := out.trades[0]
	if trade.ExitSignal != exitSignalTakeProfit {
		t.Errorf("exitSignal = %s, want %s", trade.ExitSignal, exitSignalTakeProfit)
	}
	if !trade.ExitDate.Equal(bars[2].Date) {
		t.Errorf("exitDate = %s, want %s", trade.ExitDate, bars[2].Date)
	}
}

func TestRunBacktestStrategySellKeepsPlainLabel(t *testing.T) {
	bars := barsFromCloses("100", "93")
	strat := &scriptStrategy{signals: map[int]types.Signal{
		0: types.SignalBuy,
		1: types.SignalSell,
	}}

	cfg := costFreeConfig(1000)
	cfg.stopLoss = decimal.NewFromInt(5)

	out := runBacktest(bars, strat, cfg)

	if len(out.trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(out.trades))
	}
	if got := out.trades[0].ExitSignal; got != exitSignalSell {
		t.Errorf("exitSignal = %s, want %s", got, exitSignalSell)
	}
}

func TestRunBacktestLiquidationRecordsNoTrade(t *testing.T) {
	bars := barsFromCloses("10", "20")
	strat := &scriptStrategy{signals: map[int]types.Signal{0: types.SignalBuy}}

	out := runBacktest(bars, strat, costFreeConfig(1000))

	if len(out.trades) != 0 {
		t.Fatalf("trades = %d, want 0", len(out.trades))
	}
	if out.stats.tradeCount != 0 {
		t.Errorf("tradeCount = %d, want 0", out.stats.tradeCount)
	}
	if !out.finalCapital.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("finalCapital = %s, want 2000", out.finalCapital)
	}
}

func TestRunBacktestIgnoresRedundantSignals(t *testing.T) {
	bars := barsFromCloses("10", "10", "10", "10")
	strat := &scriptStrategy{signals: map[int]types.Signal{
		0: types.SignalBuy,
		1: types.SignalBuy,  // already long, ignored
		2: types.SignalSell,
		3: types.SignalSell, // already flat, ignored
	}}

	out := runBacktest(bars, strat, costFreeConfig(1000))

	if len(out.trades) != 1 {
		t.Errorf("trades = %d, want 1", len(out.trades))
	}
	if !out.finalCapital.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("finalCapital = %s, want 1000", out.finalCapital)
	}
}

func TestRunBacktestDegenerateSeries(t *testing.T) {
	strat := &scriptStrategy{signals: map[int]types.Signal{0: types.SignalBuy}}

	for _, bars := range [][]types.PriceBar{nil, barsFromCloses("10")} {
		out := runBacktest(bars, strat, costFreeConfig(1000))
		if len(out.trades) != 0 {
			t.Errorf("trades with %d bars = %d, want 0", len(bars), len(out.trades))
		}
	}

	// A single-bar series still liquidates the entry it allowed.
	out := runBacktest(barsFromCloses("10"), strat, costFreeConfig(1000))
	if !out.finalCapital.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("finalCapital = %s, want 1000", out.finalCapital)
	}
}

func TestRunBacktestCommissionReducesQuantity(t *testing.T) {
	bars := barsFromCloses("10", "10")
	strat := &scriptStrategy{signals: map[int]types.Signal{
		0: types.SignalBuy,
		1: types.SignalSell,
	}}

	cfg := costFreeConfig(1000)
	cfg.commissionRate = decimal.RequireFromString("0.001")

	out := runBacktest(bars, strat, cfg)

	if len(out.trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(out.trades))
	}
	// 1 paid on entry out of 1000, 999 buys 99.9 shares at 10; the exit
	// pays commission on the gross again, so the round trip loses money.
	if !out.trades[0].Quantity.Equal(decimal.RequireFromString("99.9")) {
		t.Errorf("quantity = %s, want 99.9", out.trades[0].Quantity)
	}
	if !out.trades[0].Profit.IsNegative() {
		t.Errorf("profit = %s, want negative", out.trades[0].Profit)
	}
}

func TestRunBarsDeterministic(t *testing.T) {
	e := New(nil, nil, nil)
	bars := marketdata.Synthetic("AAPL",
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC))

	req := types.BacktestRequest{
		Symbol:          "AAPL",
		StartDate:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
		InitialCapital:  decimal.NewFromInt(10000),
		PositionSizePct: hundred,
	}
	strat := &scriptStrategy{signals: map[int]types.Signal{
		3: types.SignalBuy, 40: types.SignalSell,
		50: types.SignalBuy, 90: types.SignalSell,
	}}

	first := e.RunBars(bars, req, strat)
	second := e.RunBars(bars, req, strat)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different results")
	}
	if first.TotalTrades != 2 {
		t.Errorf("totalTrades = %d, want 2", first.TotalTrades)
	}
}
