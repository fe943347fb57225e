package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stratbench/internal/marketdata"
	"stratbench/types"
)

// PriceSource delivers ordered daily bars for one symbol. It may fail or
// return nothing; the engine then falls back to synthetic data.
type PriceSource interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error)
}

// ResultSink persists a finished result. Serialization and caching of
// derived chart series are the sink's concern, not the engine's.
type ResultSink interface {
	SaveResult(ctx context.Context, res *types.BacktestResult) error
}

// Engine runs one backtest end to end: load the series once, execute the
// bar loop, summarize the ledger into metrics.
type Engine struct {
	prices PriceSource
	sink   ResultSink
	logger *slog.Logger
}

func New(prices PriceSource, sink ResultSink, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{prices: prices, sink: sink, logger: logger}
}

// Run executes the full path: fetch, simulate, assemble, persist. Missing or
// empty price history is recovered locally with the synthetic generator and
// logged, never surfaced as a failure.
func (e *Engine) Run(ctx context.Context, req types.BacktestRequest, strat Strategy) (*types.BacktestResult, error) {
	bars, synthetic := e.LoadBars(ctx, req.Symbol, req.StartDate, req.EndDate)

	res := e.RunBars(bars, req, strat)
	res.SyntheticData = synthetic
	res.CreatedAt = time.Now().UTC()

	if e.sink != nil {
		if err := e.sink.SaveResult(ctx, res); err != nil {
			return nil, fmt.Errorf("save result: %w", err)
		}
	}
	return res, nil
}

// LoadBars fetches the price series, falling back to the deterministic
// synthetic generator when the source errors or has nothing. The second
// return reports whether the data is synthetic.
func (e *Engine) LoadBars(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, bool) {
	if e.prices != nil {
		bars, err := e.prices.Fetch(ctx, symbol, start, end)
		if err != nil {
			e.logger.Warn("price fetch failed, using synthetic data", "symbol", symbol, "error", err)
		} else if len(bars) > 0 {
			return bars, false
		} else {
			e.logger.Warn("no price history, using synthetic data", "symbol", symbol)
		}
	}
	return marketdata.Synthetic(symbol, start, end), true
}

// RunBars simulates over an already-loaded series and assembles the result.
// Pure computation: no I/O, no persistence, deterministic for equal inputs.
func (e *Engine) RunBars(bars []types.PriceBar, req types.BacktestRequest, strat Strategy) *types.BacktestResult {
	outcome := runBacktest(bars, strat, newRunConfig(req))

	days := int(req.EndDate.Sub(req.StartDate).Hours() / 24)
	totalReturn := calcTotalReturn(req.InitialCapital, outcome.finalCapital)
	cagr := calcCAGR(req.InitialCapital, outcome.finalCapital, days)

	return &types.BacktestResult{
		Symbol:         req.Symbol,
		Strategy:       strat.Name(),
		StrategyParams: strat.Parameters(),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,

		InitialCapital: req.InitialCapital,
		FinalCapital:   outcome.finalCapital,
		TotalReturn:    totalReturn,
		CAGR:           cagr,
		MaxDrawdown:    outcome.maxDrawdown,
		SharpeRatio:    calcSharpeRatio(outcome.trades, totalReturn, days),
		SortinoRatio:   calcSortinoRatio(outcome.trades, totalReturn, days),
		CalmarRatio:    calcCalmarRatio(cagr, outcome.maxDrawdown),
		ProfitFactor:   calcProfitFactor(outcome.stats),
		WinRate:        calcWinRate(outcome.stats),
		AvgWin:         calcAvgWin(outcome.stats),
		AvgLoss:        calcAvgLoss(outcome.stats),
		AvgHoldingDays: calcAvgHoldingDays(outcome.trades),

		TotalTrades:   outcome.stats.tradeCount,
		WinningTrades: outcome.stats.winningTrades,
		LosingTrades:  outcome.stats.losingTrades,
		MaxWinStreak:  outcome.stats.maxWinStreak,
		MaxLossStreak: outcome.stats.maxLossStreak,

		Trades: outcome.trades,
	}
}
