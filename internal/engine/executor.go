package engine

import (
	"stratbench/types"

	"github.com/shopspring/decimal"
)

// Exit labels recorded on the Trade when a protective check overrides the
// strategy's own signal.
const (
	exitSignalSell       = "SELL"
	exitSignalStopLoss   = "STOP_LOSS"
	exitSignalTakeProfit = "TAKE_PROFIT"
)

// Strategy maps a price history and a bar index to a trading signal. A
// strategy is a pure function of the series and its own constants: it holds
// no simulation state and one instance may be read concurrently.
type Strategy interface {
	GenerateSignal(bars []types.PriceBar, index int) types.Signal
	Name() string
	Parameters() map[string]types.ParamValue
}

// runConfig carries the per-run execution knobs with percent inputs already
// converted to fractions (commission, slippage) where the math needs them.
type runConfig struct {
	symbol         string
	initialCapital decimal.Decimal
	positionSize   decimal.Decimal // percent of current capital per entry
	commissionRate decimal.Decimal // fraction, 0.001 = 0.1%
	slippage       decimal.Decimal // fraction
	stopLoss       decimal.Decimal // percent, zero disables
	takeProfit     decimal.Decimal // percent, zero disables
}

func newRunConfig(req types.BacktestRequest) runConfig {
	return runConfig{
		symbol:         req.Symbol,
		initialCapital: req.InitialCapital,
		positionSize:   req.PositionSizePct,
		commissionRate: req.CommissionPct.Div(hundred),
		slippage:       req.SlippagePct.Div(hundred),
		stopLoss:       req.StopLossPercent,
		takeProfit:     req.TakeProfitPercent,
	}
}

// runOutcome is the raw output of one executor pass, before metrics.
type runOutcome struct {
	trades       []types.Trade
	finalCapital decimal.Decimal
	maxDrawdown  decimal.Decimal
	stats        *tradeStats
}

// runBacktest walks the price series bar by bar, strictly in order: later
// bars depend on the position and streak state left by earlier ones. An
// empty or single-bar series simply produces zero trades.
func runBacktest(bars []types.PriceBar, strat Strategy, cfg runConfig) runOutcome {
	pos := newPosition(cfg.initialCapital)
	stats := newTradeStats()
	dd := newDrawdownTracker()

	var trades []types.Trade
	var valueAtEntry decimal.Decimal

	for i := range bars {
		bar := bars[i]
		dd.observe(pos.value(bar.Close))

		sig := strat.GenerateSignal(bars, i)
		exitSignal := exitSignalSell

		// Stop-loss and take-profit only apply while a position is held,
		// and both override the strategy's HOLD or BUY.
		if pos.isOpen() {
			ret := pos.currentReturn(bar.Close)
			switch {
			case sig == types.SignalSell:
				// Strategy exit wins; keep the plain label.
			case cfg.stopLoss.IsPositive() && ret.LessThanOrEqual(cfg.stopLoss.Neg()):
				sig = types.SignalSell
				exitSignal = exitSignalStopLoss
			case cfg.takeProfit.IsPositive() && ret.GreaterThanOrEqual(cfg.takeProfit):
				sig = types.SignalSell
				exitSignal = exitSignalTakeProfit
			}
		}

		switch {
		case sig == types.SignalBuy && !pos.isOpen():
			investAmount := pos.capital.Mul(cfg.positionSize).Div(hundred)
			if !investAmount.IsPositive() {
				continue
			}
			pos.open(bar.Close, investAmount, cfg.slippage, cfg.commissionRate, bar.Date, string(types.SignalBuy))
			valueAtEntry = pos.value(bar.Close)

		case sig == types.SignalSell && pos.isOpen():
			entryPrice := pos.entryPrice
			entryDate := pos.entryDate
			entrySignal := pos.entrySignal
			quantity := pos.quantity

			netAmount := pos.close(bar.Close, cfg.slippage, cfg.commissionRate)

			investedAmount := quantity.Mul(entryPrice)
			profit := netAmount.Sub(investedAmount)
			profitPercent := decimal.Zero
			if investedAmount.IsPositive() {
				profitPercent = profit.Div(investedAmount).Mul(hundred).Round(ratioPrecision)
			}

			stats.record(profit)
			trades = append(trades, types.Trade{
				TradeNumber:           stats.tradeCount,
				Symbol:                cfg.symbol,
				EntryDate:             entryDate,
				ExitDate:              bar.Date,
				EntryPrice:            entryPrice,
				ExitPrice:             bar.Close.Mul(one.Sub(cfg.slippage)),
				Quantity:              quantity,
				Profit:                profit,
				ProfitPercent:         profitPercent,
				EntrySignal:           entrySignal,
				ExitSignal:            exitSignal,
				HoldingDays:           int(bar.Date.Sub(entryDate).Hours() / 24),
				PortfolioValueAtEntry: valueAtEntry,
				PortfolioValueAtExit:  pos.value(bar.Close),
			})
		}
	}

	// A position still open after the last bar is folded back into capital
	// at the final close, cost-free, and records no Trade. Final capital may
	// therefore differ from the sum of recorded trade profits.
	if pos.isOpen() && len(bars) > 0 {
		pos.liquidate(bars[len(bars)-1].Close)
	}

	return runOutcome{
		trades:       trades,
		finalCapital: pos.capital,
		maxDrawdown:  dd.maxDrawdown,
		stats:        stats,
	}
}
