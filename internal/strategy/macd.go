package strategy

import (
	"stratbench/types"

	"github.com/shopspring/decimal"
)

// MACD signals on crossovers between the MACD line (fast EMA minus slow
// EMA) and its signal line (EMA of the MACD line).
type MACD struct {
	fast   int
	slow   int
	signal int
}

func NewMACD(fast, slow, signal int) (*MACD, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return nil, ErrInvalidParams
	}
	return &MACD{fast: fast, slow: slow, signal: signal}, nil
}

func (s *MACD) Name() string { return TypeMACD }

func (s *MACD) Parameters() map[string]types.ParamValue {
	return map[string]types.ParamValue{
		"fast_period":   types.IntParam(s.fast),
		"slow_period":   types.IntParam(s.slow),
		"signal_period": types.IntParam(s.signal),
	}
}

func (s *MACD) GenerateSignal(bars []types.PriceBar, index int) types.Signal {
	// The MACD line needs a slow window, the signal line a further signal
	// window, and detecting a cross needs one more bar on top.
	if index < s.slow+s.signal {
		return types.SignalHold
	}

	values := closes(bars, index)
	fastEMA := emaSeries(values, s.fast)
	slowEMA := emaSeries(values, s.slow)

	macdLine := make([]decimal.Decimal, 0, len(values)-s.slow+1)
	for i := s.slow - 1; i < len(values); i++ {
		macdLine = append(macdLine, fastEMA[i].Sub(slowEMA[i]))
	}
	signalLine := emaSeries(macdLine, s.signal)
	if signalLine == nil {
		return types.SignalHold
	}

	last := len(macdLine) - 1
	if last < s.signal {
		return types.SignalHold
	}
	macdNow, macdPrev := macdLine[last], macdLine[last-1]
	sigNow, sigPrev := signalLine[last], signalLine[last-1]

	switch {
	case macdPrev.LessThanOrEqual(sigPrev) && macdNow.GreaterThan(sigNow):
		return types.SignalBuy
	case macdPrev.GreaterThanOrEqual(sigPrev) && macdNow.LessThan(sigNow):
		return types.SignalSell
	default:
		return types.SignalHold
	}
}
