package strategy

import (
	"stratbench/types"
)

// SMACross signals on crossovers between a fast and a slow simple moving
// average: BUY when the fast average crosses above the slow one, SELL when
// it crosses below.
type SMACross struct {
	fast int
	slow int
}

func NewSMACross(fast, slow int) (*SMACross, error) {
	if fast <= 0 || slow <= 0 || fast >= slow {
		return nil, ErrInvalidParams
	}
	return &SMACross{fast: fast, slow: slow}, nil
}

func (s *SMACross) Name() string { return TypeSMACross }

func (s *SMACross) Parameters() map[string]types.ParamValue {
	return map[string]types.ParamValue{
		"fast_period": types.IntParam(s.fast),
		"slow_period": types.IntParam(s.slow),
	}
}

func (s *SMACross) GenerateSignal(bars []types.PriceBar, index int) types.Signal {
	// Need a full slow window at index-1 to detect a cross.
	if index < s.slow {
		return types.SignalHold
	}

	fastNow := sma(bars, index, s.fast)
	slowNow := sma(bars, index, s.slow)
	fastPrev := sma(bars, index-1, s.fast)
	slowPrev := sma(bars, index-1, s.slow)

	switch {
	case fastPrev.LessThanOrEqual(slowPrev) && fastNow.GreaterThan(slowNow):
		return types.SignalBuy
	case fastPrev.GreaterThanOrEqual(slowPrev) && fastNow.LessThan(slowNow):
		return types.SignalSell
	default:
		return types.SignalHold
	}
}
