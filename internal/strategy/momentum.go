package strategy

import (
	"stratbench/types"

	"github.com/shopspring/decimal"
)

// Momentum signals on the percent change over a lookback period: BUY when
// momentum exceeds the threshold, SELL when it falls below its negative.
type Momentum struct {
	period    int
	threshold decimal.Decimal
}

func NewMomentum(period int, threshold float64) (*Momentum, error) {
	if period <= 0 || threshold < 0 {
		return nil, ErrInvalidParams
	}
	return &Momentum{period: period, threshold: decimal.NewFromFloat(threshold)}, nil
}

func (s *Momentum) Name() string { return TypeMomentum }

func (s *Momentum) Parameters() map[string]types.ParamValue {
	return map[string]types.ParamValue{
		"period":    types.IntParam(s.period),
		"threshold": types.FloatParam(s.threshold.InexactFloat64()),
	}
}

func (s *Momentum) GenerateSignal(bars []types.PriceBar, index int) types.Signal {
	if index < s.period {
		return types.SignalHold
	}
	base := bars[index-s.period].Close
	if !base.IsPositive() {
		return types.SignalHold
	}
	momentum := bars[index].Close.Sub(base).Div(base).Mul(decimal.NewFromInt(100))

	switch {
	case momentum.GreaterThan(s.threshold):
		return types.SignalBuy
	case momentum.LessThan(s.threshold.Neg()):
		return types.SignalSell
	default:
		return types.SignalHold
	}
}
