package strategy

import (
	"stratbench/types"

	"github.com/shopspring/decimal"
)

// Bollinger signals on band breakouts: BUY when the close falls below the
// lower band, SELL when it rises above the upper band.
type Bollinger struct {
	period int
	mult   decimal.Decimal
}

func NewBollinger(period int, stdDevMult float64) (*Bollinger, error) {
	if period <= 1 || stdDevMult <= 0 {
		return nil, ErrInvalidParams
	}
	return &Bollinger{period: period, mult: decimal.NewFromFloat(stdDevMult)}, nil
}

func (s *Bollinger) Name() string { return TypeBollinger }

func (s *Bollinger) Parameters() map[string]types.ParamValue {
	return map[string]types.ParamValue{
		"period":  types.IntParam(s.period),
		"std_dev": types.FloatParam(s.mult.InexactFloat64()),
	}
}

func (s *Bollinger) GenerateSignal(bars []types.PriceBar, index int) types.Signal {
	if index < s.period-1 {
		return types.SignalHold
	}

	mid := sma(bars, index, s.period)
	band := stdDev(bars, index, s.period, mid).Mul(s.mult)
	close := bars[index].Close

	switch {
	case close.LessThan(mid.Sub(band)):
		return types.SignalBuy
	case close.GreaterThan(mid.Add(band)):
		return types.SignalSell
	default:
		return types.SignalHold
	}
}
