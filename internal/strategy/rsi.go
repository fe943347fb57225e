package strategy

import (
	"stratbench/types"

	"github.com/shopspring/decimal"
)

// RSI signals on the relative strength index over a lookback window: BUY
// when the index drops below the oversold level, SELL when it rises above
// the overbought level.
type RSI struct {
	period     int
	oversold   decimal.Decimal
	overbought decimal.Decimal
}

func NewRSI(period int, oversold, overbought float64) (*RSI, error) {
	if period <= 0 || oversold >= overbought {
		return nil, ErrInvalidParams
	}
	return &RSI{
		period:     period,
		oversold:   decimal.NewFromFloat(oversold),
		overbought: decimal.NewFromFloat(overbought),
	}, nil
}

func (s *RSI) Name() string { return TypeRSI }

func (s *RSI) Parameters() map[string]types.ParamValue {
	return map[string]types.ParamValue{
		"period":     types.IntParam(s.period),
		"oversold":   types.FloatParam(s.oversold.InexactFloat64()),
		"overbought": types.FloatParam(s.overbought.InexactFloat64()),
	}
}

func (s *RSI) GenerateSignal(bars []types.PriceBar, index int) types.Signal {
	if index < s.period {
		return types.SignalHold
	}

	gains := decimal.Zero
	losses := decimal.Zero
	for i := index - s.period + 1; i <= index; i++ {
		change := bars[i].Close.Sub(bars[i-1].Close)
		if change.IsPositive() {
			gains = gains.Add(change)
		} else {
			losses = losses.Add(change.Abs())
		}
	}

	var rsi decimal.Decimal
	if losses.IsZero() {
		rsi = decimal.NewFromInt(100)
	} else {
		rs := gains.Div(losses)
		rsi = decimal.NewFromInt(100).Sub(decimal.NewFromInt(100).Div(decimal.NewFromInt(1).Add(rs)))
	}

	switch {
	case rsi.LessThan(s.oversold):
		return types.SignalBuy
	case rsi.GreaterThan(s.overbought):
		return types.SignalSell
	default:
		return types.SignalHold
	}
}
