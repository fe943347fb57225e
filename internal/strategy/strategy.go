// Package strategy holds the pluggable signal generators. Every strategy is
// a pure function of the price series and its own tunable constants; none
// hold simulation state, so one instance can be shared across readers.
package strategy

import (
	"errors"
	"fmt"

	"stratbench/types"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy type")
	ErrInvalidParams   = errors.New("invalid strategy parameters")
)

// Strategy maps a price history and bar index to a trading signal.
type Strategy interface {
	GenerateSignal(bars []types.PriceBar, index int) types.Signal
	Name() string
	Parameters() map[string]types.ParamValue
}

// Registered strategy type names.
const (
	TypeSMACross  = "sma_cross"
	TypeRSI       = "rsi"
	TypeBollinger = "bollinger"
	TypeMomentum  = "momentum"
	TypeMACD      = "macd"
)

// New builds a strategy from its type name and a free-form parameter map,
// applying per-type defaults. An unknown type is a caller bug and fails
// immediately.
func New(name string, params types.ParameterCombination) (Strategy, error) {
	switch name {
	case TypeSMACross:
		return NewSMACross(
			params["fast_period"].IntOr(10),
			params["slow_period"].IntOr(30),
		)
	case TypeRSI:
		return NewRSI(
			params["period"].IntOr(14),
			params["oversold"].FloatOr(30),
			params["overbought"].FloatOr(70),
		)
	case TypeBollinger:
		return NewBollinger(
			params["period"].IntOr(20),
			params["std_dev"].FloatOr(2.0),
		)
	case TypeMomentum:
		return NewMomentum(
			params["period"].IntOr(10),
			params["threshold"].FloatOr(5.0),
		)
	case TypeMACD:
		return NewMACD(
			params["fast_period"].IntOr(12),
			params["slow_period"].IntOr(26),
			params["signal_period"].IntOr(9),
		)
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}
