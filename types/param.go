package types

import (
	"fmt"
	"strconv"
)

// ParamKind tags the value held by a ParamValue.
type ParamKind int

const (
	ParamInt ParamKind = iota
	ParamFloat
	ParamString
)

// ParamValue is a tagged union used to configure a strategy from a free-form
// parameter map. Whether a numeric parameter is an Int or a Float matters:
// strategy constructors branch on it, and the optimizer infers the kind from
// the shape of the range it expands.
type ParamValue struct {
	Kind  ParamKind
	Int   int
	Float float64
	Str   string
}

func IntParam(v int) ParamValue {
	return ParamValue{Kind: ParamInt, Int: v}
}

func FloatParam(v float64) ParamValue {
	return ParamValue{Kind: ParamFloat, Float: v}
}

func StringParam(v string) ParamValue {
	return ParamValue{Kind: ParamString, Str: v}
}

// IntOr returns the parameter as an int, truncating a float value, or def
// when the parameter is not numeric.
func (p ParamValue) IntOr(def int) int {
	switch p.Kind {
	case ParamInt:
		return p.Int
	case ParamFloat:
		return int(p.Float)
	default:
		return def
	}
}

// FloatOr returns the parameter as a float64, widening an int value, or def
// when the parameter is not numeric.
func (p ParamValue) FloatOr(def float64) float64 {
	switch p.Kind {
	case ParamFloat:
		return p.Float
	case ParamInt:
		return float64(p.Int)
	default:
		return def
	}
}

// StringOr returns the parameter as a string, or def when it is numeric.
func (p ParamValue) StringOr(def string) string {
	if p.Kind == ParamString {
		return p.Str
	}
	return def
}

func (p ParamValue) String() string {
	switch p.Kind {
	case ParamInt:
		return strconv.Itoa(p.Int)
	case ParamFloat:
		return strconv.FormatFloat(p.Float, 'g', -1, 64)
	default:
		return p.Str
	}
}

// ParameterRange describes one axis of a grid search. A Step <= 0 is
// treated as 1 during expansion.
type ParameterRange struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// ParameterCombination is one member of the Cartesian product generated by
// the optimizer.
type ParameterCombination map[string]ParamValue

// Clone returns an independent copy of the combination.
func (c ParameterCombination) Clone() ParameterCombination {
	out := make(ParameterCombination, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func (c ParameterCombination) String() string {
	return fmt.Sprintf("%v", map[string]ParamValue(c))
}
