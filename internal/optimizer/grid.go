package optimizer

import (
	"math"
	"sort"

	"stratbench/types"
)

// ExpandRange turns a {min, max, step} range into its concrete values. A
// step <= 0 is clamped to 1. When min and step are both whole numbers the
// values are integers; otherwise they are floats. Strategy constructors
// branch on that distinction, so it must be preserved exactly.
func ExpandRange(r types.ParameterRange) []types.ParamValue {
	step := r.Step
	if step <= 0 {
		step = 1
	}

	if isWhole(r.Min) && isWhole(step) {
		var out []types.ParamValue
		for v := int(r.Min); float64(v) <= r.Max; v += int(step) {
			out = append(out, types.IntParam(v))
		}
		return out
	}

	// Tolerance absorbs float accumulation error at the top of the range.
	var out []types.ParamValue
	tol := step * 1e-9
	for v := r.Min; v <= r.Max+tol; v += step {
		out = append(out, types.FloatParam(v))
	}
	return out
}

// Combinations generates the full Cartesian product of the parameter
// ranges. Axes iterate in sorted name order, min to max, so the combination
// order is deterministic.
func Combinations(ranges map[string]types.ParameterRange) []types.ParameterCombination {
	if len(ranges) == 0 {
		return nil
	}

	names := make([]string, 0, len(ranges))
	for name := range ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	axes := make([][]types.ParamValue, len(names))
	for i, name := range names {
		axes[i] = ExpandRange(ranges[name])
		if len(axes[i]) == 0 {
			return nil
		}
	}

	total := 1
	for _, axis := range axes {
		total *= len(axis)
	}

	out := make([]types.ParameterCombination, 0, total)
	indices := make([]int, len(axes))
	for {
		combo := make(types.ParameterCombination, len(names))
		for i, name := range names {
			combo[name] = axes[i][indices[i]]
		}
		out = append(out, combo)

		// Odometer increment, last axis fastest.
		i := len(indices) - 1
		for ; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(axes[i]) {
				break
			}
			indices[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

func isWhole(v float64) bool {
	return v == math.Trunc(v)
}
