package optimizer

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratbench/internal/engine"
	"stratbench/types"
)

func testRequest() types.BacktestRequest {
	return types.BacktestRequest{
		Symbol:          "AAPL",
		Strategy:        "sma_cross",
		StartDate:       time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		InitialCapital:  decimal.NewFromInt(10000),
		PositionSizePct: decimal.NewFromInt(100),
	}
}

func TestOptimizeEvaluatesFullGrid(t *testing.T) {
	eng := engine.New(nil, nil, nil)
	opt := New(eng, nil, 4, false)

	ranges := map[string]types.ParameterRange{
		"fast_period": {Min: 5, Max: 15, Step: 5},
		"slow_period": {Min: 20, Max: 40, Step: 10},
	}

	res, err := opt.Optimize(context.Background(), testRequest(), ranges, TargetTotalReturn)
	require.NoError(t, err)

	assert.Equal(t, 9, res.TotalCombinations)
	assert.Equal(t, 9, res.EvaluatedCombinations)
	assert.Equal(t, TargetTotalReturn, res.TargetMetric)
	require.NotNil(t, res.Best)
	assert.True(t, res.Best.SyntheticData)
	assert.Equal(t, "sma_cross", res.Best.Strategy)

	// The winner's re-run must score what the search said it scored.
	assert.True(t, res.Best.TotalReturn.Equal(res.BestScore),
		"best score %s != re-run total return %s", res.BestScore, res.Best.TotalReturn)
}

func TestOptimizeSkipsInvalidCombinations(t *testing.T) {
	eng := engine.New(nil, nil, nil)
	opt := New(eng, nil, 2, false)

	// fast >= slow is rejected by the strategy constructor for half the grid.
	ranges := map[string]types.ParameterRange{
		"fast_period": {Min: 10, Max: 20, Step: 10},
		"slow_period": {Min: 20, Max: 20, Step: 1},
	}

	res, err := opt.Optimize(context.Background(), testRequest(), ranges, TargetTotalReturn)
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalCombinations)
	assert.Equal(t, 2, res.EvaluatedCombinations)
	assert.Equal(t, types.IntParam(10), res.BestCombination["fast_period"])
}

func TestOptimizeAllCombinationsInvalid(t *testing.T) {
	eng := engine.New(nil, nil, nil)
	opt := New(eng, nil, 2, false)

	ranges := map[string]types.ParameterRange{
		"fast_period": {Min: 50, Max: 60, Step: 10},
		"slow_period": {Min: 20, Max: 20, Step: 1},
	}

	_, err := opt.Optimize(context.Background(), testRequest(), ranges, TargetTotalReturn)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestOptimizeRejectsUnknownTarget(t *testing.T) {
	eng := engine.New(nil, nil, nil)
	opt := New(eng, nil, 1, false)

	_, err := opt.Optimize(context.Background(), testRequest(), map[string]types.ParameterRange{
		"fast_period": {Min: 5, Max: 10, Step: 5},
	}, "bogus")
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestOptimizeRejectsEmptyRanges(t *testing.T) {
	eng := engine.New(nil, nil, nil)
	opt := New(eng, nil, 1, false)

	_, err := opt.Optimize(context.Background(), testRequest(), nil, TargetTotalReturn)
	assert.ErrorIs(t, err, ErrNoCombinations)
}

func TestScoreNegatesDrawdown(t *testing.T) {
	res := &types.BacktestResult{
		TotalReturn:  decimal.NewFromInt(12),
		SharpeRatio:  decimal.NewFromInt(2),
		ProfitFactor: decimal.NewFromInt(3),
		MaxDrawdown:  decimal.NewFromInt(8),
		CalmarRatio:  decimal.NewFromInt(4),
	}

	tests := []struct {
		target string
		want   int64
	}{
		{TargetTotalReturn, 12},
		{TargetSharpeRatio, 2},
		{TargetProfitFactor, 3},
		{TargetMaxDrawdown, -8},
		{TargetCalmarRatio, 4},
	}
	for _, tt := range tests {
		got, err := score(res, tt.target)
		require.NoError(t, err, tt.target)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "%s = %s, want %d", tt.target, got, tt.want)
	}

	_, err := score(res, "bogus")
	assert.ErrorIs(t, err, ErrUnknownTarget)
}
