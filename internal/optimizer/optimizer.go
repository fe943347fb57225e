package optimizer

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"stratbench/internal/engine"
	"stratbench/internal/strategy"
	"stratbench/types"
)

// Target metrics an optimization can maximize. TargetMaxDrawdown scores as
// the negated drawdown so that higher is always better.
const (
	TargetTotalReturn  = "total_return"
	TargetSharpeRatio  = "sharpe_ratio"
	TargetProfitFactor = "profit_factor"
	TargetMaxDrawdown  = "max_drawdown"
	TargetCalmarRatio  = "calmar_ratio"
)

var (
	ErrNoCombinations = errors.New("parameter ranges produced no combinations")
	ErrNoResults      = errors.New("no combination produced a usable result")
	ErrUnknownTarget  = errors.New("unknown target metric")
)

// Optimizer grid-searches a strategy's parameter space with a bounded worker
// pool and reports the best combination re-run through the full engine path.
type Optimizer struct {
	eng          *engine.Engine
	logger       *slog.Logger
	workers      int
	showProgress bool
}

func New(eng *engine.Engine, logger *slog.Logger, workers int, showProgress bool) *Optimizer {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Optimizer{eng: eng, logger: logger, workers: workers, showProgress: showProgress}
}

// Optimize evaluates every combination of the given ranges against a single
// shared price series. Combinations whose parameters fail strategy
// construction are skipped, not fatal. The winner is decided by strict
// greater-than over ascending combination index, so the earliest of tied
// scores wins regardless of evaluation order.
func (o *Optimizer) Optimize(ctx context.Context, req types.BacktestRequest, ranges map[string]types.ParameterRange, target string) (*types.OptimizationResult, error) {
	if _, err := score(&types.BacktestResult{}, target); err != nil {
		return nil, err
	}

	combos := Combinations(ranges)
	if len(combos) == 0 {
		return nil, ErrNoCombinations
	}

	bars, synthetic := o.eng.LoadBars(ctx, req.Symbol, req.StartDate, req.EndDate)
	o.logger.Info("optimization started",
		"symbol", req.Symbol,
		"strategy", req.Strategy,
		"combinations", len(combos),
		"workers", o.workers,
		"synthetic", synthetic,
	)

	var bar *progressbar.ProgressBar
	if o.showProgress {
		bar = initProgressBar(len(combos))
	}

	started := time.Now()
	results := make([]*types.BacktestResult, len(combos))
	var evaluated atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, combo := range combos {
		i, combo := i, combo
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			strat, err := strategy.New(req.Strategy, combo)
			if err != nil {
				o.logger.Warn("skipping combination", "params", combo.String(), "error", err)
			} else {
				comboReq := req
				comboReq.Params = combo
				results[i] = o.eng.RunBars(bars, comboReq, strat)
			}

			evaluated.Add(1)
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bestIdx := -1
	var bestScore decimal.Decimal
	for i, res := range results {
		if res == nil {
			continue
		}
		s, _ := score(res, target)
		if bestIdx < 0 || s.GreaterThan(bestScore) {
			bestIdx, bestScore = i, s
		}
	}
	if bestIdx < 0 {
		return nil, ErrNoResults
	}

	bestCombo := combos[bestIdx]
	bestReq := req
	bestReq.Params = bestCombo
	strat, err := strategy.New(req.Strategy, bestCombo)
	if err != nil {
		return nil, err
	}
	best, err := o.eng.Run(ctx, bestReq, strat)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(started)
	o.logger.Info("optimization finished",
		"best_params", bestCombo.String(),
		"best_score", bestScore.String(),
		"target", target,
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)

	return &types.OptimizationResult{
		Best:                  best,
		BestCombination:       bestCombo,
		BestScore:             bestScore,
		TargetMetric:          target,
		TotalCombinations:     len(combos),
		EvaluatedCombinations: int(evaluated.Load()),
		Elapsed:               elapsed,
	}, nil
}

func score(res *types.BacktestResult, target string) (decimal.Decimal, error) {
	switch target {
	case TargetTotalReturn:
		return res.TotalReturn, nil
	case TargetSharpeRatio:
		return res.SharpeRatio, nil
	case TargetProfitFactor:
		return res.ProfitFactor, nil
	case TargetMaxDrawdown:
		return res.MaxDrawdown.Neg(), nil
	case TargetCalmarRatio:
		return res.CalmarRatio, nil
	default:
		return decimal.Zero, ErrUnknownTarget
	}
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Optimizing parameters..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
