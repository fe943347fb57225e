package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"stratbench/internal/config"
	"stratbench/internal/engine"
	"stratbench/internal/marketdata"
	"stratbench/internal/optimizer"
	"stratbench/internal/repository"
	"stratbench/internal/strategy"
	"stratbench/types"
)

func main() {
	cfgPath := flag.String("config", "config/stratbench.yaml", "path to the YAML configuration file")
	optimize := flag.Bool("optimize", false, "grid-search the configured parameter ranges instead of a single run")
	csvPath := flag.String("csv", "", "write the trade ledger to this CSV file")
	flag.Parse()

	// Missing .env is fine, env vars may come from the shell.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger, *optimize, *csvPath); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, optimize bool, csvPath string) error {
	req, err := buildRequest(cfg.Backtest)
	if err != nil {
		return err
	}

	var prices engine.PriceSource
	var sink engine.ResultSink
	if cfg.Database.URL != "" {
		src, err := marketdata.NewPostgresSource(cfg.Database.URL)
		if err != nil {
			logger.Warn("database unavailable, running on synthetic data", "error", err)
		} else {
			defer src.Close()
			prices = src

			db, err := repository.NewDatabase(ctx, cfg.Database.URL)
			if err != nil {
				logger.Warn("result persistence disabled", "error", err)
			} else {
				defer db.Close()
				sink = db
			}
		}
	}

	eng := engine.New(prices, sink, logger)

	var res *types.BacktestResult
	if optimize {
		opt := optimizer.New(eng, logger, cfg.Optimizer.Workers, cfg.Optimizer.ShowProgress)
		optRes, err := opt.Optimize(ctx, req, cfg.Optimizer.Ranges, cfg.Optimizer.Target)
		if err != nil {
			return err
		}
		fmt.Printf("\nBest parameters:       %s\n", optRes.BestCombination)
		fmt.Printf("Best score (%s): %s\n", optRes.TargetMetric, optRes.BestScore)
		fmt.Printf("Combinations:          %d evaluated of %d in %s\n",
			optRes.EvaluatedCombinations, optRes.TotalCombinations, optRes.Elapsed.Round(time.Millisecond))
		res = optRes.Best
	} else {
		strat, err := strategy.New(req.Strategy, req.Params)
		if err != nil {
			return err
		}
		res, err = eng.Run(ctx, req, strat)
		if err != nil {
			return err
		}
	}

	printReport(res)

	if csvPath != "" {
		if err := engine.WriteTradesCSVFile(csvPath, res.Trades); err != nil {
			return err
		}
		logger.Info("trade ledger written", "path", csvPath, "trades", len(res.Trades))
	}
	return nil
}

func buildRequest(bt config.Backtest) (types.BacktestRequest, error) {
	start, err := time.Parse(time.DateOnly, bt.StartDate)
	if err != nil {
		return types.BacktestRequest{}, fmt.Errorf("parse start_date: %w", err)
	}
	end, err := time.Parse(time.DateOnly, bt.EndDate)
	if err != nil {
		return types.BacktestRequest{}, fmt.Errorf("parse end_date: %w", err)
	}
	if !end.After(start) {
		return types.BacktestRequest{}, fmt.Errorf("end_date %s is not after start_date %s", bt.EndDate, bt.StartDate)
	}

	params := make(types.ParameterCombination, len(bt.Params))
	for name, v := range bt.Params {
		if v == math.Trunc(v) {
			params[name] = types.IntParam(int(v))
		} else {
			params[name] = types.FloatParam(v)
		}
	}

	return types.BacktestRequest{
		Symbol:            bt.Symbol,
		Strategy:          bt.Strategy,
		Params:            params,
		StartDate:         start,
		EndDate:           end,
		InitialCapital:    decimal.NewFromFloat(bt.InitialCapital),
		PositionSizePct:   decimal.NewFromFloat(bt.PositionSizePct),
		CommissionPct:     decimal.NewFromFloat(bt.CommissionPct),
		SlippagePct:       decimal.NewFromFloat(bt.SlippagePct),
		StopLossPercent:   decimal.NewFromFloat(bt.StopLossPercent),
		TakeProfitPercent: decimal.NewFromFloat(bt.TakeProfitPercent),
	}, nil
}

func newLogger(lc config.Logging) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if lc.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func printReport(res *types.BacktestResult) {
	fmt.Println("===== Backtest Report =====")
	fmt.Printf("Symbol:                %s\n", res.Symbol)
	fmt.Printf("Strategy:              %s %s\n", res.Strategy, res.StrategyParams)
	fmt.Printf("Period:                %s to %s\n", res.StartDate.Format("2006-01-02"), res.EndDate.Format("2006-01-02"))
	fmt.Printf("Synthetic Data:        %v\n", res.SyntheticData)

	fmt.Println("\n-- Absolute Performance --")
	fmt.Printf("Initial Capital:       %s\n", res.InitialCapital)
	fmt.Printf("Final Capital:         %s\n", res.FinalCapital)
	fmt.Printf("Total Return %%:        %s\n", res.TotalReturn)
	fmt.Printf("CAGR %%:                %s\n", res.CAGR)

	fmt.Println("\n-- Trade-Level Metrics --")
	fmt.Printf("Total Trades:          %d\n", res.TotalTrades)
	fmt.Printf("Win Rate %%:            %s\n", res.WinRate)
	fmt.Printf("Avg Win:               %s\n", res.AvgWin)
	fmt.Printf("Avg Loss:              %s\n", res.AvgLoss)
	fmt.Printf("Avg Holding Days:      %s\n", res.AvgHoldingDays)
	fmt.Printf("Max Win Streak:        %d\n", res.MaxWinStreak)
	fmt.Printf("Max Loss Streak:       %d\n", res.MaxLossStreak)

	fmt.Println("\n-- Risk-Adjusted Metrics --")
	fmt.Printf("Max Drawdown %%:        %s\n", res.MaxDrawdown)
	fmt.Printf("Sharpe Ratio:          %s\n", res.SharpeRatio)
	fmt.Printf("Sortino Ratio:         %s\n", res.SortinoRatio)
	fmt.Printf("Calmar Ratio:          %s\n", res.CalmarRatio)
	fmt.Printf("Profit Factor:         %s\n", res.ProfitFactor)

	fmt.Println("===========================")
}
