package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stratbench/types"
)

// Config is the top-level configuration for a stratbench run.
type Config struct {
	Database  Database  `yaml:"database"`
	Logging   Logging   `yaml:"logging"`
	Backtest  Backtest  `yaml:"backtest"`
	Optimizer Optimizer `yaml:"optimizer"`
}

// Database holds the connection string for price history and result storage.
// An empty URL disables persistence and switches to synthetic data.
type Database struct {
	URL string `yaml:"url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Backtest holds the simulation request defaults.
type Backtest struct {
	Symbol            string             `yaml:"symbol"`
	Strategy          string             `yaml:"strategy"`
	StartDate         string             `yaml:"start_date"`
	EndDate           string             `yaml:"end_date"`
	InitialCapital    float64            `yaml:"initial_capital"`
	PositionSizePct   float64            `yaml:"position_size_pct"`
	CommissionPct     float64            `yaml:"commission_pct"`
	SlippagePct       float64            `yaml:"slippage_pct"`
	StopLossPercent   float64            `yaml:"stop_loss_percent"`
	TakeProfitPercent float64            `yaml:"take_profit_percent"`
	Params            map[string]float64 `yaml:"params"`
}

// Optimizer configures the grid search.
type Optimizer struct {
	Target       string                          `yaml:"target"`
	Workers      int                             `yaml:"workers"`
	ShowProgress bool                            `yaml:"show_progress"`
	Ranges       map[string]types.ParameterRange `yaml:"ranges"`
}

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Logging: Logging{Level: "info", Format: "json"},
		Backtest: Backtest{
			Symbol:          "AAPL",
			Strategy:        "sma_cross",
			StartDate:       "2020-01-01",
			EndDate:         "2024-01-01",
			InitialCapital:  10000,
			PositionSizePct: 100,
		},
		Optimizer: Optimizer{
			Target:       "total_return",
			ShowProgress: true,
		},
	}
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
