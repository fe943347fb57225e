package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stratbench.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgresql://localhost:5432/stratbench"
logging:
  level: "debug"
  format: "text"
backtest:
  symbol: "MSFT"
  strategy: "rsi"
  start_date: "2021-01-01"
  end_date: "2023-01-01"
  initial_capital: 50000
  position_size_pct: 50
  commission_pct: 0.1
  slippage_pct: 0.05
  stop_loss_percent: 5
  take_profit_percent: 10
  params:
    period: 14
optimizer:
  target: "sharpe_ratio"
  workers: 8
  show_progress: false
  ranges:
    period: { min: 10, max: 20, step: 2 }
`)

	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Database.URL != "postgresql://localhost:5432/stratbench" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Backtest.Symbol != "MSFT" {
		t.Errorf("Backtest.Symbol = %q, want MSFT", cfg.Backtest.Symbol)
	}
	if cfg.Backtest.InitialCapital != 50000 {
		t.Errorf("Backtest.InitialCapital = %f, want 50000", cfg.Backtest.InitialCapital)
	}
	if cfg.Backtest.Params["period"] != 14 {
		t.Errorf("Backtest.Params[period] = %f, want 14", cfg.Backtest.Params["period"])
	}
	if cfg.Optimizer.Target != "sharpe_ratio" {
		t.Errorf("Optimizer.Target = %q", cfg.Optimizer.Target)
	}
	if cfg.Optimizer.Workers != 8 {
		t.Errorf("Optimizer.Workers = %d, want 8", cfg.Optimizer.Workers)
	}
	r := cfg.Optimizer.Ranges["period"]
	if r.Min != 10 || r.Max != 20 || r.Step != 2 {
		t.Errorf("Optimizer.Ranges[period] = %+v", r)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
backtest:
  symbol: "TSLA"
`)

	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Backtest.Symbol != "TSLA" {
		t.Errorf("Backtest.Symbol = %q, want TSLA", cfg.Backtest.Symbol)
	}
	// Untouched fields keep their defaults.
	if cfg.Backtest.Strategy != "sma_cross" {
		t.Errorf("Backtest.Strategy = %q, want sma_cross", cfg.Backtest.Strategy)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Optimizer.Target != "total_return" {
		t.Errorf("Optimizer.Target = %q, want total_return", cfg.Optimizer.Target)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgresql://yaml-host/db"
logging:
  level: "info"
`)

	os.Setenv("DATABASE_URL", "postgresql://env-host/db")
	os.Setenv("LOG_LEVEL", "warn")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("LOG_LEVEL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Database.URL != "postgresql://env-host/db" {
		t.Errorf("Database.URL = %q, want env override", cfg.Database.URL)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() on missing file returned nil error")
	}
}
