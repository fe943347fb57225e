package repository

import (
	"context"
	"encoding/json"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stratbench/types"
)

// Database persists finished backtest results and their trade ledgers.
type Database struct {
	conn *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(ctx context.Context, dbURL string) (*Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return &Database{conn: conn}, nil
}

// SaveResult writes the result header and its trades in one transaction so a
// stored result always has its complete ledger.
func (d *Database) SaveResult(ctx context.Context, res *types.BacktestResult) error {
	params, err := json.Marshal(res.StrategyParams)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var resultID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO backtest_results (
			symbol, strategy, strategy_params, start_date, end_date,
			initial_capital, final_capital, total_return, cagr, max_drawdown,
			sharpe_ratio, sortino_ratio, calmar_ratio, profit_factor, win_rate,
			avg_win, avg_loss, avg_holding_days,
			total_trades, winning_trades, losing_trades,
			max_win_streak, max_loss_streak, synthetic_data, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		) RETURNING id`,
		res.Symbol, res.Strategy, params, res.StartDate, res.EndDate,
		res.InitialCapital, res.FinalCapital, res.TotalReturn, res.CAGR, res.MaxDrawdown,
		res.SharpeRatio, res.SortinoRatio, res.CalmarRatio, res.ProfitFactor, res.WinRate,
		res.AvgWin, res.AvgLoss, res.AvgHoldingDays,
		res.TotalTrades, res.WinningTrades, res.LosingTrades,
		res.MaxWinStreak, res.MaxLossStreak, res.SyntheticData, res.CreatedAt,
	).Scan(&resultID)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	for _, t := range res.Trades {
		_, err = tx.Exec(ctx, `
			INSERT INTO backtest_trades (
				result_id, trade_number, symbol, entry_date, exit_date,
				entry_price, exit_price, quantity, profit, profit_percent,
				entry_signal, exit_signal, holding_days,
				portfolio_value_at_entry, portfolio_value_at_exit
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
			)`,
			resultID, t.TradeNumber, t.Symbol, t.EntryDate, t.ExitDate,
			t.EntryPrice, t.ExitPrice, t.Quantity, t.Profit, t.ProfitPercent,
			t.EntrySignal, t.ExitSignal, t.HoldingDays,
			t.PortfolioValueAtEntry, t.PortfolioValueAtExit,
		)
		if err != nil {
			return fmt.Errorf("insert trade %d: %w", t.TradeNumber, err)
		}
	}

	return tx.Commit(ctx)
}

func (d *Database) Close() {
	d.conn.Close()
}
