package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stratbench/types"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoBars = errors.New("no price bars found in datasource")

// PostgresSource reads daily bars from the price_bars table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource opens a pgx pool against dbURL and verifies
// connectivity.
func NewPostgresSource(dbURL string) (*PostgresSource, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}
	return &PostgresSource{pool: pool}, nil
}

// Fetch returns the bars for symbol inside [start, end], ordered by date.
func (s *PostgresSource) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT date, open, high, low, close, volume
		FROM price_bars
		WHERE symbol = $1 AND date >= $2 AND date <= $3
		ORDER BY date`,
		symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("query price bars: %w", err)
	}
	defer rows.Close()

	var bars []types.PriceBar
	for rows.Next() {
		var bar types.PriceBar
		if err := rows.Scan(&bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("scan price bar: %w", err)
		}
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("symbol %s: %w", symbol, ErrNoBars)
	}
	return bars, nil
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}
