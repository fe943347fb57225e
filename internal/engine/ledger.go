package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"stratbench/types"
)

// WriteTradesCSVFile writes the trade ledger to a CSV file at the given path.
func WriteTradesCSVFile(path string, trades []types.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return WriteTradesCSV(f, trades)
}

// WriteTradesCSV writes the trade ledger to any io.Writer as CSV. Pass
// os.Stdout for debugging, or a file.
func WriteTradesCSV(w io.Writer, trades []types.Trade) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"trade_number",
		"symbol",
		"entry_date",
		"exit_date",
		"entry_price",
		"exit_price",
		"quantity",
		"profit",
		"profit_percent",
		"entry_signal",
		"exit_signal",
		"holding_days",
		"portfolio_value_at_entry",
		"portfolio_value_at_exit",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		record := []string{
			strconv.Itoa(t.TradeNumber),
			t.Symbol,
			t.EntryDate.Format(time.DateOnly),
			t.ExitDate.Format(time.DateOnly),
			t.EntryPrice.String(),
			t.ExitPrice.String(),
			t.Quantity.String(),
			t.Profit.String(),
			t.ProfitPercent.String(),
			t.EntrySignal,
			t.ExitSignal,
			strconv.Itoa(t.HoldingDays),
			t.PortfolioValueAtEntry.String(),
			t.PortfolioValueAtExit.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
