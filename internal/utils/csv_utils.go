package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyike/DealFlowGo/internal/models"
)

// WriteHistoryCSV exports a price history series as CSV with a Date,Close
// header, oldest row first.
func WriteHistoryCSV(path, ticker string, history []models.PricePoint) error {
	if len(history) == 0 {
		return fmt.Errorf("no price history to export for %s", ticker)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Ticker", "Date", "Close"}); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, point := range history {
		row := []string{
			ticker,
			point.Date.Format("2006-01-02"),
			point.Close.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return writer.Error()
}
