package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salespulse/internal/analytics"
)

// Output file names inside the report directory.
const (
	JSONFile     = "report.json"
	WorkbookFile = "report.xlsx"

	CustomersFile = "customers.csv"
	ProductsFile  = "products.csv"
	RepsFile      = "sales_reps.csv"
	DailyFile     = "daily.csv"
	WeeklyFile    = "weekly.csv"
	MonthlyFile   = "monthly.csv"
	PairsFile     = "cross_sell_pairs.csv"
	SummaryFile   = "summary.csv"
)

// Writer exports reports into a fixed output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a report writer. A nil logger falls back to
// slog.Default.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// WriteJSON writes the complete report as one indented JSON document.
func (w *Writer) WriteJSON(report *analytics.Report) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(w.dir, JSONFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", JSONFile, err)
	}

	w.logger.Info("report written", slog.String("path", path),
		slog.Int("bytes", len(data)))
	return nil
}

func (w *Writer) ensureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	return nil
}
