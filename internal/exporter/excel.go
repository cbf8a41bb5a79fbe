package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salespulse/internal/analytics"
)

// Workbook sheet names, one per report table.
const (
	SheetCustomers = "Customers"
	SheetProducts  = "Products"
	SheetReps      = "SalesReps"
	SheetDaily     = "Daily"
	SheetWeekly    = "Weekly"
	SheetMonthly   = "Monthly"
	SheetPairs     = "CrossSell"
	SheetSummary   = "Summary"
)

// WriteWorkbook writes the tabular sections of the report as one Excel
// workbook with a sheet per table.
func (w *Writer) WriteWorkbook(report *analytics.Report) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		opts writeOptions
	}{
		{SheetCustomers, customerTable(report.Customers)},
		{SheetProducts, productTable(report.Products)},
		{SheetReps, repTable(report.Reps)},
		{SheetDaily, dailyTable(report.Daily)},
		{SheetWeekly, weeklyTable(report.Weekly)},
		{SheetMonthly, monthlyTable(report.Monthly)},
		{SheetPairs, pairTable(report.Pairs)},
		{SheetSummary, summaryTable(report)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		if err := fillSheet(f, sheet.name, sheet.opts); err != nil {
			return err
		}
	}

	path := filepath.Join(w.dir, WorkbookFile)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("workbook written", slog.String("path", path),
		slog.Int("sheets", len(sheets)))
	return nil
}

func fillSheet(f *excelize.File, sheet string, opts writeOptions) error {
	rows := make([][]string, 0, len(opts.records)+1)
	rows = append(rows, opts.headers)
	rows = append(rows, opts.records...)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("coordinates for row %d: %w", i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
