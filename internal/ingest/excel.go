package ingest

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"salespulse/internal/analytics"
)

// Workbook sheet names. As with the CSV files, the reference sheets are
// optional.
const (
	SheetOrders    = "Orders"
	SheetLines     = "Lines"
	SheetCustomers = "Customers"
	SheetProducts  = "Products"
	SheetReps      = "SalesReps"
)

// LoadWorkbook parses a complete dataset from one Excel workbook with the
// standard sheet layout.
func (l *Loader) LoadWorkbook(path string) (analytics.Dataset, error) {
	var ds analytics.Dataset

	f, err := excelize.OpenFile(path)
	if err != nil {
		return ds, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	orders, err := sheetTable(f, SheetOrders)
	if err != nil {
		return ds, fmt.Errorf("read %s sheet: %w", SheetOrders, err)
	}
	lines, err := sheetTable(f, SheetLines)
	if err != nil {
		return ds, fmt.Errorf("read %s sheet: %w", SheetLines, err)
	}

	ds.Orders = parseOrders(orders)
	ds.Lines = parseLines(lines)
	ds.Customers = parseCustomers(l.optionalSheet(f, SheetCustomers))
	ds.Products = parseProducts(l.optionalSheet(f, SheetProducts))
	ds.Reps = parseReps(l.optionalSheet(f, SheetReps))

	l.logger.Info("workbook loaded",
		slog.String("path", path),
		slog.Int("orders", len(ds.Orders)),
		slog.Int("lines", len(ds.Lines)))

	return ds, nil
}

func sheetTable(f *excelize.File, sheet string) (*table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return newTable(rows), nil
}

func (l *Loader) optionalSheet(f *excelize.File, sheet string) *table {
	t, err := sheetTable(f, sheet)
	if err != nil {
		l.logger.Warn("skipping missing workbook sheet", slog.String("sheet", sheet))
		return newTable(nil)
	}
	return t
}
