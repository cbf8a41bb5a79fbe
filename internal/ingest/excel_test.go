package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		SheetOrders: {
			{"id", "date", "customer_id", "sales_rep_id", "total"},
			{"1", "2026-01-01", "10", "50", 99.9},
			{"2", "2026-01-02", "11", "50", 40},
		},
		SheetLines: {
			{"order_id", "product_id", "quantity", "unit_price", "total"},
			{"1", "100", 2, 10, 20},
			{"2", "101", 1, 40, 40},
		},
		SheetProducts: {
			{"id", "name"},
			{"100", "Widget"},
		},
	})

	ds, err := NewLoader(nil).LoadWorkbook(path)
	require.NoError(t, err)

	require.Len(t, ds.Orders, 2)
	assert.Equal(t, "1", ds.Orders[0].ID)
	assert.Equal(t, 99.9, ds.Orders[0].Total)

	require.Len(t, ds.Lines, 2)
	assert.Equal(t, "101", ds.Lines[1].ProductID)
	assert.Equal(t, 40.0, ds.Lines[1].UnitPrice)

	require.Len(t, ds.Products, 1)
	assert.Equal(t, "Widget", ds.Products[0].Name)

	// Sheets that are absent are treated as empty references.
	assert.Empty(t, ds.Customers)
	assert.Empty(t, ds.Reps)
}

func TestLoadWorkbookMissingRequiredSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		SheetOrders: {
			{"id", "date", "customer_id", "total"},
			{"1", "2026-01-01", "10", 10},
		},
	})

	_, err := NewLoader(nil).LoadWorkbook(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), SheetLines)
}

func TestLoadWorkbookMissingFile(t *testing.T) {
	_, err := NewLoader(nil).LoadWorkbook(filepath.Join(t.TempDir(), "none.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open workbook")
}
