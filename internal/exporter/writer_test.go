package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespulse/internal/analytics"
)

func sampleReport() *analytics.Report {
	return &analytics.Report{
		ReferenceDate: "2026-02-10",
		Customers: []analytics.CustomerStats{
			{ID: "1", Name: "Alpha Foods", TotalSales: 70, OrderCount: 2,
				TicketAverage: 35, RecencyBucket: analytics.RecencyWarm},
		},
		Products: []analytics.ProductStats{
			{ID: "100", Name: "Product X", Quantity: 8, TotalValue: 80},
		},
		Reps: []analytics.RepStats{
			{ID: "50", Name: "Casey Vendor", TotalSales: 80, OrderCount: 3},
		},
		Daily: []analytics.DayBucket{
			{Date: "2026-01-01", Total: 70, Orders: 2},
		},
		Weekly: []analytics.WeekBucket{
			{Week: "2026-W01", Total: 70, Orders: 2},
		},
		Monthly: []analytics.MonthBucket{
			{Month: "2026-01", Total: 80, Orders: 3},
		},
		Pairs: []analytics.ProductPair{
			{ProductA: "100", ProductB: "101", Frequency: 2, AvgOrderValue: 30},
		},
		Summary: analytics.Summary{TotalRevenue: 80, TotalOrders: 3},
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	require.NoError(t, w.WriteJSON(sampleReport()))

	data, err := os.ReadFile(filepath.Join(dir, JSONFile))
	require.NoError(t, err)

	var got analytics.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2026-02-10", got.ReferenceDate)
	assert.Equal(t, 80.0, got.Summary.TotalRevenue)
	require.Len(t, got.Customers, 1)
	assert.Equal(t, "Alpha Foods", got.Customers[0].Name)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	require.NoError(t, w.WriteCSV(sampleReport()))

	for _, name := range []string{
		CustomersFile, ProductsFile, RepsFile,
		DailyFile, WeeklyFile, MonthlyFile, PairsFile, SummaryFile,
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, CustomersFile))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data,
		[]byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "Alpha Foods", records[1][1])
	// Floats always carry two decimal places.
	assert.Equal(t, "70.00", records[1][2])
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	require.NoError(t, w.WriteWorkbook(sampleReport()))

	f, err := excelize.OpenFile(filepath.Join(dir, WorkbookFile))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		SheetCustomers, SheetProducts, SheetReps, SheetDaily,
		SheetWeekly, SheetMonthly, SheetPairs, SheetSummary,
	}, f.GetSheetList())

	rows, err := f.GetRows(SheetProducts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Product X", rows[1][1])
}

func TestWriteEmptyReport(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)
	empty := &analytics.Report{}

	require.NoError(t, w.WriteJSON(empty))
	require.NoError(t, w.WriteCSV(empty))

	var got analytics.Report
	data, err := os.ReadFile(filepath.Join(dir, JSONFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))

	// Tables have headers only.
	data, err = os.ReadFile(filepath.Join(dir, ProductsFile))
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data,
		[]byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w := NewWriter(dir, nil)

	require.NoError(t, w.WriteJSON(sampleReport()))
	_, err := os.Stat(filepath.Join(dir, JSONFile))
	assert.NoError(t, err)
}
