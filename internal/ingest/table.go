package ingest

import (
	"strconv"
	"strings"
)

// table is an in-memory grid with a header row, the common shape of every
// input regardless of whether it came from CSV or Excel.
type table struct {
	columns map[string]int
	rows    [][]string
}

// newTable indexes the header row. Column names are normalized to
// lowercase with separators stripped, so "Customer ID", "customer_id" and
// "CustomerId" all match.
func newTable(records [][]string) *table {
	t := &table{columns: make(map[string]int)}
	if len(records) == 0 {
		return t
	}
	for i, col := range records[0] {
		t.columns[normalizeColumn(col)] = i
	}
	t.rows = records[1:]
	return t
}

func normalizeColumn(col string) string {
	col = strings.TrimPrefix(strings.TrimSpace(col), "\uFEFF")
	col = strings.ToLower(col)
	col = strings.NewReplacer("_", "", "-", "", " ", "").Replace(col)
	return col
}

// lookup returns the index of the first matching alias, or -1.
func (t *table) lookup(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := t.columns[a]; ok {
			return i
		}
	}
	return -1
}

// cell returns the trimmed cell value, empty when the column is absent or
// the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// coerceFloat parses a decimal number, treating anything unparseable as
// zero. Comma decimal separators are accepted.
func coerceFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
