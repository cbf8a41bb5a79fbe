package exporter

import "fmt"

// formatFloat formats a value with exactly 2 decimal places so 13.4
// appears as 13.40 in every table.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
