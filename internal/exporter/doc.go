// Package exporter writes analysis reports to disk in JSON, CSV and Excel
// formats.
//
// # Core Components
//
// The package provides three writers sharing one report:
//   - JSON: the complete report as a single indented document
//   - CSV: one file per report table (customers, products, reps, periods)
//   - Excel: one workbook with a sheet per table
//
// All writers create the output directory when it is missing and overwrite
// existing files. CSV files carry a UTF-8 BOM so Excel opens them with the
// correct encoding.
//
// # Usage Example
//
//	w := exporter.NewWriter("reports", logger)
//	if err := w.WriteJSON(report); err != nil {
//	    return fmt.Errorf("export report: %w", err)
//	}
package exporter
