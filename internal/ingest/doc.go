// Package ingest loads sales datasets from CSV files and Excel workbooks
// into the domain contracts. Parsing is forgiving by design: malformed
// numeric fields coerce to zero, header names are matched
// case-insensitively with common aliases, and a UTF-8 BOM is tolerated.
// Structural problems (a line without a parent order id) are left to the
// engine, which excludes such lines from header-dependent aggregation.
package ingest
