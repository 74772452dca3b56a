// Package exporter serializes sales record sets to flat files.
//
// CSV is the primary format: a `Day,Sales,Sales Growth Rate (%)` header row
// followed by one row per day. XLSX output carries the same columns on a single
// "Sales" sheet.
//
// File exports never leave a partially written destination. Data is written to
// a temporary file next to the target which is renamed over it once complete.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	path, err := writer.Export(records, "sales_data.csv")
package exporter
