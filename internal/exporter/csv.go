package exporter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Headers is the fixed column layout of every export
var Headers = []string{"Day", "Sales", "Sales Growth Rate (%)"}

// CSVWriter provides file export into the configured export directory
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// Export writes records to filename under the export directory and returns the
// full path written.
func (w *CSVWriter) Export(records domain.RecordSet, filename string) (string, error) {
	fullPath := w.paths.GetExportPath(filename)

	slog.Info("Writing CSV file",
		slog.String("file_path", filename),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(records)))

	if err := ExportFile(records, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

// WriteCSV serializes records as CSV to sink
func WriteCSV(records domain.RecordSet, sink io.Writer) error {
	writer := csv.NewWriter(sink)

	if err := writer.Write(Headers); err != nil {
		return apierrors.NewIOError("failed to write headers", err)
	}
	for i, record := range records {
		if err := writer.Write(recordToCSVRow(record)); err != nil {
			return apierrors.NewIOError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apierrors.NewIOError("failed to flush CSV", err)
	}
	return nil
}

// ExportFile creates or fully replaces the CSV file at path.
// An empty record set is rejected so an export never produces a header-only file.
func ExportFile(records domain.RecordSet, path string) error {
	if len(records) == 0 {
		return apierrors.NewEmptyInputError("export")
	}

	err := writeAtomic(path, func(w io.Writer) error {
		return WriteCSV(records, w)
	})
	if err != nil {
		return asIOError(path, err)
	}
	return nil
}

func recordToCSVRow(record domain.DailyRecord) []string {
	return []string{
		formatInt(record.Day),
		formatInt(record.Sales),
		formatFloat(record.GrowthRate),
	}
}

// asIOError keeps typed IO errors and wraps anything else
func asIOError(path string, err error) error {
	if errors.Is(err, apierrors.ErrIO) {
		return err
	}
	return apierrors.NewIOError(fmt.Sprintf("failed to write %s", path), err).
		WithContext("path", path)
}
