package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

const xlsxSheet = "Sales"

// XLSXWriter exports record sets as Excel workbooks
type XLSXWriter struct {
	csv *CSVWriter
}

// NewXLSXWriter creates an XLSX writer sharing the CSV writer's export paths
func NewXLSXWriter(csvWriter *CSVWriter) *XLSXWriter {
	return &XLSXWriter{csv: csvWriter}
}

// Export writes records to filename under the export directory
func (w *XLSXWriter) Export(records domain.RecordSet, filename string) (string, error) {
	fullPath := w.csv.paths.GetExportPath(filename)

	slog.Info("Writing XLSX file",
		slog.String("file_path", filename),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(records)))

	if len(records) == 0 {
		return "", apierrors.NewEmptyInputError("export")
	}

	err := writeAtomic(fullPath, func(out io.Writer) error {
		return WriteXLSX(records, out)
	})
	if err != nil {
		return "", asIOError(fullPath, err)
	}
	return fullPath, nil
}

// WriteXLSX writes a single-sheet workbook of records to sink
func WriteXLSX(records domain.RecordSet, sink io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return apierrors.NewIOError("failed to name sheet", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return apierrors.NewIOError("failed to write headers", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apierrors.NewIOError(fmt.Sprintf("failed to address record %d", i), err)
		}
		row := []interface{}{record.Day, record.Sales, record.GrowthRate}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return apierrors.NewIOError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	if _, err := f.WriteTo(sink); err != nil {
		return apierrors.NewIOError("failed to write workbook", err)
	}
	return nil
}
