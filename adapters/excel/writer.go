package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"synaptology/domain/table"

	"github.com/xuri/excelize/v2"
)

// DataWriter writes tables as CSV or XLSX depending on the target extension
type DataWriter struct{}

// NewDataWriter creates a new data writer
func NewDataWriter() *DataWriter {
	return &DataWriter{}
}

// WriteTable writes the header row followed by every data row
func (w *DataWriter) WriteTable(path string, t *table.Table) error {
	switch DetectFileType(path) {
	case FileTypeXLSX:
		return w.writeExcel(path, t)
	default:
		return w.writeCSV(path, t)
	}
}

func (w *DataWriter) writeCSV(path string, t *table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return file.Close()
}

func (w *DataWriter) writeExcel(path string, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(DefaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range t.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(rec))
		for j, v := range rec {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(DefaultSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// cellValue stores integers as numbers so spreadsheet formulas work on synapse columns
func cellValue(v string) interface{} {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}
