package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"synaptology/domain/table"
	"synaptology/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV tables
type DataReader struct {
	// Sheet selects the workbook sheet; empty means the first sheet.
	Sheet string
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader() *DataReader {
	return &DataReader{}
}

// ReadTable reads a headed table from a CSV or XLSX file
func (r *DataReader) ReadTable(path string) (*table.Table, error) {
	fileType := DetectFileType(path)
	internal.DefaultLogger.Debug("[DataReader] Reading %s file: %s", fileType, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(string(fileType)), path)
	}

	switch fileType {
	case FileTypeXLSX:
		return r.readExcelData(path)
	default:
		return r.readCSVData(path)
	}
}

// readExcelData reads the configured sheet into a table
func (r *DataReader) readExcelData(path string) (*table.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	internal.DefaultLogger.Debug("[DataReader] Sheet %s read in %.2fms (%d rows)",
		sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return processRows(rows)
}

// readCSVData reads CSV data into a table
func (r *DataReader) readCSVData(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return processRows(rows)
}

// processRows converts raw string rows into a table keyed by the first row
func processRows(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		if i == 0 {
			header = strings.TrimPrefix(header, "\uFEFF")
		}
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]table.Row, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(table.Row, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = row[j]
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	internal.DefaultLogger.Debug("[DataReader] Table processed (%d columns, %d rows)", len(headers), len(dataRows))

	return &table.Table{Headers: headers, Rows: dataRows}, nil
}
