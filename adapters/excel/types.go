package excel

import (
	"path/filepath"
	"strings"
)

// FileType identifies a supported table format
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// DetectFileType picks the format from the path's extension, defaulting to CSV.
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FileTypeXLSX
	default:
		return FileTypeCSV
	}
}

// DefaultSheet is the sheet written to new workbooks
const DefaultSheet = "Sheet1"
