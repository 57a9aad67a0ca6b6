package ports

import (
	"synaptology/domain/table"
)

// TableReader loads a headed table from a file path
type TableReader interface {
	ReadTable(path string) (*table.Table, error)
}

// TableWriter persists a headed table to a file path
type TableWriter interface {
	WriteTable(path string, t *table.Table) error
}

// MatrixReader loads a headerless numeric measurement file
type MatrixReader interface {
	ReadMatrix(path string) ([][]float64, error)
}
