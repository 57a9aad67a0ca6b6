// Package rawdata reads the headerless, comma-delimited numeric files produced by the
// recording setup.
package rawdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MatrixReader implements ports.MatrixReader for comma-delimited measurement files
type MatrixReader struct{}

// NewMatrixReader creates a measurement matrix reader
func NewMatrixReader() *MatrixReader {
	return &MatrixReader{}
}

// ReadMatrix parses every non-blank, non-comment line into a row of floats. Rows may differ
// in width; checking the shape is left to the caller.
func (r *MatrixReader) ReadMatrix(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseMatrix(file)
}

// ParseMatrix reads a numeric matrix from rd.
func ParseMatrix(rd io.Reader) ([][]float64, error) {
	reader := csv.NewReader(rd)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var matrix [][]float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		row := make([]float64, len(record))
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: invalid number %q", line, i+1, cell)
			}
			row[i] = v
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}
