package app

import (
	"fmt"

	"synaptology/domain/synaptology"
	"synaptology/internal"
	apperrors "synaptology/internal/errors"
	"synaptology/internal/tidy"
	"synaptology/ports"
)

// ConversionService converts wide synaptic tables to tidy form and reduces tidy tables
type ConversionService struct {
	reader ports.TableReader
	writer ports.TableWriter
}

// ConversionResult describes a written table
type ConversionResult struct {
	Output  string
	Rows    int
	Columns int
}

// NewConversionService creates a conversion service
func NewConversionService(reader ports.TableReader, writer ports.TableWriter) *ConversionService {
	return &ConversionService{
		reader: reader,
		writer: writer,
	}
}

// Convert reads a wide table, converts it in the given weight mode and writes the tidy
// table. The mode is checked before the input is opened, and nothing is written when
// conversion fails.
func (s *ConversionService) Convert(input, output, mode string) (*ConversionResult, error) {
	weightMode, err := synaptology.ParseWeightMode(mode)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}

	wide, err := s.reader.ReadTable(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read wide table: %w", err)
	}

	tidyTable, err := tidy.Convert(wide, weightMode)
	if err != nil {
		return nil, fmt.Errorf("conversion of %s failed: %w", input, err)
	}

	out := tidyTable.Table()
	if err := s.writer.WriteTable(output, out); err != nil {
		return nil, fmt.Errorf("failed to write tidy table: %w", err)
	}
	internal.DefaultLogger.Info("[Conversion] Wrote %d subjects to %s", len(out.Rows), output)

	return &ConversionResult{Output: output, Rows: len(out.Rows), Columns: len(out.Headers)}, nil
}

// Reduce reads a tidy table and writes its depth-band reduction.
func (s *ConversionService) Reduce(input, output string) (*ConversionResult, error) {
	in, err := s.reader.ReadTable(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read tidy table: %w", err)
	}

	tidyTable, err := tidy.FromTable(in)
	if err != nil {
		return nil, fmt.Errorf("reduction of %s failed: %w", input, err)
	}

	out := tidy.Reduce(tidyTable)
	if err := s.writer.WriteTable(output, out); err != nil {
		return nil, fmt.Errorf("failed to write reduced table: %w", err)
	}
	internal.DefaultLogger.Info("[Conversion] Wrote %d reduced rows to %s", len(out.Rows), output)

	return &ConversionResult{Output: output, Rows: len(out.Rows), Columns: len(out.Headers)}, nil
}
