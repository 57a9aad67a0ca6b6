package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Ingestion errors (soft: the file is skipped, the run continues)
	ErrIngestion         = errors.New("measurement rejected")
	ErrUnmatchedFilename = fmt.Errorf("%w: filename does not match measurement pattern", ErrIngestion)
	ErrColumnCount       = fmt.Errorf("%w: unsupported column count", ErrIngestion)
	ErrUnknownSource     = fmt.Errorf("%w: unknown source", ErrIngestion)
	ErrNoSamples         = fmt.Errorf("%w: no samples with positive latency", ErrIngestion)
	ErrUnreadable        = fmt.Errorf("%w: unreadable measurement file", ErrIngestion)

	// Conversion errors (fatal: the whole conversion aborts)
	ErrConversion       = errors.New("conversion aborted")
	ErrWeightOverflow   = fmt.Errorf("%w: more weights than depths", ErrConversion)
	ErrOddRowCount      = fmt.Errorf("%w: odd number of rows in paired table", ErrConversion)
	ErrMissingColumn    = fmt.Errorf("%w: missing column", ErrConversion)
	ErrDepthOutOfRange  = fmt.Errorf("%w: relative depth out of range", ErrConversion)
	ErrMalformedList    = fmt.Errorf("%w: malformed value list", ErrConversion)
	ErrWeightModeUnset  = errors.New("weight mode must be weight or noweight")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewColumnCountError(path string, width int) error {
	return fmt.Errorf("%w: %s has %d columns, want 3 or 4", ErrColumnCount, path, width)
}

func NewUnknownSourceError(path, source string) error {
	return fmt.Errorf("%w %q in %s", ErrUnknownSource, source, path)
}

func NewWeightOverflowError(pair int, channel string, depths, weights int) error {
	return fmt.Errorf("%w: pair %d channel %s has %d depths and %d weights", ErrWeightOverflow, pair, channel, depths, weights)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w %q", ErrMissingColumn, column)
}

func NewDepthOutOfRangeError(pair int, channel string, depth int) error {
	return fmt.Errorf("%w: pair %d channel %s depth %d", ErrDepthOutOfRange, pair, channel, depth)
}

// Error checking helpers
func IsIngestionError(err error) bool {
	return errors.Is(err, ErrIngestion)
}

func IsConversionError(err error) bool {
	return errors.Is(err, ErrConversion) || errors.Is(err, ErrWeightModeUnset)
}
