// Package subjects loads per-subject reference values such as skin latency.
package subjects

import (
	"strconv"
	"strings"

	"synaptology/domain/table"
	"synaptology/internal"
	"synaptology/internal/errors"
	"synaptology/ports"
)

// Column names of the subject table
const (
	ColumnID          = "ID"
	ColumnSkinLatency = "Skinlatency"
)

// LatencyTable is an immutable subject ID → skin latency mapping
type LatencyTable struct {
	latencies map[string]float64
}

var _ ports.SkinLatencyLookup = (*LatencyTable)(nil)

// NewLatencyTable builds a lookup from explicit values.
func NewLatencyTable(values map[string]float64) *LatencyTable {
	latencies := make(map[string]float64, len(values))
	for id, v := range values {
		latencies[id] = v
	}
	return &LatencyTable{latencies: latencies}
}

// FromTable builds the lookup from a table with ID and Skinlatency columns. The first row
// of a duplicated ID wins; blank or non-numeric latencies leave the subject unknown.
func FromTable(t *table.Table) (*LatencyTable, error) {
	for _, col := range []string{ColumnID, ColumnSkinLatency} {
		if !t.HasColumn(col) {
			return nil, errors.InvalidInput("subject table is missing column " + col)
		}
	}

	latencies := make(map[string]float64, len(t.Rows))
	for i, row := range t.Rows {
		id := strings.TrimSpace(row[ColumnID])
		if id == "" {
			continue
		}
		if _, seen := latencies[id]; seen {
			internal.DefaultLogger.Debug("[Subjects] Duplicate subject %s on row %d ignored", id, i+2)
			continue
		}
		raw := strings.TrimSpace(row[ColumnSkinLatency])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if raw != "" {
				internal.DefaultLogger.Warn("[Subjects] Subject %s has unparsable skin latency %q", id, raw)
			}
			continue
		}
		latencies[id] = v
	}

	return &LatencyTable{latencies: latencies}, nil
}

// Load reads the subject table at path with reader.
func Load(reader ports.TableReader, path string) (*LatencyTable, error) {
	t, err := reader.ReadTable(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read subject table %s", path)
	}
	return FromTable(t)
}

// SkinLatency implements ports.SkinLatencyLookup
func (l *LatencyTable) SkinLatency(subjectID string) (float64, bool) {
	v, ok := l.latencies[subjectID]
	return v, ok
}

// Len returns the number of subjects with a known skin latency.
func (l *LatencyTable) Len() int {
	return len(l.latencies)
}
