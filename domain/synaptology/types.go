// Package synaptology describes the synaptic connectivity tables: channel names, relative
// depths and the tidy one-row-per-subject layout.
package synaptology

import (
	"strconv"
	"strings"

	"synaptology/domain/core"
	"synaptology/domain/table"
)

// Identifier columns copied verbatim from the index row of each subject pair.
var Identifiers = []string{"ID", "Depth", "Skinlatency", "DR threshold test", "Note1", "Note2", "Note3", "Note4", "Note5"}

// Input and output channels, in column order.
var (
	Inputs  = []string{"Skin", "Ia", "Ib", "II", "Pyr"}
	Outputs = []string{"aMN", "LRN"}
)

// Relative depth bounds (inclusive).
const (
	MinDepth = -4
	MaxDepth = 4
)

// ColumnName joins a channel and a relative depth, e.g. "Skin-2" or "Ia3".
func ColumnName(channel string, depth int) string {
	return channel + strconv.Itoa(depth)
}

// ChannelColumns lists every channel/depth column for channels in header order.
func ChannelColumns(channels []string) []string {
	cols := make([]string, 0, len(channels)*(MaxDepth-MinDepth+1))
	for _, ch := range channels {
		for d := MinDepth; d <= MaxDepth; d++ {
			cols = append(cols, ColumnName(ch, d))
		}
	}
	return cols
}

// SynapseColumns is the full set of channel/depth columns of a tidy table.
func SynapseColumns() []string {
	return append(ChannelColumns(Inputs), ChannelColumns(Outputs)...)
}

// WeightMode selects what a paired channel/depth cell holds.
type WeightMode string

const (
	WeightModeUnset      WeightMode = ""
	WeightModeWeighted   WeightMode = "weight"
	WeightModeUnweighted WeightMode = "noweight"
)

// ParseWeightMode accepts the command-line spellings of a weight mode.
func ParseWeightMode(s string) (WeightMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weight", "weighted":
		return WeightModeWeighted, nil
	case "noweight", "unweighted":
		return WeightModeUnweighted, nil
	default:
		return WeightModeUnset, core.ErrWeightModeUnset
	}
}

// Valid reports whether m is one of the two defined modes.
func (m WeightMode) Valid() bool {
	return m == WeightModeWeighted || m == WeightModeUnweighted
}

// Cell is one channel/depth value. Missing marks a depth that was paired with no weight.
type Cell struct {
	Value   int
	Missing bool
}

func (c Cell) String() string {
	if c.Missing {
		return ""
	}
	return strconv.Itoa(c.Value)
}

// TidyRow is one subject: identifier values plus one cell per channel/depth column.
type TidyRow struct {
	Identifiers map[string]string
	Cells       map[string]Cell
}

// NewTidyRow returns a row with every synapse column set to zero.
func NewTidyRow() TidyRow {
	row := TidyRow{
		Identifiers: make(map[string]string, len(Identifiers)),
		Cells:       make(map[string]Cell),
	}
	for _, c := range SynapseColumns() {
		row.Cells[c] = Cell{}
	}
	return row
}

// TidyTable is the converted table, one row per subject pair in input order.
type TidyTable struct {
	Rows []TidyRow
}

// Headers returns identifiers followed by all synapse columns.
func (t *TidyTable) Headers() []string {
	return append(append([]string(nil), Identifiers...), SynapseColumns()...)
}

// Table renders the tidy rows as a string table for writing.
func (t *TidyTable) Table() *table.Table {
	out := &table.Table{Headers: t.Headers()}
	for _, r := range t.Rows {
		row := make(table.Row, len(out.Headers))
		for _, id := range Identifiers {
			row[id] = r.Identifiers[id]
		}
		for col, cell := range r.Cells {
			row[col] = cell.String()
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
