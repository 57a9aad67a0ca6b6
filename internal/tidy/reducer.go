package tidy

import (
	"fmt"
	"strconv"
	"strings"

	"synaptology/domain/core"
	"synaptology/domain/synaptology"
	"synaptology/domain/table"
)

// ReducedChannels are the channels kept by Reduce.
var ReducedChannels = []string{"Skin", "Ia", "Ib"}

// band is a reduced column and the tidy depths folded into it
type band struct {
	suffix int
	depths []int
}

var bands = []band{
	{suffix: -2, depths: []int{-2, -3, -4}},
	{suffix: 1, depths: []int{1, 2, 3, 4}},
}

// ReducedHeaders returns ID followed by the band columns of each reduced channel.
func ReducedHeaders() []string {
	headers := []string{"ID"}
	for _, ch := range ReducedChannels {
		for _, b := range bands {
			headers = append(headers, synaptology.ColumnName(ch, b.suffix))
		}
	}
	return headers
}

// present reports whether a cell records a connection. A depth listed without a weight
// still counts.
func present(c synaptology.Cell) bool {
	return c.Missing || c.Value != 0
}

// Reduce folds each reduced channel into a deep band (depths -2..-4) and a superficial
// band (depths 1..4), writing 1 when any folded column is present and 0 otherwise.
func Reduce(t *synaptology.TidyTable) *table.Table {
	out := &table.Table{Headers: ReducedHeaders(), Rows: make([]table.Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		row := table.Row{"ID": r.Identifiers["ID"]}
		for _, ch := range ReducedChannels {
			for _, b := range bands {
				v := "0"
				for _, d := range b.depths {
					if present(r.Cells[synaptology.ColumnName(ch, d)]) {
						v = "1"
						break
					}
				}
				row[synaptology.ColumnName(ch, b.suffix)] = v
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// FromTable reads a tidy table back from its string form. An empty cell in a present
// column is a depth without weight; absent synapse columns read as 0.
func FromTable(t *table.Table) (*synaptology.TidyTable, error) {
	if !t.HasColumn("ID") {
		return nil, core.NewMissingColumnError("ID")
	}
	out := &synaptology.TidyTable{Rows: make([]synaptology.TidyRow, 0, len(t.Rows))}
	for i, r := range t.Rows {
		row := synaptology.NewTidyRow()
		for _, id := range synaptology.Identifiers {
			row.Identifiers[id] = r[id]
		}
		for _, col := range synaptology.SynapseColumns() {
			if !t.HasColumn(col) {
				continue
			}
			raw := strings.TrimSpace(r[col])
			if raw == "" {
				row.Cells[col] = synaptology.Cell{Missing: true}
				continue
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s value %q", core.ErrMalformedList, i+1, col, raw)
			}
			row.Cells[col] = synaptology.Cell{Value: int(f)}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
