// Package tidy converts row-paired wide synaptic tables into one tidy row per subject and
// reduces tidy tables to coarse depth bands.
package tidy

import (
	"fmt"

	"synaptology/domain/core"
	"synaptology/domain/synaptology"
	"synaptology/domain/table"
	"synaptology/internal"
)

// pairing is one depth with its weight, or no weight when the weight list ran short
type pairing struct {
	depth     int
	weight    int
	hasWeight bool
}

// Convert consumes the wide table in consecutive (index row, weight row) pairs and builds
// one tidy row per pair. Every failure is fatal and leaves no partial output.
func Convert(wide *table.Table, mode synaptology.WeightMode) (*synaptology.TidyTable, error) {
	if !mode.Valid() {
		return nil, core.ErrWeightModeUnset
	}
	if wide == nil {
		return nil, fmt.Errorf("%w: no input table", core.ErrConversion)
	}
	if len(wide.Rows)%2 != 0 {
		return nil, fmt.Errorf("%w: %d rows", core.ErrOddRowCount, len(wide.Rows))
	}
	for _, col := range append(append([]string(nil), synaptology.Identifiers...), synaptology.Inputs...) {
		if !wide.HasColumn(col) {
			return nil, core.NewMissingColumnError(col)
		}
	}

	out := &synaptology.TidyTable{Rows: make([]synaptology.TidyRow, 0, len(wide.Rows)/2)}
	for i := 0; i < len(wide.Rows); i += 2 {
		pair := i / 2
		index, weights := wide.Rows[i], wide.Rows[i+1]

		row := synaptology.NewTidyRow()
		for _, ch := range synaptology.Inputs {
			pairs, err := pairChannel(pair, ch, index[ch], weights[ch])
			if err != nil {
				return nil, err
			}
			for _, p := range pairs {
				row.Cells[synaptology.ColumnName(ch, p.depth)] = cellFor(p, mode)
			}
		}
		for _, id := range synaptology.Identifiers {
			row.Identifiers[id] = index[id]
		}
		out.Rows = append(out.Rows, row)
	}

	internal.DefaultLogger.Info("[Converter] Converted %d row pairs (%s)", len(out.Rows), mode)
	return out, nil
}

func pairChannel(pair int, channel, rawDepths, rawWeights string) ([]pairing, error) {
	depths, err := ParseDepths(rawDepths)
	if err != nil {
		return nil, fmt.Errorf("pair %d channel %s: %w", pair, channel, err)
	}
	weights, err := ParseWeights(rawWeights)
	if err != nil {
		return nil, fmt.Errorf("pair %d channel %s: %w", pair, channel, err)
	}
	if len(weights) > len(depths) {
		return nil, core.NewWeightOverflowError(pair, channel, len(depths), len(weights))
	}

	pairs := make([]pairing, len(depths))
	for i, d := range depths {
		if d < synaptology.MinDepth || d > synaptology.MaxDepth {
			return nil, core.NewDepthOutOfRangeError(pair, channel, d)
		}
		pairs[i] = pairing{depth: d}
		if i < len(weights) {
			pairs[i].weight = weights[i]
			pairs[i].hasWeight = true
		}
	}
	return pairs, nil
}

func cellFor(p pairing, mode synaptology.WeightMode) synaptology.Cell {
	if mode == synaptology.WeightModeUnweighted {
		return synaptology.Cell{Value: 1}
	}
	if !p.hasWeight {
		return synaptology.Cell{Missing: true}
	}
	return synaptology.Cell{Value: p.weight}
}
