package testkit

import (
	"synaptology/domain/synaptology"
	"synaptology/domain/table"
)

// Subject is one index/weight row pair of a wide synaptic table. Depths and Weights are
// keyed by input channel; channels left out are blank.
type Subject struct {
	ID      string
	Depths  map[string]string
	Weights map[string]string
	Notes   map[string]string
}

// WideTable builds a wide table with every identifier and input channel column.
func WideTable(subjects ...Subject) *table.Table {
	headers := append(append([]string(nil), synaptology.Identifiers...), synaptology.Inputs...)
	t := &table.Table{Headers: headers}
	for _, s := range subjects {
		index := table.Row{}
		weights := table.Row{}
		for _, h := range headers {
			index[h] = ""
			weights[h] = ""
		}
		index["ID"] = s.ID
		weights["ID"] = s.ID
		for k, v := range s.Notes {
			index[k] = v
		}
		for ch, v := range s.Depths {
			index[ch] = v
		}
		for ch, v := range s.Weights {
			weights[ch] = v
		}
		t.Rows = append(t.Rows, index, weights)
	}
	return t
}
