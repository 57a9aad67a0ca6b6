// Package association looks for co-occurring synaptic inputs in presence tables, as
// written by convert (noweight) and reduce, and rates them against swap-randomized
// reference sets.
package association

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"synaptology/domain/core"
	"synaptology/domain/synaptology"
	"synaptology/domain/table"
)

// ReliableChannels are the input channels read from a presence table. Other channels are
// ignored.
var ReliableChannels = []string{"Skin", "Ia", "Ib"}

var activationColumn = regexp.MustCompile(`^([A-Za-z]+)(-?[0-9])$`)

// Activation is one channel/depth input of a neuron.
type Activation struct {
	Channel string
	Depth   int
}

func (a Activation) String() string {
	return synaptology.ColumnName(a.Channel, a.Depth)
}

func compareActivations(a, b Activation) int {
	if c := strings.Compare(a.Channel, b.Channel); c != 0 {
		return c
	}
	return cmp.Compare(a.Depth, b.Depth)
}

// ParseActivation decodes a column name such as "Ia-2" or "Skin.1". The second return
// value is false for names that are not a reliable channel followed by a single-digit
// depth.
func ParseActivation(column string) (Activation, bool) {
	m := activationColumn.FindStringSubmatch(strings.ReplaceAll(strings.TrimSpace(column), ".", "-"))
	if m == nil || !slices.Contains(ReliableChannels, m[1]) {
		return Activation{}, false
	}
	depth, err := strconv.Atoi(m[2])
	if err != nil {
		return Activation{}, false
	}
	return Activation{Channel: m[1], Depth: depth}, true
}

// Neuron is a subject and its activations, kept sorted by channel then depth.
type Neuron struct {
	ID          string
	Activations []Activation
}

// NewNeuron sorts and deduplicates activations.
func NewNeuron(id string, activations []Activation) Neuron {
	acts := slices.Clone(activations)
	slices.SortFunc(acts, compareActivations)
	return Neuron{ID: id, Activations: slices.Compact(acts)}
}

// Has reports whether the neuron carries a.
func (n Neuron) Has(a Activation) bool {
	_, found := slices.BinarySearchFunc(n.Activations, a, compareActivations)
	return found
}

// Covers reports whether every activation in sub is carried by the neuron.
func (n Neuron) Covers(sub []Activation) bool {
	for _, a := range sub {
		if !n.Has(a) {
			return false
		}
	}
	return true
}

// Set is the neuron population a statistic is evaluated on.
type Set struct {
	Neurons []Neuron
}

// FromTable reads neurons from a presence table. A cell equal to "1" in a reliable
// channel column is an activation; every other cell and column is ignored.
func FromTable(t *table.Table) (*Set, error) {
	if !t.HasColumn("ID") {
		return nil, core.NewMissingColumnError("ID")
	}

	columns := make(map[string]Activation)
	for _, h := range t.Headers {
		if a, ok := ParseActivation(h); ok {
			columns[h] = a
		}
	}

	s := &Set{Neurons: make([]Neuron, 0, len(t.Rows))}
	for _, row := range t.Rows {
		var acts []Activation
		for _, h := range t.Headers {
			a, ok := columns[h]
			if ok && strings.TrimSpace(row[h]) == "1" {
				acts = append(acts, a)
			}
		}
		s.Neurons = append(s.Neurons, NewNeuron(row["ID"], acts))
	}
	return s, nil
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	out := &Set{Neurons: make([]Neuron, len(s.Neurons))}
	for i, n := range s.Neurons {
		out.Neurons[i] = Neuron{ID: n.ID, Activations: slices.Clone(n.Activations)}
	}
	return out
}

// Size is the total number of activations over all neurons.
func (s *Set) Size() int {
	size := 0
	for _, n := range s.Neurons {
		size += len(n.Activations)
	}
	return size
}

// Activations lists the distinct activations of the set in sorted order.
func (s *Set) Activations() []Activation {
	var all []Activation
	for _, n := range s.Neurons {
		all = append(all, n.Activations...)
	}
	slices.SortFunc(all, compareActivations)
	return slices.Compact(all)
}

// ActivationCounts counts the neurons carrying each activation.
func (s *Set) ActivationCounts() map[Activation]int {
	counts := make(map[Activation]int)
	for _, n := range s.Neurons {
		for _, a := range n.Activations {
			counts[a]++
		}
	}
	return counts
}
