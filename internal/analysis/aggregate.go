package analysis

import (
	"synaptology/domain/psp"

	"github.com/montanaflynn/stats"
)

// Predicate selects records
type Predicate func(psp.Record) bool

// Sign and source predicates. A zero sign is neither inhibitory nor excitatory.
var (
	Inhibitory     Predicate = func(r psp.Record) bool { return r.Metadata.Inhibitory() }
	Excitatory     Predicate = func(r psp.Record) bool { return r.Metadata.Excitatory() }
	FromSkin       Predicate = func(r psp.Record) bool { return r.Metadata.SourceClass() == psp.SourceSkin }
	FromDeepRadial Predicate = func(r psp.Record) bool { return r.Metadata.SourceClass() == psp.SourceDeepRadial }
)

// And intersects predicates.
func And(preds ...Predicate) Predicate {
	return func(r psp.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Collection is an ordered set of records
type Collection []psp.Record

// Filter keeps the records matching pred, in order.
func (c Collection) Filter(pred Predicate) Collection {
	out := make(Collection, 0, len(c))
	for _, r := range c {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Groups holds the standard sign × source partitions of a record set
type Groups struct {
	All                  Collection
	Inhibitory           Collection
	Excitatory           Collection
	Skin                 Collection
	DeepRadial           Collection
	SkinInhibitory       Collection
	SkinExcitatory       Collection
	DeepRadialInhibitory Collection
	DeepRadialExcitatory Collection
}

// Group partitions records by sign and source class.
func Group(records []psp.Record) Groups {
	all := Collection(records)
	return Groups{
		All:                  all,
		Inhibitory:           all.Filter(Inhibitory),
		Excitatory:           all.Filter(Excitatory),
		Skin:                 all.Filter(FromSkin),
		DeepRadial:           all.Filter(FromDeepRadial),
		SkinInhibitory:       all.Filter(And(FromSkin, Inhibitory)),
		SkinExcitatory:       all.Filter(And(FromSkin, Excitatory)),
		DeepRadialInhibitory: all.Filter(And(FromDeepRadial, Inhibitory)),
		DeepRadialExcitatory: all.Filter(And(FromDeepRadial, Excitatory)),
	}
}

// Named lists the groups with stable display names.
func (g Groups) Named() []NamedCollection {
	return []NamedCollection{
		{"all", g.All},
		{"inhibitory", g.Inhibitory},
		{"excitatory", g.Excitatory},
		{"skin", g.Skin},
		{"deep_radial", g.DeepRadial},
		{"skin_inhibitory", g.SkinInhibitory},
		{"skin_excitatory", g.SkinExcitatory},
		{"deep_radial_inhibitory", g.DeepRadialInhibitory},
		{"deep_radial_excitatory", g.DeepRadialExcitatory},
	}
}

// NamedCollection pairs a collection with its display name
type NamedCollection struct {
	Name    string
	Records Collection
}

// Summary describes the distribution of per-record means across a collection.
// Count is zero and the other fields are zero for an empty selection.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// LatencyEligible reports whether a record may enter latency aggregates.
func LatencyEligible(r psp.Record) bool {
	return r.SkinLatencyKnown()
}

// LatencySummary summarises mean latencies, leaving out records whose subject has no
// known skin latency.
func (c Collection) LatencySummary() Summary {
	values := make([]float64, 0, len(c))
	for _, r := range c {
		if LatencyEligible(r) {
			values = append(values, r.Latency.Mean)
		}
	}
	return summarize(values)
}

// AmplitudeSummary summarises mean amplitudes over every record.
func (c Collection) AmplitudeSummary() Summary {
	values := make([]float64, 0, len(c))
	for _, r := range c {
		values = append(values, r.Amplitude.Mean)
	}
	return summarize(values)
}

// LatencyPoint is one record's latency mean/variance pair for scatter plots
type LatencyPoint struct {
	SubjectID    string  `json:"subject_id"`
	MeanLatency  float64 `json:"mean_latency"`
	LatencyVar   float64 `json:"latency_variance"`
	SynapticSign int     `json:"synaptic_sign"`
}

// LatencyPoints returns the latency-eligible records as plot points, in order.
func (c Collection) LatencyPoints() []LatencyPoint {
	points := make([]LatencyPoint, 0, len(c))
	for _, r := range c {
		if !LatencyEligible(r) {
			continue
		}
		points = append(points, LatencyPoint{
			SubjectID:    r.Metadata.SubjectID,
			MeanLatency:  r.Latency.Mean,
			LatencyVar:   r.Latency.Variance,
			SynapticSign: r.Metadata.SynapticSign,
		})
	}
	return points
}

func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	// inputs are non-empty, so the stats calls cannot fail
	mean, _ := stats.Mean(values)
	variance, _ := stats.PopulationVariance(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return Summary{Count: len(values), Mean: mean, Variance: variance, Min: min, Max: max}
}
