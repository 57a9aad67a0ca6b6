package psp

import (
	"fmt"

	"synaptology/domain/core"

	"github.com/montanaflynn/stats"
)

// Record is one loaded and corrected measurement. It is built once by NewRecord and
// never mutated; sample accessors return copies.
type Record struct {
	Path        string           `json:"path"`
	Metadata    FilenameMetadata `json:"metadata"`
	SkinLatency float64          `json:"skin_latency"`
	Latency     Stats            `json:"latency"`
	Amplitude   Stats            `json:"amplitude"`

	latencies  []float64
	amplitudes []float64
}

// column layout of a raw measurement matrix, by width
type layout struct {
	latency   int
	amplitude int
}

var layouts = map[int]layout{
	3: {latency: 0, amplitude: 1},
	4: {latency: 1, amplitude: 2},
}

// NewRecord selects the latency and amplitude columns of matrix, drops rows whose latency
// is not positive, applies the source correction and computes the summary statistics.
// A matrix that cannot yield a complete record returns an error wrapping core.ErrIngestion.
func NewRecord(path string, meta FilenameMetadata, skinLatency float64, matrix [][]float64, corr Correction) (Record, error) {
	width := matrixWidth(matrix)
	cols, ok := layouts[width]
	if !ok {
		return Record{}, core.NewColumnCountError(path, width)
	}

	var offset float64
	switch meta.SourceClass() {
	case SourceSkin:
		// an unknown skin latency is never subtracted; such records are kept out of
		// latency summaries downstream instead
		if skinLatency < SentinelThreshold {
			offset = skinLatency
		}
	case SourceDeepRadial:
		offset = corr.DeepRadialMs
	default:
		return Record{}, core.NewUnknownSourceError(path, meta.Source)
	}

	latencies := make([]float64, 0, len(matrix))
	amplitudes := make([]float64, 0, len(matrix))
	for _, row := range matrix {
		if !(row[cols.latency] > 0) {
			continue
		}
		latencies = append(latencies, row[cols.latency]-offset)
		amplitudes = append(amplitudes, row[cols.amplitude])
	}
	if len(latencies) == 0 {
		return Record{}, fmt.Errorf("%w: %s", core.ErrNoSamples, path)
	}

	latencyStats, err := summarize(latencies)
	if err != nil {
		return Record{}, fmt.Errorf("latency statistics for %s: %w", path, err)
	}
	amplitudeStats, err := summarize(amplitudes)
	if err != nil {
		return Record{}, fmt.Errorf("amplitude statistics for %s: %w", path, err)
	}

	return Record{
		Path:        path,
		Metadata:    meta,
		SkinLatency: skinLatency,
		Latency:     latencyStats,
		Amplitude:   amplitudeStats,
		latencies:   latencies,
		amplitudes:  amplitudes,
	}, nil
}

// matrixWidth returns the shared row width, or -1 for a ragged matrix and 0 for an empty one.
func matrixWidth(matrix [][]float64) int {
	if len(matrix) == 0 {
		return 0
	}
	width := len(matrix[0])
	for _, row := range matrix[1:] {
		if len(row) != width {
			return -1
		}
	}
	return width
}

func summarize(values []float64) (Stats, error) {
	mean, err := stats.Mean(values)
	if err != nil {
		return Stats{}, err
	}
	variance, err := stats.PopulationVariance(values)
	if err != nil {
		return Stats{}, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return Stats{}, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Mean: mean, Variance: variance, Min: min, Max: max}, nil
}

// SkinLatencyKnown reports whether the subject's skin latency was found.
func (r Record) SkinLatencyKnown() bool {
	return r.SkinLatency < SentinelThreshold
}

// Latencies returns a copy of the corrected latency samples.
func (r Record) Latencies() []float64 {
	return append([]float64(nil), r.latencies...)
}

// Amplitudes returns a copy of the amplitude samples.
func (r Record) Amplitudes() []float64 {
	return append([]float64(nil), r.amplitudes...)
}

// Support is the number of retained samples.
func (r Record) Support() int {
	return len(r.latencies)
}

func (r Record) String() string {
	m := r.Metadata
	return fmt.Sprintf("%s %s %s %d syn:%d amp:%d avg_latency:%g var_latency:%g",
		m.SubjectID, m.Description, m.Source, m.StimulationLevel, m.SynapticSign, m.Amplitude,
		r.Latency.Mean, r.Latency.Variance)
}
