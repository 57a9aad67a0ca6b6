package analysis

import (
	"math"

	"synaptology/domain/psp"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// StabilityCriteria selects and flags records for amplitude stability analysis
type StabilityCriteria struct {
	MinSupport int
	SlopeLimit float64
	CVLimit    float64
}

// DefaultStabilityCriteria returns the standard selection and flag thresholds.
func DefaultStabilityCriteria() StabilityCriteria {
	return StabilityCriteria{MinSupport: 20, SlopeLimit: 0.20, CVLimit: 0.30}
}

// RecordStability is the amplitude trend of one record across its samples
type RecordStability struct {
	Record psp.Record `json:"-"`
	Path   string     `json:"path"`
	Slope  float64    `json:"slope"`
	CV     float64    `json:"cv"`
	// Drifting is set when the slope exceeds the limit.
	Drifting bool `json:"drifting"`
	// Variable is set when the CV exceeds the limit.
	Variable bool `json:"variable"`
}

// Dispersion summarises a set of per-record values
type Dispersion struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Std      float64 `json:"std"`
	CV       float64 `json:"cv"`
}

// StabilityReport is the result of AnalyzeStability
type StabilityReport struct {
	Criteria    StabilityCriteria `json:"criteria"`
	Records     []RecordStability `json:"records"`
	Slopes      Dispersion        `json:"slopes"`
	CVs         Dispersion        `json:"cvs"`
	SupportMean float64           `json:"support_mean"`
	SupportStd  float64           `json:"support_std"`
	Subjects    []string          `json:"subjects"`
	Sources     []string          `json:"sources"`
}

// Drifting returns the records whose slope exceeds the limit.
func (r StabilityReport) Drifting() []RecordStability {
	var out []RecordStability
	for _, s := range r.Records {
		if s.Drifting {
			out = append(out, s)
		}
	}
	return out
}

// Variable returns the records whose coefficient of variation exceeds the limit.
func (r StabilityReport) Variable() []RecordStability {
	var out []RecordStability
	for _, s := range r.Records {
		if s.Variable {
			out = append(out, s)
		}
	}
	return out
}

// Selected reports whether a record enters stability analysis: an excitatory sign of
// exactly 1 and enough amplitude samples.
func (c StabilityCriteria) Selected(r psp.Record) bool {
	return r.Metadata.SynapticSign == 1 && r.Support() >= c.MinSupport
}

// AnalyzeStability fits a linear amplitude trend against sample index for each selected
// record and flags drifting or highly variable ones. An empty selection yields an empty
// report with zero dispersions.
func AnalyzeStability(c Collection, criteria StabilityCriteria) StabilityReport {
	report := StabilityReport{Criteria: criteria, Records: []RecordStability{}, Subjects: []string{}, Sources: []string{}}

	var slopes, cvs, supports []float64
	seenSubject := make(map[string]bool)
	for _, rec := range c {
		if !criteria.Selected(rec) {
			continue
		}
		amps := rec.Amplitudes()
		slope := trendSlope(amps)
		cv := coefficientOfVariation(amps)

		report.Records = append(report.Records, RecordStability{
			Record:   rec,
			Path:     rec.Path,
			Slope:    slope,
			CV:       cv,
			Drifting: slope > criteria.SlopeLimit,
			Variable: cv > criteria.CVLimit,
		})
		slopes = append(slopes, slope)
		cvs = append(cvs, cv)
		supports = append(supports, float64(len(amps)))

		if !seenSubject[rec.Metadata.SubjectID] {
			seenSubject[rec.Metadata.SubjectID] = true
			report.Subjects = append(report.Subjects, rec.Metadata.SubjectID)
		}
		report.Sources = append(report.Sources, rec.Metadata.Source)
	}

	report.Slopes = disperse(slopes)
	report.CVs = disperse(cvs)
	if len(supports) > 0 {
		report.SupportMean, _ = stats.Mean(supports)
		report.SupportStd, _ = stats.StandardDeviationPopulation(supports)
	}
	return report
}

// trendSlope is the least-squares slope of values against their index.
func trendSlope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, values, nil, false)
	return beta
}

// coefficientOfVariation is population std over mean; zero when the mean is zero.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, _ := stats.Mean(values)
	if mean == 0 {
		return 0
	}
	std, _ := stats.StandardDeviationPopulation(values)
	return std / mean
}

func disperse(values []float64) Dispersion {
	if len(values) == 0 {
		return Dispersion{}
	}
	mean, _ := stats.Mean(values)
	variance, _ := stats.PopulationVariance(values)
	std := math.Sqrt(variance)
	var cv float64
	if mean != 0 {
		cv = std / mean
	}
	return Dispersion{Mean: mean, Variance: variance, Std: std, CV: cv}
}
