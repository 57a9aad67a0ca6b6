package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func TestAnalyzeStabilityLinearRamp(t *testing.T) {
	lat := series(25, func(int) float64 { return 3 })
	ramp := newRecord(t, "N01", "dr", 1, 0, lat, series(25, func(i int) float64 { return 10 + 0.5*float64(i) }))
	flat := newRecord(t, "N02", "dr", 1, 0, lat, series(25, func(int) float64 { return 4 }))
	short := newRecord(t, "N03", "dr", 1, 0, lat[:5], series(5, func(i int) float64 { return float64(i) }))
	inhibitory := newRecord(t, "N04", "dr", -1, 0, lat, series(25, func(int) float64 { return 4 }))
	strong := newRecord(t, "N05", "dr", 2, 0, lat, series(25, func(int) float64 { return 4 }))

	report := AnalyzeStability(Collection{ramp, flat, short, inhibitory, strong, ramp}, DefaultStabilityCriteria())

	require.Len(t, report.Records, 3)
	assert.InDelta(t, 0.5, report.Records[0].Slope, 1e-9)
	assert.True(t, report.Records[0].Drifting)
	assert.InDelta(t, 0.0, report.Records[1].Slope, 1e-9)
	assert.InDelta(t, 0.0, report.Records[1].CV, 1e-9)
	assert.False(t, report.Records[1].Drifting)
	assert.False(t, report.Records[1].Variable)

	assert.Len(t, report.Drifting(), 2)
	assert.Empty(t, report.Variable())
	assert.Equal(t, []string{"N01", "N02"}, report.Subjects)
	assert.Equal(t, []string{"dr", "dr", "dr"}, report.Sources)
	assert.InDelta(t, 25.0, report.SupportMean, 1e-9)
	assert.InDelta(t, 0.0, report.SupportStd, 1e-9)
	assert.InDelta(t, 1.0/3.0, report.Slopes.Mean, 1e-9)
}

func TestAnalyzeStabilityFlagsVariableRecord(t *testing.T) {
	lat := series(20, func(int) float64 { return 3 })
	amps := series(20, func(i int) float64 {
		if i%2 == 0 {
			return 1
		}
		return 3
	})
	rec := newRecord(t, "N01", "ikns", 1, 0, lat, amps)

	report := AnalyzeStability(Collection{rec}, DefaultStabilityCriteria())

	require.Len(t, report.Records, 1)
	assert.InDelta(t, 0.5, report.Records[0].CV, 1e-9)
	assert.True(t, report.Records[0].Variable)
}

func TestAnalyzeStabilityEmpty(t *testing.T) {
	report := AnalyzeStability(nil, DefaultStabilityCriteria())
	assert.Empty(t, report.Records)
	assert.Equal(t, Dispersion{}, report.Slopes)
	assert.Zero(t, report.SupportMean)
}
