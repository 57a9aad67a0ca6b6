package testkit

import (
	"os"
	"testing"

	"synaptology/domain/psp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurement_FilenameDecodes(t *testing.T) {
	m := Measurement{SubjectID: "N01", Description: "flexor", Source: "DR", Stimulation: 3, Sign: -2, Amplitude: 15}
	assert.Equal(t, "N01_flexor_DR3_-2_ampl_15.dat", m.Filename())

	meta, ok := psp.ParseFilename(m.Filename())
	require.True(t, ok)
	assert.Equal(t, "dr", meta.Source)
	assert.Equal(t, -2, meta.SynapticSign)
}

func TestGenerateMeasurements_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{Subjects: 2, SamplesPerRecord: 5, Seed: 7}
	a := GenerateMeasurements(cfg)
	b := GenerateMeasurements(cfg)

	require.Len(t, a, 8)
	assert.Equal(t, a, b)
	for _, m := range a {
		assert.Len(t, m.Rows, 5)
	}
}

func TestWriteMeasurement(t *testing.T) {
	dir := t.TempDir()
	path := WriteMeasurement(t, dir, Measurement{
		SubjectID: "A", Description: "b", Source: "Skin", Stimulation: 1, Sign: 1, Amplitude: 1,
		Rows: [][]float64{{1.5, 2, 0}},
	})
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.5,2,0\n", string(data))
}
