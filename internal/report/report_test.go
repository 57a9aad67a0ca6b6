package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"synaptology/domain/psp"
	"synaptology/domain/run"
	"synaptology/internal/analysis"
	"synaptology/internal/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords(t *testing.T) []psp.Record {
	t.Helper()
	build := func(subject, source string, sign int, latency float64) psp.Record {
		meta := psp.FilenameMetadata{SubjectID: subject, Description: "x", Source: source, StimulationLevel: 1, SynapticSign: sign, Amplitude: 1}
		rec, err := psp.NewRecord(subject+".dat", meta, 1.0, [][]float64{{latency, 2, 0}}, psp.DefaultCorrection())
		require.NoError(t, err)
		return rec
	}
	return []psp.Record{
		build("N01", "ikns", 1, 5),
		build("N02", "dr", 1, 2.2),
		build("N03", "dr", -1, 5),
	}
}

func TestLatencyReportMarkdown(t *testing.T) {
	records := sampleRecords(t)
	manifest := run.NewManifest("latencies", []string{"a.dat", "b.dat"}, "subjects.csv")
	groups := analysis.Group(records)

	md := LatencyReport{
		Manifest:   manifest,
		Groups:     groups,
		Afferents:  groups.All.ByAfferent(analysis.DefaultAfferentWindows()),
		Rejections: []ingest.Rejection{{Path: "/data/bad.dat", Reason: errors.New("unsupported column count")}},
	}.Markdown()

	assert.Contains(t, md, manifest.RunID.String())
	assert.Contains(t, md, "| all | 3 | 3 |")
	assert.Contains(t, md, "| deep_radial_inhibitory | 1 | 1 |")
	assert.Contains(t, md, "| ia_monosynaptic_epsp | 1 |")
	assert.Contains(t, md, "## Rejected Files (1)")
	assert.Contains(t, md, "`bad.dat`: unsupported column count")
}

func TestAmplitudeReportMarkdown(t *testing.T) {
	groups := analysis.Group(sampleRecords(t))
	stability := analysis.AnalyzeStability(groups.All, analysis.DefaultStabilityCriteria())

	md := AmplitudeReport{Groups: groups, Stability: stability}.Markdown()

	assert.NotContains(t, md, "## Run")
	assert.Contains(t, md, "| all | 3 | 2.000 |")
	assert.Contains(t, md, "Records analysed: 0 from 0 subjects")
	assert.NotContains(t, md, "Flagged Records")
	assert.Contains(t, md, "None.")
}

func TestWriteRendersHTMLByExtension(t *testing.T) {
	dir := t.TempDir()
	md := "# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"

	mdPath := filepath.Join(dir, "out.md")
	require.NoError(t, Write(mdPath, "Report", md))
	raw, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, md, string(raw))

	htmlPath := filepath.Join(dir, "out.html")
	require.NoError(t, Write(htmlPath, "Report", md))
	raw, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	page := string(raw)
	assert.Contains(t, page, "<title>Report</title>")
	assert.Contains(t, page, "<table>")
	assert.True(t, strings.Contains(page, "<h1"), page)
}

func TestWriteFailure(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "out.md"), "Report", "x")
	require.Error(t, err)
}
