// Package testkit writes measurement fixtures to disk for tests and demos.
package testkit

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
)

// Measurement describes one synthetic measurement file
type Measurement struct {
	SubjectID   string
	Description string
	Source      string // raw letters as they appear in the filename, e.g. "Skin" or "DR"
	Stimulation int
	Sign        int
	Amplitude   int
	Rows        [][]float64
}

// Filename renders the measurement's encoded filename.
func (m Measurement) Filename() string {
	return fmt.Sprintf("%s_%s_%s%d_%+d_ampl_%d.dat",
		m.SubjectID, m.Description, m.Source, m.Stimulation, m.Sign, m.Amplitude)
}

// WriteMeasurement writes m below dir and returns its path.
func WriteMeasurement(t testing.TB, dir string, m Measurement) string {
	t.Helper()
	return WriteRaw(t, dir, m.Filename(), FormatRows(m.Rows))
}

// WriteRaw writes content to dir/name, creating dir as needed.
func WriteRaw(t testing.TB, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// FormatRows renders rows as comma-delimited lines.
func FormatRows(rows [][]float64) string {
	var b strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteSubjectTable writes an ID/Skinlatency CSV and returns its path.
func WriteSubjectTable(t testing.TB, dir string, latencies map[string]float64) string {
	t.Helper()
	ids := make([]string, 0, len(latencies))
	for id := range latencies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("ID,Depth,Skinlatency\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "%s,,%s\n", id, strconv.FormatFloat(latencies[id], 'g', -1, 64))
	}
	return WriteRaw(t, dir, "subjects.csv", b.String())
}

// GeneratorConfig controls synthetic dataset generation
type GeneratorConfig struct {
	Subjects         int
	SamplesPerRecord int
	Seed             int64
}

// GenerateMeasurements returns, per subject, one skin EPSP, one skin IPSP, one deep radial
// EPSP and one deep radial IPSP. Raw latencies jitter ±0.1 ms around fixed centres so
// corrected means are predictable.
func GenerateMeasurements(cfg GeneratorConfig) []Measurement {
	rng := rand.New(rand.NewSource(cfg.Seed))

	series := func(center float64) [][]float64 {
		rows := make([][]float64, cfg.SamplesPerRecord)
		for i := range rows {
			rows[i] = []float64{center + (rng.Float64()-0.5)*0.2, 1 + rng.Float64(), 0}
		}
		return rows
	}

	var out []Measurement
	for s := 1; s <= cfg.Subjects; s++ {
		id := fmt.Sprintf("N%02d", s)
		out = append(out,
			Measurement{SubjectID: id, Description: "flexor", Source: "Skin", Stimulation: 2, Sign: 1, Amplitude: 10, Rows: series(4.0)},
			Measurement{SubjectID: id, Description: "flexor", Source: "Skin", Stimulation: 2, Sign: -2, Amplitude: 10, Rows: series(5.0)},
			Measurement{SubjectID: id, Description: "extensor", Source: "DR", Stimulation: 1, Sign: 1, Amplitude: 20, Rows: series(2.2)},
			Measurement{SubjectID: id, Description: "extensor", Source: "DR", Stimulation: 1, Sign: -3, Amplitude: 20, Rows: series(4.7)},
		)
	}
	return out
}
