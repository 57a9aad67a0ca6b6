// Package report renders analysis results as markdown, and as HTML through gomarkdown.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"synaptology/domain/run"
	"synaptology/internal/analysis"
	apperrors "synaptology/internal/errors"
	"synaptology/internal/ingest"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// LatencyReport is the input of the latency markdown document
type LatencyReport struct {
	Manifest   *run.Manifest
	Groups     analysis.Groups
	Afferents  map[analysis.AfferentClass]analysis.Collection
	Rejections []ingest.Rejection
}

// AmplitudeReport is the input of the amplitude stability markdown document
type AmplitudeReport struct {
	Manifest   *run.Manifest
	Groups     analysis.Groups
	Stability  analysis.StabilityReport
	Rejections []ingest.Rejection
}

// Markdown renders the latency report.
func (r LatencyReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Synaptic Latencies\n\n")
	writeManifest(&b, r.Manifest)

	b.WriteString("## Latency Summary\n\n")
	b.WriteString("Records without a known skin latency are left out of this table.\n\n")
	b.WriteString("| Group | Records | Eligible | Mean (ms) | Variance | Min | Max |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, g := range r.Groups.Named() {
		s := g.Records.LatencySummary()
		b.WriteString(fmt.Sprintf("| %s | %d | %d | %.3f | %.3f | %.3f | %.3f |\n",
			g.Name, len(g.Records), s.Count, s.Mean, s.Variance, s.Min, s.Max))
	}

	b.WriteString("\n## Afferent Classes\n\n")
	b.WriteString("| Class | Records |\n|---|---|\n")
	for _, class := range analysis.AfferentClasses {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", class, len(r.Afferents[class])))
	}

	writeRejections(&b, r.Rejections)
	return b.String()
}

// Markdown renders the amplitude report.
func (r AmplitudeReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Synaptic Amplitudes\n\n")
	writeManifest(&b, r.Manifest)

	b.WriteString("## Amplitude Summary\n\n")
	b.WriteString("| Group | Records | Mean | Variance | Min | Max |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, g := range r.Groups.Named() {
		s := g.Records.AmplitudeSummary()
		b.WriteString(fmt.Sprintf("| %s | %d | %.3f | %.3f | %.3f | %.3f |\n",
			g.Name, s.Count, s.Mean, s.Variance, s.Min, s.Max))
	}

	st := r.Stability
	b.WriteString("\n## Stability\n\n")
	b.WriteString(fmt.Sprintf("- Criteria: sign 1, support >= %d, slope limit %.2f, CV limit %.2f\n",
		st.Criteria.MinSupport, st.Criteria.SlopeLimit, st.Criteria.CVLimit))
	b.WriteString(fmt.Sprintf("- Records analysed: %d from %d subjects\n", len(st.Records), len(st.Subjects)))
	b.WriteString(fmt.Sprintf("- Support: %.1f ± %.1f samples\n", st.SupportMean, st.SupportStd))
	b.WriteString(fmt.Sprintf("- Slope: mean %.4f, std %.4f, CV %.3f\n", st.Slopes.Mean, st.Slopes.Std, st.Slopes.CV))
	b.WriteString(fmt.Sprintf("- CV: mean %.4f, std %.4f, CV %.3f\n", st.CVs.Mean, st.CVs.Std, st.CVs.CV))
	if len(st.Subjects) > 0 {
		b.WriteString(fmt.Sprintf("- Subjects: %s\n", strings.Join(st.Subjects, ", ")))
	}

	flagged := false
	for _, s := range st.Records {
		if !s.Drifting && !s.Variable {
			continue
		}
		if !flagged {
			b.WriteString("\n### Flagged Records\n\n| Record | Slope | CV | Flags |\n|---|---|---|---|\n")
			flagged = true
		}
		var flags []string
		if s.Drifting {
			flags = append(flags, "drifting")
		}
		if s.Variable {
			flags = append(flags, "variable")
		}
		b.WriteString(fmt.Sprintf("| %s | %.4f | %.3f | %s |\n",
			filepath.Base(s.Path), s.Slope, s.CV, strings.Join(flags, ", ")))
	}

	writeRejections(&b, r.Rejections)
	return b.String()
}

func writeManifest(b *strings.Builder, m *run.Manifest) {
	if m == nil {
		return
	}
	b.WriteString("## Run\n\n")
	b.WriteString(fmt.Sprintf("- Run ID: `%s`\n", m.RunID))
	b.WriteString(fmt.Sprintf("- Command: %s\n", m.Command))
	b.WriteString(fmt.Sprintf("- Inputs: %d files (hash `%s`)\n", m.InputCount, m.InputHash.Short()))
	if m.SubjectTable != "" {
		b.WriteString(fmt.Sprintf("- Subject table: %s\n", m.SubjectTable))
	}
	b.WriteString(fmt.Sprintf("- Created: %s\n\n", m.CreatedAt))
}

func writeRejections(b *strings.Builder, rejections []ingest.Rejection) {
	b.WriteString(fmt.Sprintf("\n## Rejected Files (%d)\n\n", len(rejections)))
	if len(rejections) == 0 {
		b.WriteString("None.\n")
		return
	}
	for _, r := range rejections {
		b.WriteString(fmt.Sprintf("- `%s`: %v\n", filepath.Base(r.Path), r.Reason))
	}
}

// HTML renders a markdown document as a complete HTML page.
func HTML(title, md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}

// Write stores a markdown document at path, rendering HTML for .html and .htm targets.
func Write(path, title, md string) error {
	data := []byte(md)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		data = HTML(title, md)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.IOError(path, err)
	}
	return nil
}
