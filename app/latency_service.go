package app

import (
	"context"

	"synaptology/internal/analysis"
	"synaptology/internal/report"
)

// LatencyService groups loaded records and summarises their latencies
type LatencyService struct {
	measurements *MeasurementService
	windows      analysis.AfferentWindows
}

// LatencyResult holds the latency analysis of one run
type LatencyResult struct {
	Set       *MeasurementSet
	Groups    analysis.Groups
	Summaries map[string]analysis.Summary
	Afferents map[analysis.AfferentClass]analysis.Collection
	Points    []analysis.LatencyPoint
}

// NewLatencyService creates a latency service with the default afferent windows
func NewLatencyService(measurements *MeasurementService) *LatencyService {
	return &LatencyService{
		measurements: measurements,
		windows:      analysis.DefaultAfferentWindows(),
	}
}

// Analyze loads the configured measurements and summarises every group.
func (s *LatencyService) Analyze(ctx context.Context) (*LatencyResult, error) {
	set, err := s.measurements.Load(ctx, "latencies")
	if err != nil {
		return nil, err
	}

	groups := analysis.Group(set.Records)
	summaries := make(map[string]analysis.Summary)
	for _, g := range groups.Named() {
		summaries[g.Name] = g.Records.LatencySummary()
	}

	return &LatencyResult{
		Set:       set,
		Groups:    groups,
		Summaries: summaries,
		Afferents: groups.All.ByAfferent(s.windows),
		Points:    groups.All.LatencyPoints(),
	}, nil
}

// Report builds the markdown report input.
func (r *LatencyResult) Report() report.LatencyReport {
	return report.LatencyReport{
		Manifest:   r.Set.Manifest,
		Groups:     r.Groups,
		Afferents:  r.Afferents,
		Rejections: r.Set.Rejections,
	}
}
