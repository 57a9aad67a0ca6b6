package app

import (
	"context"

	"synaptology/internal/analysis"
	"synaptology/internal/report"
)

// AmplitudeService summarises amplitudes and analyses their stability across samples
type AmplitudeService struct {
	measurements *MeasurementService
	criteria     analysis.StabilityCriteria
}

// AmplitudeResult holds the amplitude analysis of one run
type AmplitudeResult struct {
	Set       *MeasurementSet
	Groups    analysis.Groups
	Summaries map[string]analysis.Summary
	Stability analysis.StabilityReport
}

// NewAmplitudeService creates an amplitude service
func NewAmplitudeService(measurements *MeasurementService, criteria analysis.StabilityCriteria) *AmplitudeService {
	return &AmplitudeService{
		measurements: measurements,
		criteria:     criteria,
	}
}

// Analyze loads the configured measurements and runs the stability analysis.
func (s *AmplitudeService) Analyze(ctx context.Context) (*AmplitudeResult, error) {
	set, err := s.measurements.Load(ctx, "amplitudes")
	if err != nil {
		return nil, err
	}

	groups := analysis.Group(set.Records)
	summaries := make(map[string]analysis.Summary)
	for _, g := range groups.Named() {
		summaries[g.Name] = g.Records.AmplitudeSummary()
	}

	return &AmplitudeResult{
		Set:       set,
		Groups:    groups,
		Summaries: summaries,
		Stability: analysis.AnalyzeStability(groups.All, s.criteria),
	}, nil
}

// Report builds the markdown report input.
func (r *AmplitudeResult) Report() report.AmplitudeReport {
	return report.AmplitudeReport{
		Manifest:   r.Set.Manifest,
		Groups:     r.Groups,
		Stability:  r.Stability,
		Rejections: r.Set.Rejections,
	}
}
