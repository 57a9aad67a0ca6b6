package app

import (
	"context"
	"fmt"

	"synaptology/adapters/subjects"
	"synaptology/domain/psp"
	"synaptology/domain/run"
	"synaptology/internal"
	"synaptology/internal/config"
	"synaptology/internal/ingest"
	"synaptology/ports"
)

// MeasurementService discovers and loads measurement files for the analysis services
type MeasurementService struct {
	tables   ports.TableReader
	matrices ports.MatrixReader
	cfg      *config.Config
}

// MeasurementSet is one loaded batch with its run manifest
type MeasurementSet struct {
	Manifest   *run.Manifest
	Records    []psp.Record
	Rejections []ingest.Rejection
}

// NewMeasurementService creates a measurement service
func NewMeasurementService(tables ports.TableReader, matrices ports.MatrixReader, cfg *config.Config) *MeasurementService {
	return &MeasurementService{
		tables:   tables,
		matrices: matrices,
		cfg:      cfg,
	}
}

// Load discovers measurement files under the configured directory and loads them against
// the subject latency table. Per-file problems become rejections; an unreadable subject
// table or data directory fails the run.
func (s *MeasurementService) Load(ctx context.Context, command string) (*MeasurementSet, error) {
	lookup, err := s.subjectLatencies()
	if err != nil {
		return nil, err
	}

	paths, err := ingest.Discover(s.cfg.Data.MeasurementDir, s.cfg.Data.MeasurementPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to discover measurements: %w", err)
	}
	internal.DefaultLogger.Info("[Measurements] Found %d files in %s", len(paths), s.cfg.Data.MeasurementDir)

	manifest := run.NewManifest(command, paths, s.cfg.Data.SubjectTable)
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	correction := psp.Correction{DeepRadialMs: s.cfg.Analysis.DeepRadialCorrectionMs}
	loader := ingest.NewLoader(s.matrices, lookup, correction, s.cfg.Data.Workers)
	result, err := loader.LoadAll(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load measurements: %w", err)
	}

	return &MeasurementSet{
		Manifest:   manifest,
		Records:    result.Records,
		Rejections: result.Rejections,
	}, nil
}

func (s *MeasurementService) subjectLatencies() (ports.SkinLatencyLookup, error) {
	if s.cfg.Data.SubjectTable == "" {
		internal.DefaultLogger.Warn("[Measurements] No subject table configured, all skin latencies unknown")
		return subjects.NewLatencyTable(nil), nil
	}
	table, err := subjects.Load(s.tables, s.cfg.Data.SubjectTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject table: %w", err)
	}
	internal.DefaultLogger.Info("[Measurements] %d subjects with skin latency", table.Len())
	return table, nil
}
