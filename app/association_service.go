package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"synaptology/domain/run"
	"synaptology/internal"
	"synaptology/internal/association"
	apperrors "synaptology/internal/errors"
	"synaptology/ports"
)

// AnalysisKind selects the statistics an association run tests
type AnalysisKind string

const (
	AnalysisAssociation AnalysisKind = "association"
	AnalysisLoop        AnalysisKind = "loop"
)

// ParseAnalysisKind accepts "association" or "loop", case-insensitively.
func ParseAnalysisKind(s string) (AnalysisKind, error) {
	switch kind := AnalysisKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case AnalysisAssociation, AnalysisLoop:
		return kind, nil
	default:
		return "", apperrors.InvalidInput(fmt.Sprintf("analysis must be association or loop, got %q", s))
	}
}

// AssociationService runs swap randomization tests over presence tables
type AssociationService struct {
	reader ports.TableReader
	writer ports.TableWriter
	swap   association.SwapConfig
}

// AssociationResult holds one association or loop run and the files it wrote
type AssociationResult struct {
	Manifest *run.Manifest
	Kind     AnalysisKind
	Rules    *association.RuleAnalysis
	Loops    *association.LoopAnalysis
	Outputs  []string
}

// NewAssociationService creates an association service
func NewAssociationService(reader ports.TableReader, writer ports.TableWriter, swap association.SwapConfig) *AssociationService {
	return &AssociationService{
		reader: reader,
		writer: writer,
		swap:   swap,
	}
}

// Analyze reads a presence table, runs the requested swap test and writes its reference
// distributions into outputDir: AssociationRules.csv for rules, one file per statistic
// for loops.
func (s *AssociationService) Analyze(ctx context.Context, input, outputDir, kind string) (*AssociationResult, error) {
	analysisKind, err := ParseAnalysisKind(kind)
	if err != nil {
		return nil, err
	}

	in, err := s.reader.ReadTable(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read presence table: %w", err)
	}
	set, err := association.FromTable(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	internal.DefaultLogger.Info("[Association] %d neurons with %d activations from %s", len(set.Neurons), set.Size(), input)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, apperrors.IOError(outputDir, err)
	}

	result := &AssociationResult{
		Manifest: run.NewManifest(string(analysisKind), []string{input}, ""),
		Kind:     analysisKind,
	}

	switch analysisKind {
	case AnalysisAssociation:
		result.Rules, err = association.AnalyzeRules(ctx, set, s.swap)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outputDir, "AssociationRules.csv")
		if err := s.writer.WriteTable(path, association.Distribution(result.Rules.Significances, association.FormatFloat)); err != nil {
			return nil, fmt.Errorf("failed to write rule distributions: %w", err)
		}
		result.Outputs = append(result.Outputs, path)

	case AnalysisLoop:
		result.Loops, err = association.AnalyzeLoops(ctx, set, s.swap)
		if err != nil {
			return nil, err
		}
		for i, sig := range result.Loops.Significances {
			path := filepath.Join(outputDir, sig.Name+".csv")
			if err := s.writer.WriteTable(path, association.Distribution(result.Loops.Significances[i:i+1], association.FormatInt)); err != nil {
				return nil, fmt.Errorf("failed to write %s distribution: %w", sig.Name, err)
			}
			result.Outputs = append(result.Outputs, path)
		}
	}

	internal.DefaultLogger.Info("[Association] Wrote %d distribution tables to %s", len(result.Outputs), outputDir)
	return result, nil
}
