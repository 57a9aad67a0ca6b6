package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"synaptology/adapters/excel"
	"synaptology/domain/core"
	"synaptology/internal/association"
	apperrors "synaptology/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reducedCSV = `ID,Skin-2,Skin1,Ia-2,Ia1,Ib-2,Ib1
N01,0,1,0,1,0,0
N02,1,1,0,1,1,0
N03,0,0,1,1,0,0
N04,0,1,0,0,0,1
N05,1,0,0,1,0,1
`

func newAssociationService() *AssociationService {
	return NewAssociationService(excel.NewDataReader(), excel.NewDataWriter(),
		association.SwapConfig{ReferenceSets: 50, Workers: 2, Seed: 1})
}

func writeReduced(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reduced.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAssociationServiceRules(t *testing.T) {
	input := writeReduced(t, reducedCSV)
	outDir := filepath.Join(t.TempDir(), "rules")

	result, err := newAssociationService().Analyze(context.Background(), input, outDir, "Association")
	require.NoError(t, err)

	assert.Equal(t, AnalysisAssociation, result.Kind)
	assert.Equal(t, "association", result.Manifest.Command)
	require.NotNil(t, result.Rules)
	assert.Nil(t, result.Loops)
	assert.Equal(t, 5, result.Rules.Neurons)
	assert.Len(t, result.Rules.Results, 36)
	require.Equal(t, []string{filepath.Join(outDir, "AssociationRules.csv")}, result.Outputs)

	written, err := excel.NewDataReader().ReadTable(result.Outputs[0])
	require.NoError(t, err)
	assert.Equal(t, association.DistributionHeaders, written.Headers)
	assert.NotEmpty(t, written.Rows)
}

func TestAssociationServiceLoops(t *testing.T) {
	input := writeReduced(t, reducedCSV)
	outDir := t.TempDir()

	result, err := newAssociationService().Analyze(context.Background(), input, outDir, "loop")
	require.NoError(t, err)

	require.NotNil(t, result.Loops)
	require.Len(t, result.Outputs, len(association.LoopNames))
	for i, name := range association.LoopNames {
		assert.Equal(t, filepath.Join(outDir, name+".csv"), result.Outputs[i])
		assert.FileExists(t, result.Outputs[i])
	}
}

func TestAssociationServiceErrors(t *testing.T) {
	svc := newAssociationService()
	ctx := context.Background()

	_, err := svc.Analyze(ctx, "does-not-exist.csv", t.TempDir(), "clusters")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	_, err = svc.Analyze(ctx, writeReduced(t, "Name,Skin1\nN01,1\n"), t.TempDir(), "loop")
	assert.ErrorIs(t, err, core.ErrMissingColumn)

	_, err = svc.Analyze(ctx, writeReduced(t, "ID,Skin1,Ia1\nN01,0,0\n"), t.TempDir(), "association")
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}
