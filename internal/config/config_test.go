package config

import (
	"testing"

	"synaptology/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SYN_DATA_DIR", "SYN_MEASUREMENT_PATTERN", "SYN_SUBJECT_TABLE", "SYN_WORKERS",
		"SYN_DR_CORRECTION_MS", "SYN_MIN_SUPPORT", "SYN_SLOPE_LIMIT", "SYN_CV_LIMIT", "SYN_REFERENCE_SETS", "SYN_SWAP_SEED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data_raw", cfg.Data.MeasurementDir)
	assert.Equal(t, "*.dat", cfg.Data.MeasurementPattern)
	assert.Equal(t, 4, cfg.Data.Workers)
	assert.InDelta(t, 1.7, cfg.Analysis.DeepRadialCorrectionMs, 1e-12)
	assert.Equal(t, 20, cfg.Stability.MinSupport)
	assert.InDelta(t, 0.20, cfg.Stability.SlopeLimit, 1e-12)
	assert.InDelta(t, 0.30, cfg.Stability.CVLimit, 1e-12)
	assert.Equal(t, 100000, cfg.Swap.ReferenceSets)
	assert.Equal(t, int64(1), cfg.Swap.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SYN_WORKERS", "8")
	t.Setenv("SYN_DR_CORRECTION_MS", "2.5")
	t.Setenv("SYN_MIN_SUPPORT", "not-a-number")
	t.Setenv("SYN_REFERENCE_SETS", "500")
	t.Setenv("SYN_SWAP_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Data.Workers)
	assert.InDelta(t, 2.5, cfg.Analysis.DeepRadialCorrectionMs, 1e-12)
	assert.Equal(t, 20, cfg.Stability.MinSupport)
	assert.Equal(t, 500, cfg.Swap.ReferenceSets)
	assert.Equal(t, int64(42), cfg.Swap.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SYN_WORKERS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Data:      DataConfig{MeasurementPattern: "*.dat", Workers: 1},
		Stability: StabilityConfig{MinSupport: 20},
		Swap:      SwapConfig{ReferenceSets: 1},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Swap.ReferenceSets = 0
	assert.Error(t, cfg.Validate())
	cfg.Swap.ReferenceSets = 1

	cfg.Analysis.DeepRadialCorrectionMs = -1
	assert.Error(t, cfg.Validate())
}
