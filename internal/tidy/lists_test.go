package tidy

import (
	"errors"
	"testing"

	"synaptology/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDepths(t *testing.T) {
	tests := []struct {
		raw  string
		want []int
	}{
		{"", []int{}},
		{"-", []int{}},
		{"nan", []int{}},
		{" NaN ", []int{}},
		{"1;2", []int{1, 2}},
		{"-2:3", []int{-2, 3}},
		{"1;;2;", []int{1, 2}},
		{"1.0; -3", []int{1, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDepths(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDepthsRejectsFractions(t *testing.T) {
	for _, raw := range []string{"1.5", "x", "1;two", "1e300", "-inf"} {
		_, err := ParseDepths(raw)
		assert.True(t, errors.Is(err, core.ErrMalformedList), raw)
	}
}

func TestParseWeightsScalesAndTruncates(t *testing.T) {
	got, err := ParseWeights("0.5;0.3:0.29;-0.15")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 2, -1}, got)

	got, err = ParseWeights("-")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseWeights("heavy")
	assert.ErrorIs(t, err, core.ErrMalformedList)
}

func TestParseWeightsRejectsOutOfRange(t *testing.T) {
	for _, raw := range []string{"1e300;5e18", "5e18", "-3e9", "inf", "1;nan"} {
		got, err := ParseWeights(raw)
		assert.ErrorIs(t, err, core.ErrMalformedList, raw)
		assert.Nil(t, got, raw)
	}

	got, err := ParseWeights("2e8")
	require.NoError(t, err)
	assert.Equal(t, []int{2000000000}, got)
}
