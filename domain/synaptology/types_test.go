package synaptology

import (
	"testing"

	"synaptology/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynapseColumns_Order(t *testing.T) {
	cols := SynapseColumns()
	require.Len(t, cols, 7*9)
	assert.Equal(t, "Skin-4", cols[0])
	assert.Equal(t, "Skin4", cols[8])
	assert.Equal(t, "Ia-4", cols[9])
	assert.Equal(t, "aMN-4", cols[5*9])
	assert.Equal(t, "LRN4", cols[len(cols)-1])
}

func TestParseWeightMode(t *testing.T) {
	for in, want := range map[string]WeightMode{
		"weight":      WeightModeWeighted,
		"Weighted":    WeightModeWeighted,
		"noweight":    WeightModeUnweighted,
		" unweighted": WeightModeUnweighted,
	} {
		got, err := ParseWeightMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.True(t, got.Valid())
	}

	_, err := ParseWeightMode("")
	assert.ErrorIs(t, err, core.ErrWeightModeUnset)
	_, err = ParseWeightMode("maybe")
	assert.ErrorIs(t, err, core.ErrWeightModeUnset)
	assert.False(t, WeightModeUnset.Valid())
}

func TestTidyTable_Table(t *testing.T) {
	row := NewTidyRow()
	row.Identifiers["ID"] = "N1"
	row.Cells["Skin1"] = Cell{Value: 5}
	row.Cells["Skin2"] = Cell{Missing: true}

	tt := &TidyTable{Rows: []TidyRow{row}}
	out := tt.Table()

	require.Len(t, out.Rows, 1)
	assert.Equal(t, len(Identifiers)+len(SynapseColumns()), len(out.Headers))
	assert.Equal(t, "N1", out.Rows[0]["ID"])
	assert.Equal(t, "", out.Rows[0]["Note3"])
	assert.Equal(t, "5", out.Rows[0]["Skin1"])
	assert.Equal(t, "", out.Rows[0]["Skin2"])
	assert.Equal(t, "0", out.Rows[0]["LRN-4"])
}
