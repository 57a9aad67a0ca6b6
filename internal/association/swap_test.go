package association

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"synaptology/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapFixture() *Set {
	return newSet(
		NewNeuron("N1", []Activation{act("Ia", 1), act("Skin", 1)}),
		NewNeuron("N2", []Activation{act("Ia", 1), act("Skin", 1), act("Ib", -2)}),
		NewNeuron("N3", []Activation{act("Ia", 1)}),
		NewNeuron("N4", []Activation{act("Skin", 1)}),
		NewNeuron("N5", []Activation{act("Ib", 1), act("Ia", -2)}),
	)
}

func TestSwapInPlacePreservesMargins(t *testing.T) {
	s := swapFixture()
	counts := s.ActivationCounts()
	sizes := make([]int, len(s.Neurons))
	for i, n := range s.Neurons {
		sizes[i] = len(n.Activations)
	}

	rng := rand.New(rand.NewSource(1))
	swapped := 0
	for i := 0; i < 500; i++ {
		if s.SwapInPlace(rng) {
			swapped++
		}
		for j, n := range s.Neurons {
			require.Len(t, n.Activations, sizes[j])
			require.True(t, slices.IsSortedFunc(n.Activations, compareActivations))
			require.Len(t, slices.Compact(slices.Clone(n.Activations)), sizes[j])
		}
	}
	assert.Positive(t, swapped)
	assert.Equal(t, counts, s.ActivationCounts())
}

func TestSwapInPlaceWithoutCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.False(t, newSet().SwapInPlace(rng))
	assert.False(t, newSet(NewNeuron("N1", nil)).SwapInPlace(rng))

	single := newSet(NewNeuron("N1", []Activation{act("Ia", 1), act("Skin", 1)}))
	for i := 0; i < 50; i++ {
		assert.False(t, single.SwapInPlace(rng))
	}
}

func TestFrequenciesP(t *testing.T) {
	f := Frequencies[int]{1: 3, 2: 5, 3: 2}
	assert.InDelta(t, 3.0/11.0, f.P(2), 1e-12)
	assert.InDelta(t, 1.0/11.0, f.P(3), 1e-12)
	assert.InDelta(t, 0.0, f.P(0), 1e-12)
	assert.InDelta(t, 1.0/11.0, f.P(9), 1e-12)
	assert.Equal(t, []int{1, 2, 3}, f.Values())

	assert.InDelta(t, 0.0, Frequencies[int]{}.P(4), 1e-12)

	f.Merge(Frequencies[int]{2: 1, 7: 1})
	assert.Equal(t, Frequencies[int]{1: 3, 2: 6, 3: 2, 7: 1}, f)
}

func neuronSizes(s *Set) []int {
	out := make([]int, len(s.Neurons))
	for i, n := range s.Neurons {
		out[i] = len(n.Activations)
	}
	return out
}

func TestSwapTest(t *testing.T) {
	s := swapFixture()
	before := s.Clone()
	cfg := SwapConfig{ReferenceSets: 40, Workers: 3, Seed: 11}
	names := []string{"n1", "n2", "n3", "n4", "n5"}

	sigs, err := SwapTest(context.Background(), s, names, neuronSizes, cfg)
	require.NoError(t, err)
	require.Len(t, sigs, len(names))
	assert.Equal(t, before, s)

	for i, sig := range sigs {
		assert.Equal(t, names[i], sig.Name)
		assert.Equal(t, len(s.Neurons[i].Activations), sig.Original)
		assert.Equal(t, Frequencies[int]{sig.Original: 40}, sig.Frequencies)
		assert.InDelta(t, 0.0, sig.P, 1e-12)
	}
}

func TestSwapTestIsReproducible(t *testing.T) {
	cfg := SwapConfig{ReferenceSets: 200, Workers: 4, Seed: 3}
	rules := swapFixture().Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.String()
	}

	first, err := SwapTest(context.Background(), swapFixture(), names, Confidence(rules), cfg)
	require.NoError(t, err)
	second, err := SwapTest(context.Background(), swapFixture(), names, Confidence(rules), cfg)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Frequencies, second[i].Frequencies, names[i])
		assert.Equal(t, first[i].P, second[i].P, names[i])
		total := 0
		for _, n := range first[i].Frequencies {
			total += n
		}
		assert.Equal(t, 200, total, names[i])
	}
}

func TestSwapTestErrors(t *testing.T) {
	ctx := context.Background()

	_, err := SwapTest(ctx, swapFixture(), []string{"a"}, neuronSizes, SwapConfig{ReferenceSets: 10, Workers: 1})
	assert.Error(t, err)

	_, err = SwapTest(ctx, swapFixture(), []string{"a", "b", "c", "d", "e"}, neuronSizes, SwapConfig{ReferenceSets: 0, Workers: 1})
	assert.Error(t, err)

	_, err = SwapTest(ctx, newSet(NewNeuron("N1", nil)), []string{"a"}, neuronSizes, SwapConfig{ReferenceSets: 10, Workers: 1})
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = SwapTest(cancelled, swapFixture(), []string{"a", "b", "c", "d", "e"}, neuronSizes, SwapConfig{ReferenceSets: 10, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDistribution(t *testing.T) {
	sigs := []Significance[float64]{{
		Name:        "Ia1 => Skin1",
		Original:    1,
		Frequencies: Frequencies[float64]{1: 3, 0.5: 2},
		P:           0.25,
	}}

	out := Distribution(sigs, FormatFloat)
	assert.Equal(t, DistributionHeaders, out.Headers)
	assert.Equal(t, [][]string{
		{"Ia1 => Skin1 p = 0.250000", "0.500000", "2", "F"},
		{"Ia1 => Skin1 p = 0.250000", "1.000000", "3", "T"},
	}, out.Records())

	counts := Distribution([]Significance[int]{{Name: "FF", Original: 2, Frequencies: Frequencies[int]{2: 1}}}, FormatInt)
	assert.Equal(t, [][]string{{"FF p = 0.000000", "2", "1", "T"}}, counts.Records())
}
