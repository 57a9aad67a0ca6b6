package association

import (
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strconv"

	"synaptology/domain/core"
	"synaptology/domain/table"
	"synaptology/internal"

	"golang.org/x/sync/errgroup"
)

// SwapConfig controls a swap randomization test.
type SwapConfig struct {
	ReferenceSets int
	Workers       int
	Seed          int64
}

// sample picks an activation uniformly among all activations of the set, which weights
// each neuron by its number of activations.
func (s *Set) sample(rng *rand.Rand, size int) (neuron, index int) {
	x := rng.Intn(size)
	for i, n := range s.Neurons {
		if x < len(n.Activations) {
			return i, x
		}
		x -= len(n.Activations)
	}
	panic("association: activation sample out of range")
}

// SwapInPlace exchanges two randomly drawn activations between their neurons unless
// either neuron already carries the other's activation. Activation counts per neuron
// and neurons per activation are unchanged. It reports whether a swap happened.
func (s *Set) SwapInPlace(rng *rand.Rand) bool {
	size := s.Size()
	if size == 0 {
		return false
	}
	i1, j1 := s.sample(rng, size)
	i2, j2 := s.sample(rng, size)
	n1, n2 := &s.Neurons[i1], &s.Neurons[i2]
	a1, a2 := n1.Activations[j1], n2.Activations[j2]
	if n1.Has(a2) || n2.Has(a1) {
		return false
	}
	n1.Activations[j1], n2.Activations[j2] = a2, a1
	slices.SortFunc(n1.Activations, compareActivations)
	slices.SortFunc(n2.Activations, compareActivations)
	return true
}

// Frequencies counts how often each statistic value occurred among the reference sets.
type Frequencies[T cmp.Ordered] map[T]int

// Merge adds the counts of other.
func (f Frequencies[T]) Merge(other Frequencies[T]) {
	for v, n := range other {
		f[v] += n
	}
}

// P is the one-sided p-value of observed: the smaller of the reference values below it
// and the reference values above it plus one, over all reference values plus one.
func (f Frequencies[T]) P(observed T) float64 {
	var smaller, larger, total int
	for v, n := range f {
		switch {
		case v < observed:
			smaller += n
		case v > observed:
			larger += n
		}
		total += n
	}
	return float64(min(smaller, larger+1)) / float64(total+1)
}

// Values returns the distinct reference values in ascending order.
func (f Frequencies[T]) Values() []T {
	vals := make([]T, 0, len(f))
	for v := range f {
		vals = append(vals, v)
	}
	slices.Sort(vals)
	return vals
}

// Significance is one statistic's original value and its reference distribution.
type Significance[T cmp.Ordered] struct {
	Name        string         `json:"name"`
	Original    T              `json:"original"`
	Frequencies Frequencies[T] `json:"-"`
	P           float64        `json:"p"`
}

// Statistic evaluates a fixed number of values on a set, always in the same order.
type Statistic[T cmp.Ordered] func(s *Set) []T

// SwapTest evaluates stat on s, then on ReferenceSets swap-randomized copies. Every
// worker runs its own chain of single swaps starting from s, and each step of a chain
// is one reference set. s is not modified.
func SwapTest[T cmp.Ordered](ctx context.Context, s *Set, names []string, stat Statistic[T], cfg SwapConfig) ([]Significance[T], error) {
	if cfg.ReferenceSets < 1 {
		return nil, fmt.Errorf("reference sets must be at least 1, got %d", cfg.ReferenceSets)
	}
	if len(s.Neurons) == 0 || s.Size() == 0 {
		return nil, fmt.Errorf("%w: no activations to randomize", core.ErrInsufficientData)
	}
	original := stat(s)
	if len(original) != len(names) {
		return nil, fmt.Errorf("statistic returned %d values for %d names", len(original), len(names))
	}

	workers := max(1, min(cfg.Workers, cfg.ReferenceSets))
	perWorker := cfg.ReferenceSets / workers
	residual := cfg.ReferenceSets - perWorker*workers
	internal.DefaultLogger.Info("[Swap] Drawing %d reference sets on %d workers", cfg.ReferenceSets, workers)

	counts := make([][]Frequencies[T], workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		steps := perWorker
		if w == 0 {
			steps += residual
		}
		g.Go(func() error {
			chain := s.Clone()
			rng := rand.New(rand.NewSource(cfg.Seed + int64(w)))
			local := make([]Frequencies[T], len(names))
			for i := range local {
				local[i] = make(Frequencies[T])
			}
			for i := 0; i < steps; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				chain.SwapInPlace(rng)
				for j, v := range stat(chain) {
					local[j][v]++
				}
			}
			counts[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Significance[T], len(names))
	for i, name := range names {
		freqs := make(Frequencies[T])
		for _, local := range counts {
			freqs.Merge(local[i])
		}
		out[i] = Significance[T]{Name: name, Original: original[i], Frequencies: freqs, P: freqs.P(original[i])}
	}
	internal.DefaultLogger.Debug("[Swap] Finished %d statistics", len(out))
	return out, nil
}

// DistributionHeaders are the columns of a Distribution table.
var DistributionHeaders = []string{"Name", "Value", "freq", "original"}

// Distribution lays out reference distributions as a long table: one row per statistic
// and observed reference value, flagging with T the value equal to the original.
func Distribution[T cmp.Ordered](sigs []Significance[T], format func(T) string) *table.Table {
	out := &table.Table{Headers: DistributionHeaders}
	for _, sig := range sigs {
		name := fmt.Sprintf("%s p = %f", sig.Name, sig.P)
		for _, v := range sig.Frequencies.Values() {
			original := "F"
			if v == sig.Original {
				original = "T"
			}
			out.Rows = append(out.Rows, table.Row{
				"Name":     name,
				"Value":    format(v),
				"freq":     strconv.Itoa(sig.Frequencies[v]),
				"original": original,
			})
		}
	}
	return out
}

// FormatFloat renders a float statistic with six decimals.
func FormatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// FormatInt renders a count statistic.
func FormatInt(v int) string { return strconv.Itoa(v) }
