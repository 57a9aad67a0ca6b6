package association

import (
	"context"

	"synaptology/domain/synaptology"
)

// LoopNames are the statistics of LoopCounts, in order.
var LoopNames = []string{"ExIn", "InIn", "ExEx", "FF"}

// shift moves every non-negative activation one synapse further downstream. Excitatory
// shifts keep the sign, inhibitory shifts land on the deep side. Activations leaving the
// recorded depth range are dropped.
func shift(n Neuron, depth func(int) int) []Activation {
	var out []Activation
	for _, a := range n.Activations {
		if a.Depth < 0 {
			continue
		}
		d := depth(a.Depth)
		if abs(d) <= synaptology.MaxDepth {
			out = append(out, Activation{Channel: a.Channel, Depth: d})
		}
	}
	return out
}

func downstreamFromExcitatory(n Neuron) []Activation {
	return shift(n, func(d int) int { return d + 1 })
}

func downstreamFromInhibitory(n Neuron) []Activation {
	return shift(n, func(d int) int { return -(d + 1) })
}

// downstream moves activations x synapses further. A deep target more than one synapse
// away cannot be reached, so it yields no activations.
func downstream(n Neuron, x, sign int) []Activation {
	if x > 1 && sign < 0 {
		return nil
	}
	return shift(n, func(d int) int { return sign * (d + x) })
}

// countLoops counts the neurons n1 for which some neuron n2 carries everything first
// projects from n1 while n1 carries everything second projects from n2.
func (s *Set) countLoops(first, second func(Neuron) []Activation) int {
	count := 0
	for _, n1 := range s.Neurons {
		from1 := first(n1)
		for _, n2 := range s.Neurons {
			if n2.Covers(from1) && n1.Covers(second(n2)) {
				count++
				break
			}
		}
	}
	return count
}

// UnrecordedFeedForward counts neurons with an activation that no recorded neuron can
// explain. An activation at depth d may be relayed from a neuron carrying the same
// channel at any shallower positive depth, provided that neuron's downstream inputs are
// all present on the target.
func (s *Set) UnrecordedFeedForward() int {
	unrecorded := 0
	for _, n := range s.Neurons {
		if !s.explained(n) {
			unrecorded++
		}
	}
	return unrecorded
}

func (s *Set) explained(n Neuron) bool {
	for _, target := range n.Activations {
		sign := 1
		if target.Depth < 0 {
			sign = -1
		}
		for depth := 1; depth < abs(target.Depth); depth++ {
			pred := Activation{Channel: target.Channel, Depth: depth}
			matched := false
			for _, m := range s.Neurons {
				if m.Has(pred) && n.Covers(downstream(m, abs(target.Depth)-depth, sign)) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}

// LoopCounts evaluates the ExIn, InIn, ExEx and FF statistics.
func LoopCounts(s *Set) []int {
	return []int{
		s.countLoops(downstreamFromExcitatory, downstreamFromInhibitory),
		s.countLoops(downstreamFromInhibitory, downstreamFromInhibitory),
		s.countLoops(downstreamFromExcitatory, downstreamFromExcitatory),
		s.UnrecordedFeedForward(),
	}
}

// LoopAnalysis holds the loop statistics of a set with their significance.
type LoopAnalysis struct {
	Neurons       int                 `json:"neurons"`
	Significances []Significance[int] `json:"statistics"`
}

// AnalyzeLoops runs the swap test for every loop statistic of s.
func AnalyzeLoops(ctx context.Context, s *Set, cfg SwapConfig) (*LoopAnalysis, error) {
	sigs, err := SwapTest(ctx, s, LoopNames, LoopCounts, cfg)
	if err != nil {
		return nil, err
	}
	return &LoopAnalysis{Neurons: len(s.Neurons), Significances: sigs}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
