package association

import (
	"cmp"
	"context"
	"math"
	"slices"
	"strings"
)

// Rule is a single-antecedent association rule: neurons with LHS also have RHS.
type Rule struct {
	LHS Activation
	RHS Activation
}

func (r Rule) String() string {
	return r.LHS.String() + " => " + r.RHS.String()
}

// Rules lists every ordered pair of the set's distinct activations, a pair of an
// activation with itself included, ordered by LHS then RHS.
func (s *Set) Rules() []Rule {
	acts := s.Activations()
	rules := make([]Rule, 0, len(acts)*len(acts))
	for _, lhs := range acts {
		for _, rhs := range acts {
			rules = append(rules, Rule{LHS: lhs, RHS: rhs})
		}
	}
	return rules
}

// Confidence returns the statistic giving, for each rule, the fraction of neurons with
// the rule's LHS that also carry its RHS. A rule whose LHS no neuron carries is NaN.
func Confidence(rules []Rule) Statistic[float64] {
	index := make(map[Activation]int)
	for _, r := range rules {
		for _, a := range []Activation{r.LHS, r.RHS} {
			if _, ok := index[a]; !ok {
				index[a] = len(index)
			}
		}
	}
	k := len(index)

	return func(s *Set) []float64 {
		single := make([]int, k)
		joint := make([]int, k*k)
		for _, n := range s.Neurons {
			for _, a1 := range n.Activations {
				i, ok := index[a1]
				if !ok {
					continue
				}
				single[i]++
				for _, a2 := range n.Activations {
					if j, ok := index[a2]; ok {
						joint[i*k+j]++
					}
				}
			}
		}

		out := make([]float64, len(rules))
		for x, r := range rules {
			i, j := index[r.LHS], index[r.RHS]
			if single[i] == 0 {
				out[x] = math.NaN()
				continue
			}
			out[x] = float64(joint[i*k+j]) / float64(single[i])
		}
		return out
	}
}

// RuleResult is the swap test outcome of one rule.
type RuleResult struct {
	Rule       string  `json:"rule"`
	Support    float64 `json:"support"`
	Confidence float64 `json:"confidence"`
	P          float64 `json:"p"`
}

// RuleAnalysis holds the association rules of a set with their significance.
type RuleAnalysis struct {
	Neurons       int                     `json:"neurons"`
	Results       []RuleResult            `json:"rules"`
	Significances []Significance[float64] `json:"-"`
}

// AnalyzeRules runs the swap test for the confidence of every rule of s.
func AnalyzeRules(ctx context.Context, s *Set, cfg SwapConfig) (*RuleAnalysis, error) {
	rules := s.Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.String()
	}

	sigs, err := SwapTest(ctx, s, names, Confidence(rules), cfg)
	if err != nil {
		return nil, err
	}

	counts := s.ActivationCounts()
	analysis := &RuleAnalysis{Neurons: len(s.Neurons), Significances: sigs, Results: make([]RuleResult, len(rules))}
	for i, r := range rules {
		analysis.Results[i] = RuleResult{
			Rule:       names[i],
			Support:    float64(counts[r.LHS]) / float64(len(s.Neurons)),
			Confidence: sigs[i].Original,
			P:          sigs[i].P,
		}
	}
	return analysis, nil
}

// Significant returns the rules between distinct activations whose p-value is at most
// alpha, most significant first.
func (a *RuleAnalysis) Significant(alpha float64) []RuleResult {
	var out []RuleResult
	for _, r := range a.Results {
		lhs, rhs, _ := strings.Cut(r.Rule, " => ")
		if lhs != rhs && r.P <= alpha {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(x, y RuleResult) int { return cmp.Compare(x.P, y.P) })
	return out
}
