package tidy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"synaptology/domain/core"
)

// tokens that stand for an empty list
var emptyTokens = map[string]bool{
	"":    true,
	"-":   true,
	"nan": true,
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if emptyTokens[strings.ToLower(raw)] {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ':' })
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseDepths decodes a list of signed relative depths. Integral decimals such as "1.0"
// are accepted.
func ParseDepths(raw string) ([]int, error) {
	parts := splitList(raw)
	depths := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			depths = append(depths, n)
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: depth %q in %q", core.ErrMalformedList, p, raw)
		}
		depths = append(depths, int(f))
	}
	return depths, nil
}

// ParseWeights decodes a list of decimal weights, each scaled by 10 and truncated
// toward zero.
func ParseWeights(raw string) ([]int, error) {
	parts := splitList(raw)
	weights := make([]int, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || !(math.Abs(10*f) <= math.MaxInt32) {
			return nil, fmt.Errorf("%w: weight %q in %q", core.ErrMalformedList, p, raw)
		}
		weights = append(weights, int(10*f))
	}
	return weights, nil
}
