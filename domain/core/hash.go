package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

func (h Hash) String() string { return string(h) }

func (h Hash) IsEmpty() bool { return h == "" }

// Short returns the first 12 hex characters, enough to tell runs apart in a report.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// InputSetHash fingerprints a set of input paths independent of their order.
func InputSetHash(paths []string) Hash {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	var data strings.Builder
	for _, p := range sorted {
		data.WriteString(p)
		data.WriteByte('\n')
	}
	return NewHash([]byte(data.String()))
}
