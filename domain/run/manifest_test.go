package run

import (
	"testing"
)

func TestNewManifest_Fingerprint(t *testing.T) {
	a := NewManifest("latencies", []string{"b.dat", "a.dat"}, "subjects.csv")
	b := NewManifest("latencies", []string{"a.dat", "b.dat"}, "subjects.csv")

	if a.InputHash != b.InputHash {
		t.Errorf("Input hash should not depend on order: %s vs %s", a.InputHash, b.InputHash)
	}
	if a.RunID == b.RunID {
		t.Errorf("Run IDs should be unique, both were %s", a.RunID)
	}
	if a.InputCount != 2 {
		t.Errorf("Expected input count 2, got %d", a.InputCount)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected valid manifest, got %v", err)
	}
}

func TestManifest_Validate(t *testing.T) {
	m := NewManifest("", nil, "")
	if err := m.Validate(); err == nil {
		t.Error("Expected validation error for empty command")
	}

	m = NewManifest("convert", nil, "")
	m.RunID = ""
	if err := m.Validate(); err == nil {
		t.Error("Expected validation error for empty run id")
	}
}
