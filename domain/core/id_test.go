package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestInputSetHash_OrderIndependent(t *testing.T) {
	a := InputSetHash([]string{"b.dat", "a.dat"})
	b := InputSetHash([]string{"a.dat", "b.dat"})
	if a != b {
		t.Errorf("Hashes differ for permuted input: %s vs %s", a, b)
	}
	if len(a.Short()) != 12 {
		t.Errorf("Expected 12 character short hash, got %q", a.Short())
	}
	if a == InputSetHash([]string{"a.dat"}) {
		t.Error("Expected different hash for different input set")
	}
}

func TestErrorHelpers(t *testing.T) {
	err := NewColumnCountError("x.dat", 5)
	if !IsIngestionError(err) || !errors.Is(err, ErrColumnCount) {
		t.Errorf("Expected column count error to be an ingestion error: %v", err)
	}
	if IsConversionError(err) {
		t.Error("Column count error must not be a conversion error")
	}

	err = NewWeightOverflowError(0, "Skin", 1, 2)
	if !IsConversionError(err) || !errors.Is(err, ErrWeightOverflow) {
		t.Errorf("Expected weight overflow to be a conversion error: %v", err)
	}
	if !IsConversionError(ErrWeightModeUnset) {
		t.Error("Expected unset weight mode to abort conversion")
	}
}
