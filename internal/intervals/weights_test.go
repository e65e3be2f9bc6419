package intervals

import (
	"math"
	"testing"
)

func TestSelectWeightedNormalization(t *testing.T) {
	lengths := []int{100, 300, 600}
	si := SelectWeighted(lengths, []int{0, 1, 2})

	if len(si.Indices) != 3 {
		t.Fatalf("expected 3 kept indices, got %d", len(si.Indices))
	}
	sum := 0.0
	for _, w := range si.Weights {
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %v, want 1", sum)
	}
	if si.Weights[0] != 0.1 || si.Weights[1] != 0.3 || si.Weights[2] != 0.6 {
		t.Errorf("weights = %v, want [0.1 0.3 0.6]", si.Weights)
	}
}

func TestSelectWeightedPrunesZeroLength(t *testing.T) {
	lengths := []int{10, 0, 90}
	si := SelectWeighted(lengths, []int{0, 1, 2})

	if len(si.Indices) != 2 || si.Indices[0] != 0 || si.Indices[1] != 2 {
		t.Fatalf("kept indices = %v, want [0 2]", si.Indices)
	}
	if si.Weights[0] != 0.1 || si.Weights[1] != 0.9 {
		t.Errorf("weights = %v, want [0.1 0.9]", si.Weights)
	}
}

func TestSelectWeightedFixedPoint(t *testing.T) {
	// Re-selecting over an already-pruned subset changes nothing.
	lengths := []int{10, 0, 90, 0, 25}
	first := SelectWeighted(lengths, []int{0, 1, 2, 3, 4})
	second := SelectWeighted(lengths, first.Indices)

	if len(first.Indices) != len(second.Indices) {
		t.Fatalf("fixed point not reached: %v vs %v", first.Indices, second.Indices)
	}
	for i := range first.Indices {
		if first.Indices[i] != second.Indices[i] {
			t.Errorf("index %d differs: %d vs %d", i, first.Indices[i], second.Indices[i])
		}
		if math.Abs(first.Weights[i]-second.Weights[i]) > 1e-12 {
			t.Errorf("weight %d differs: %v vs %v", i, first.Weights[i], second.Weights[i])
		}
	}
}

func TestSelectWeightedEmpty(t *testing.T) {
	if si := SelectWeighted([]int{5, 10}, nil); len(si.Indices) != 0 || len(si.Weights) != 0 {
		t.Errorf("empty subset should yield empty result, got %+v", si)
	}
	if si := SelectWeighted([]int{0, 0}, []int{0, 1}); len(si.Indices) != 0 {
		t.Errorf("zero total length should yield empty result, got %+v", si)
	}
}

func TestSelectWeightedNeverBelowThreshold(t *testing.T) {
	lengths := []int{1, 1 << 30, 3, 1 << 29}
	indices := []int{0, 1, 2, 3}
	si := SelectWeighted(lengths, indices)
	for i, w := range si.Weights {
		if w <= minSampleWeight {
			t.Errorf("kept weight %d = %v at or below threshold", i, w)
		}
	}
}
