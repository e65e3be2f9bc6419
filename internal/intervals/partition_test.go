package intervals

import (
	"strings"
	"testing"

	"golang.org/x/exp/rand"
)

func TestPartitionProportionDisjointCover(t *testing.T) {
	lengths := make([]int, 20)
	for i := range lengths {
		lengths[i] = 50 + i
	}

	rng := rand.New(rand.NewSource(436))
	p, err := PartitionProportion(lengths, 0.2, 0.1, rng)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int]string)
	for _, set := range []struct {
		name string
		si   SampleIndices
	}{{"train", p.Train}, {"validate", p.Validate}, {"test", p.Test}} {
		for _, idx := range set.si.Indices {
			if prev, ok := seen[idx]; ok {
				t.Errorf("index %d in both %s and %s", idx, prev, set.name)
			}
			seen[idx] = set.name
		}
	}
	// All lengths are positive, so nothing is pruned and the three
	// subsets cover every index.
	if len(seen) != len(lengths) {
		t.Errorf("partitions cover %d of %d indices", len(seen), len(lengths))
	}

	if got := len(p.Validate.Indices); got != 4 {
		t.Errorf("validate size = %d, want 4", got)
	}
	if got := len(p.Test.Indices); got != 2 {
		t.Errorf("test size = %d, want 2", got)
	}
}

func TestPartitionProportionNoTest(t *testing.T) {
	lengths := []int{10, 20, 30, 40}
	rng := rand.New(rand.NewSource(1))
	p, err := PartitionProportion(lengths, 0.25, 0, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Test.Indices) != 0 {
		t.Errorf("test partition should be empty with zero test fraction, got %v", p.Test.Indices)
	}
	if len(p.Train.Indices)+len(p.Validate.Indices) != 4 {
		t.Errorf("train+validate should cover all indices")
	}
}

func TestPartitionProportionZeroLengthExcluded(t *testing.T) {
	// A zero-length interval can land in any shuffled slice, but
	// weighted selection must never keep it.
	lengths := []int{10, 0, 90}
	for seed := uint64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p, err := PartitionProportion(lengths, 0.34, 0, rng)
		if err != nil {
			t.Fatal(err)
		}
		for _, si := range []SampleIndices{p.Train, p.Validate, p.Test} {
			for _, idx := range si.Indices {
				if idx == 1 {
					t.Errorf("seed %d: zero-length interval kept with weight", seed)
				}
			}
		}
	}
}

func TestPartitionProportionDeterministic(t *testing.T) {
	lengths := []int{5, 15, 25, 35, 45, 55}
	a, err := PartitionProportion(lengths, 0.34, 0.17, rand.New(rand.NewSource(436)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := PartitionProportion(lengths, 0.34, 0.17, rand.New(rand.NewSource(436)))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Train.Indices) != len(b.Train.Indices) {
		t.Fatalf("train sizes differ across identical seeds")
	}
	for i := range a.Train.Indices {
		if a.Train.Indices[i] != b.Train.Indices[i] {
			t.Errorf("train index %d differs: %d vs %d", i, a.Train.Indices[i], b.Train.Indices[i])
		}
	}
}

func TestPartitionProportionInvalidFractions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := PartitionProportion([]int{10}, -0.1, 0, rng); err == nil {
		t.Error("expected error for negative validation fraction")
	}
	if _, err := PartitionProportion([]int{10}, 0.7, 0.5, rng); err == nil {
		t.Error("expected error for fractions summing past 1")
	}
}

func TestPartitionChromosome(t *testing.T) {
	ivs := []Interval{
		{Chrom: "1", Start: 0, End: 100},
		{Chrom: "6", Start: 0, End: 200},
		{Chrom: "8", Start: 0, End: 300},
		{Chrom: "2", Start: 0, End: 400},
		{Chrom: "7", Start: 0, End: 500},
	}
	lengths := Lengths(ivs)

	p := PartitionChromosome(ivs, lengths, []string{"6", "7"}, []string{"8", "9"})

	if got := p.Validate.Indices; len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Errorf("validate indices = %v, want [1 4]", got)
	}
	if got := p.Test.Indices; len(got) != 1 || got[0] != 2 {
		t.Errorf("test indices = %v, want [2]", got)
	}
	if got := p.Train.Indices; len(got) != 2 || got[0] != 0 || got[1] != 3 {
		t.Errorf("train indices = %v, want [0 3]", got)
	}
}

func TestPartitionChromosomeValidatePrecedence(t *testing.T) {
	// A chromosome listed in both holdout sets goes to validation.
	ivs := []Interval{{Chrom: "6", Start: 0, End: 50}}
	p := PartitionChromosome(ivs, Lengths(ivs), []string{"6"}, []string{"6"})
	if len(p.Validate.Indices) != 1 || len(p.Test.Indices) != 0 {
		t.Errorf("validation should win over test: %+v", p)
	}
}

func TestParseIntervals(t *testing.T) {
	input := "1\t100\t200\n2\t300\t450\textra\n\n3\t0\t10\n"
	ivs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(ivs) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(ivs))
	}
	if ivs[1].Chrom != "2" || ivs[1].Start != 300 || ivs[1].End != 450 {
		t.Errorf("interval 1 = %+v", ivs[1])
	}
	if got := Lengths(ivs); got[0] != 100 || got[1] != 150 || got[2] != 10 {
		t.Errorf("lengths = %v", got)
	}
}

func TestParseIntervalsErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("1\t100\n")); err == nil {
		t.Error("expected error for too few columns")
	}
	if _, err := Parse(strings.NewReader("1\tabc\t200\n")); err == nil {
		t.Error("expected error for non-numeric start")
	}
}
