package intervals

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Partition holds the per-mode interval index subsets and their sampling
// weights. The three subsets are pairwise disjoint by construction.
type Partition struct {
	Train    SampleIndices
	Validate SampleIndices
	Test     SampleIndices
}

// PartitionProportion splits interval indices into train/validate/test by
// proportional random holdout. All indices are shuffled with the supplied
// generator; the first validFrac*n go to validate, the next testFrac*n to
// test (omitted entirely when testFrac is zero, the remainder then all
// train), and the rest to train. Each subset is passed through
// SelectWeighted independently.
func PartitionProportion(lengths []int, validFrac, testFrac float64, rng *rand.Rand) (Partition, error) {
	if validFrac < 0 || validFrac > 1 {
		return Partition{}, fmt.Errorf("validation proportion %v outside [0, 1]", validFrac)
	}
	if testFrac < 0 || testFrac > 1 {
		return Partition{}, fmt.Errorf("test proportion %v outside [0, 1]", testFrac)
	}
	if validFrac+testFrac > 1 {
		return Partition{}, fmt.Errorf("holdout proportions sum to %v, exceeding 1", validFrac+testFrac)
	}

	n := len(lengths)
	selectIndices := make([]int, n)
	for i := range selectIndices {
		selectIndices[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		selectIndices[i], selectIndices[j] = selectIndices[j], selectIndices[i]
	})

	nValidate := int(float64(n) * validFrac)

	var p Partition
	p.Validate = SelectWeighted(lengths, selectIndices[:nValidate])

	if testFrac > 0 {
		nTest := int(float64(n) * testFrac)
		testEnd := nValidate + nTest
		p.Test = SelectWeighted(lengths, selectIndices[nValidate:testEnd])
		p.Train = SelectWeighted(lengths, selectIndices[testEnd:])
	} else {
		p.Train = SelectWeighted(lengths, selectIndices[nValidate:])
	}

	return p, nil
}

// PartitionChromosome assigns each interval, in load order, to a mode by
// chromosome membership: the validation set wins, then the test set (which
// may be empty to disable test holdout), else train. Each accumulated
// subset is passed through SelectWeighted.
func PartitionChromosome(ivs []Interval, lengths []int, validChroms, testChroms []string) Partition {
	inValidate := chromSet(validChroms)
	inTest := chromSet(testChroms)

	var trainIdx, validIdx, testIdx []int
	for i, iv := range ivs {
		switch {
		case inValidate[iv.Chrom]:
			validIdx = append(validIdx, i)
		case inTest[iv.Chrom]:
			testIdx = append(testIdx, i)
		default:
			trainIdx = append(trainIdx, i)
		}
	}

	return Partition{
		Train:    SelectWeighted(lengths, trainIdx),
		Validate: SelectWeighted(lengths, validIdx),
		Test:     SelectWeighted(lengths, testIdx),
	}
}

func chromSet(chroms []string) map[string]bool {
	set := make(map[string]bool, len(chroms))
	for _, c := range chroms {
		set[c] = true
	}
	return set
}
