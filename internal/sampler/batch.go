package sampler

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Batch is one fully assembled batch of accepted examples.
type Batch struct {
	Sequences []*mat.Dense // len = batch size, each SequenceLength x 4
	Targets   *mat.Dense   // batch size x nFeatures
}

// GetDataAndTargets switches to the given mode and draws
// floor(nSamples/batchSize) whole batches, returning them along with the
// vertically stacked target matrix across all batches.
func (s *IntervalSampler) GetDataAndTargets(mode Mode, batchSize, nSamples int) ([]Batch, *mat.Dense, error) {
	if err := s.SetMode(mode); err != nil {
		return nil, nil, err
	}
	if batchSize <= 0 {
		return nil, nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	nBatches := nSamples / batchSize
	if nBatches == 0 {
		return nil, nil, fmt.Errorf("sample count %d smaller than batch size %d", nSamples, batchSize)
	}

	batches := make([]Batch, 0, nBatches)
	allTargets := mat.NewDense(nBatches*batchSize, s.nFeatures, nil)

	for b := 0; b < nBatches; b++ {
		sequences, targets, err := s.Sample(batchSize)
		if err != nil {
			return nil, nil, err
		}
		batches = append(batches, Batch{Sequences: sequences, Targets: targets})
		for row := 0; row < batchSize; row++ {
			allTargets.SetRow(b*batchSize+row, mat.Row(nil, row, targets))
		}
	}

	return batches, allTargets, nil
}

// GetDatasetInBatches draws a mode's dataset in whole batches. A
// non-positive nSamples defaults to the size of that mode's interval
// index list.
func (s *IntervalSampler) GetDatasetInBatches(mode Mode, batchSize, nSamples int) ([]Batch, *mat.Dense, error) {
	if nSamples <= 0 {
		nSamples = s.ModeSize(mode)
	}
	return s.GetDataAndTargets(mode, batchSize, nSamples)
}

// GetValidationSet draws the validation dataset in whole batches.
func (s *IntervalSampler) GetValidationSet(batchSize, nSamples int) ([]Batch, *mat.Dense, error) {
	return s.GetDatasetInBatches(ModeValidate, batchSize, nSamples)
}

// GetTestSet draws the test dataset in whole batches.
func (s *IntervalSampler) GetTestSet(batchSize, nSamples int) ([]Batch, *mat.Dense, error) {
	return s.GetDatasetInBatches(ModeTest, batchSize, nSamples)
}
