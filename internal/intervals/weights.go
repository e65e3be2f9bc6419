package intervals

// minSampleWeight is the pruning threshold for length-proportional
// sampling weights. Indices at or below it are dropped so degenerate
// near-zero-length intervals never receive sampling probability.
const minSampleWeight = 1e-10

// SampleIndices pairs a subset of interval indices with their
// length-proportional sampling weights. Weights sum to 1 within
// floating-point tolerance and every weight exceeds minSampleWeight;
// both hold by construction.
type SampleIndices struct {
	Indices []int
	Weights []float64
}

// SelectWeighted converts a candidate subset of interval indices into a
// normalized, length-proportional distribution. Any index whose weight
// falls at or below minSampleWeight is dropped and the weights are
// recomputed over the survivors, repeating until the kept set is stable.
// The loop is iterative rather than recursive; the kept set strictly
// shrinks, so it terminates. An empty subset or a zero total length
// yields an empty result.
func SelectWeighted(lengths []int, indices []int) SampleIndices {
	kept := indices
	for {
		if len(kept) == 0 {
			return SampleIndices{}
		}

		total := 0
		for _, idx := range kept {
			total += lengths[idx]
		}
		if total == 0 {
			return SampleIndices{}
		}

		weights := make([]float64, len(kept))
		for i, idx := range kept {
			weights[i] = float64(lengths[idx]) / float64(total)
		}

		next := make([]int, 0, len(kept))
		for i, w := range weights {
			if w > minSampleWeight {
				next = append(next, kept[i])
			}
		}
		if len(next) == len(kept) {
			return SampleIndices{Indices: kept, Weights: weights}
		}
		kept = next
	}
}
