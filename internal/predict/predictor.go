package predict

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Model is the black-box prediction capability: a batched pure function
// from encoded sequence windows to output rows.
type Model interface {
	// Predict returns one output row per input window.
	Predict(batch []*mat.Dense) (*mat.Dense, error)
}

// Reporter consumes batched prediction outputs. Reporters that declare
// NeedsBasePred receive the reference-base predictions alongside the
// alternate-allele predictions; all others receive only the alternate
// outputs (refOut is nil).
type Reporter interface {
	NeedsBasePred() bool
	HandleBatchPredictions(altOut *mat.Dense, ids []string, refOut *mat.Dense) error
}

// HandleRefAltPredictions invokes the model once on the stacked reference
// batch and once on the stacked alternate batch and dispatches the
// outputs to each reporter. A model failure aborts the batch; there is no
// retry.
func HandleRefAltPredictions(model Model, refBatch, altBatch []*mat.Dense, ids []string, reporters []Reporter) error {
	refOut, err := model.Predict(refBatch)
	if err != nil {
		return fmt.Errorf("predict reference batch: %w", err)
	}
	altOut, err := model.Predict(altBatch)
	if err != nil {
		return fmt.Errorf("predict alternate batch: %w", err)
	}

	for _, r := range reporters {
		if r.NeedsBasePred() {
			if err := r.HandleBatchPredictions(altOut, ids, refOut); err != nil {
				return fmt.Errorf("report predictions: %w", err)
			}
		} else {
			if err := r.HandleBatchPredictions(altOut, ids, nil); err != nil {
				return fmt.Errorf("report predictions: %w", err)
			}
		}
	}

	return nil
}
