package predict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/openbio/seqsampler/internal/sequence"
)

// sumModel outputs a single column holding the sum of each window.
type sumModel struct {
	calls int
	fail  bool
}

func (m *sumModel) Predict(batch []*mat.Dense) (*mat.Dense, error) {
	m.calls++
	if m.fail {
		return nil, fmt.Errorf("model unavailable")
	}
	out := mat.NewDense(len(batch), 1, nil)
	for i, w := range batch {
		out.Set(i, 0, mat.Sum(w))
	}
	return out, nil
}

// captureReporter records every dispatched batch.
type captureReporter struct {
	needsBase bool
	altOuts   []*mat.Dense
	refOuts   []*mat.Dense
	ids       [][]string
}

func (r *captureReporter) NeedsBasePred() bool { return r.needsBase }

func (r *captureReporter) HandleBatchPredictions(altOut *mat.Dense, ids []string, refOut *mat.Dense) error {
	r.altOuts = append(r.altOuts, altOut)
	r.refOuts = append(r.refOuts, refOut)
	r.ids = append(r.ids, ids)
	return nil
}

func TestHandleRefAltPredictions(t *testing.T) {
	model := &sumModel{}
	plain := &captureReporter{}
	withBase := &captureReporter{needsBase: true}

	refBatch := []*mat.Dense{sequence.Encode("ACGT"), sequence.Encode("ACNN")}
	altBatch := []*mat.Dense{sequence.Encode("AGGT"), sequence.Encode("ACGT")}
	ids := []string{"a", "b"}

	err := HandleRefAltPredictions(model, refBatch, altBatch, ids, []Reporter{plain, withBase})
	require.NoError(t, err)
	assert.Equal(t, 2, model.calls, "one call per allele batch")

	require.Len(t, plain.altOuts, 1)
	assert.Nil(t, plain.refOuts[0], "reporter without base predictions gets nil refOut")
	assert.Equal(t, ids, plain.ids[0])

	require.Len(t, withBase.refOuts, 1)
	require.NotNil(t, withBase.refOuts[0])
	assert.Equal(t, 4.0, withBase.refOuts[0].At(0, 0))
	assert.Equal(t, 2.0, withBase.refOuts[0].At(1, 0))
	assert.Equal(t, 4.0, withBase.altOuts[0].At(0, 0))
}

func TestHandleRefAltPredictionsModelError(t *testing.T) {
	model := &sumModel{fail: true}
	rep := &captureReporter{}

	err := HandleRefAltPredictions(model,
		[]*mat.Dense{sequence.Encode("AC")},
		[]*mat.Dense{sequence.Encode("AG")},
		[]string{"a"}, []Reporter{rep})
	require.Error(t, err)
	assert.Empty(t, rep.altOuts, "no dispatch after a model failure")
}
