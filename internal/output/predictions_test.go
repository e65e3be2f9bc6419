package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPredictionWriter(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPredictionWriter(&buf)

	assert.False(t, pw.NeedsBasePred())

	altOut := mat.NewDense(2, 2, []float64{0.5, 1.25, -2, 0})
	require.NoError(t, pw.HandleBatchPredictions(altOut, []string{"a", "b"}, nil))
	require.NoError(t, pw.Flush())

	want := "name\tscore_0\tscore_1\n" +
		"a\t0.5\t1.25\n" +
		"b\t-2\t0\n"
	assert.Equal(t, want, buf.String())
}

func TestPredictionWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPredictionWriter(&buf)

	out := mat.NewDense(1, 1, []float64{1})
	require.NoError(t, pw.HandleBatchPredictions(out, []string{"a"}, nil))
	require.NoError(t, pw.HandleBatchPredictions(out, []string{"b"}, nil))
	require.NoError(t, pw.Flush())

	assert.Equal(t, "name\tscore_0\na\t1\nb\t1\n", buf.String())
}

func TestDiffWriter(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDiffWriter(&buf)

	assert.True(t, dw.NeedsBasePred())

	altOut := mat.NewDense(1, 2, []float64{3, 1})
	refOut := mat.NewDense(1, 2, []float64{1, 1})
	require.NoError(t, dw.HandleBatchPredictions(altOut, []string{"v"}, refOut))
	require.NoError(t, dw.Flush())

	assert.Equal(t, "name\tscore_0\tscore_1\nv\t2\t0\n", buf.String())
}

func TestWriterRowCountMismatch(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPredictionWriter(&buf)

	out := mat.NewDense(2, 1, []float64{1, 2})
	err := pw.HandleBatchPredictions(out, []string{"only-one"}, nil)
	assert.Error(t, err)
}
