package predict

import (
	"path/filepath"
	"testing"

	"github.com/kshedden/gonpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/openbio/seqsampler/internal/sequence"
)

func writeNpy(t *testing.T, shape []int, data []float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.npy")
	w, err := gonpy.NewFileWriter(path)
	require.NoError(t, err)
	w.Shape = shape
	require.NoError(t, w.WriteFloat64(data))
	return path
}

func TestLinearModelPredict(t *testing.T) {
	// 8x2 weights over a 2 bp window: column 0 is all ones (output =
	// window sum), column 1 holds the flat index.
	data := make([]float64, 16)
	for i := 0; i < 8; i++ {
		data[2*i] = 1
		data[2*i+1] = float64(i)
	}
	path := writeNpy(t, []int{8, 2}, data)

	model, err := LoadLinearModel(path)
	require.NoError(t, err)
	assert.Equal(t, 2, model.NumOutputs())

	// "AC" flattens to [1 0 0 0 | 0 1 0 0]: sum 2, index dot 0+5.
	out, err := model.Predict([]*mat.Dense{sequence.Encode("AC")})
	require.NoError(t, err)
	assert.Equal(t, 2.0, out.At(0, 0))
	assert.Equal(t, 5.0, out.At(0, 1))
}

func TestLinearModelShapeMismatch(t *testing.T) {
	path := writeNpy(t, []int{8, 1}, make([]float64, 8))
	model, err := LoadLinearModel(path)
	require.NoError(t, err)

	// A 3 bp window flattens to 12 values against 8 weight rows.
	_, err = model.Predict([]*mat.Dense{sequence.Encode("ACG")})
	assert.Error(t, err)
}

func TestLoadLinearModelErrors(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.npy"))
	assert.Error(t, err)
}
