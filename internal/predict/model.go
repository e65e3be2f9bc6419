package predict

import (
	"fmt"

	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
)

// LinearModel scores windows by flattening each one-hot encoding
// row-major and multiplying with a weight matrix loaded from a NumPy
// .npy file. It serves as the built-in reference model for the CLI;
// any external model satisfying Model can replace it.
type LinearModel struct {
	weights *mat.Dense // (sequenceLength * 4) x nOutputs
}

// LoadLinearModel reads a two-dimensional float64 weight matrix from a
// .npy file.
func LoadLinearModel(path string) (*LinearModel, error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open weights file: %w", err)
	}
	if len(r.Shape) != 2 {
		return nil, fmt.Errorf("weights must be 2-dimensional, got shape %v", r.Shape)
	}
	data, err := r.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	return &LinearModel{
		weights: mat.NewDense(r.Shape[0], r.Shape[1], data),
	}, nil
}

// NumOutputs returns the width of the model's output rows.
func (m *LinearModel) NumOutputs() int {
	_, cols := m.weights.Dims()
	return cols
}

// Predict implements Model.
func (m *LinearModel) Predict(batch []*mat.Dense) (*mat.Dense, error) {
	wRows, wCols := m.weights.Dims()
	out := mat.NewDense(len(batch), wCols, nil)

	for i, window := range batch {
		rows, cols := window.Dims()
		if rows*cols != wRows {
			return nil, fmt.Errorf(
				"window %d has %d values, weights expect %d", i, rows*cols, wRows)
		}
		flat := make([]float64, 0, rows*cols)
		for r := 0; r < rows; r++ {
			flat = append(flat, mat.Row(nil, r, window)...)
		}
		var row mat.Dense
		row.Mul(mat.NewDense(1, wRows, flat), m.weights)
		out.SetRow(i, row.RawRowView(0))
	}

	return out, nil
}
