package output

import (
	"fmt"

	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
)

// WriteDatasetNpy writes encoded windows and their target rows as NumPy
// arrays: the stacked sequence encodings to prefix_sequences.npy with
// shape [n, L, 4] and the stacked targets to prefix_targets.npy with
// shape [n, F]. All windows must share one shape; target matrices are
// stacked vertically in order.
func WriteDatasetNpy(prefix string, sequences []*mat.Dense, targets []*mat.Dense) error {
	if len(sequences) == 0 {
		return fmt.Errorf("no sequences to write")
	}

	seqRows, seqCols := sequences[0].Dims()
	seqData := make([]float64, 0, len(sequences)*seqRows*seqCols)
	for i, s := range sequences {
		r, c := s.Dims()
		if r != seqRows || c != seqCols {
			return fmt.Errorf("sequence %d has shape %dx%d, expected %dx%d", i, r, c, seqRows, seqCols)
		}
		for row := 0; row < r; row++ {
			seqData = append(seqData, mat.Row(nil, row, s)...)
		}
	}

	npw, err := gonpy.NewFileWriter(prefix + "_sequences.npy")
	if err != nil {
		return fmt.Errorf("create sequences file: %w", err)
	}
	npw.Shape = []int{len(sequences), seqRows, seqCols}
	if err := npw.WriteFloat64(seqData); err != nil {
		return fmt.Errorf("write sequences: %w", err)
	}

	nTargetRows := 0
	targetCols := 0
	for _, t := range targets {
		r, c := t.Dims()
		nTargetRows += r
		targetCols = c
	}
	targetData := make([]float64, 0, nTargetRows*targetCols)
	for _, t := range targets {
		r, _ := t.Dims()
		for row := 0; row < r; row++ {
			targetData = append(targetData, mat.Row(nil, row, t)...)
		}
	}

	npw, err = gonpy.NewFileWriter(prefix + "_targets.npy")
	if err != nil {
		return fmt.Errorf("create targets file: %w", err)
	}
	npw.Shape = []int{nTargetRows, targetCols}
	if err := npw.WriteFloat64(targetData); err != nil {
		return fmt.Errorf("write targets: %w", err)
	}

	return nil
}
