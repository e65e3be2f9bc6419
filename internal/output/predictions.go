package output

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// PredictionWriter reports the model outputs for alternate-allele
// windows in tab-delimited form: one row per variant, the variant id
// followed by each output value. It implements predict.Reporter and does
// not need reference-base predictions.
type PredictionWriter struct {
	w           *bufio.Writer
	wroteHeader bool
}

// NewPredictionWriter creates a tab-delimited prediction reporter.
func NewPredictionWriter(w io.Writer) *PredictionWriter {
	return &PredictionWriter{w: bufio.NewWriter(w)}
}

// NeedsBasePred implements predict.Reporter.
func (pw *PredictionWriter) NeedsBasePred() bool {
	return false
}

// HandleBatchPredictions implements predict.Reporter.
func (pw *PredictionWriter) HandleBatchPredictions(altOut *mat.Dense, ids []string, _ *mat.Dense) error {
	_, cols := altOut.Dims()
	if !pw.wroteHeader {
		if err := writeScoreHeader(pw.w, cols); err != nil {
			return err
		}
		pw.wroteHeader = true
	}
	return writeScoreRows(pw.w, altOut, ids, nil)
}

// Flush writes any buffered rows to the underlying writer.
func (pw *PredictionWriter) Flush() error {
	return pw.w.Flush()
}

// DiffWriter reports the difference between alternate and reference
// predictions (alt - ref) per output. It implements predict.Reporter and
// declares that it needs reference-base predictions.
type DiffWriter struct {
	w           *bufio.Writer
	wroteHeader bool
}

// NewDiffWriter creates a tab-delimited diff-score reporter.
func NewDiffWriter(w io.Writer) *DiffWriter {
	return &DiffWriter{w: bufio.NewWriter(w)}
}

// NeedsBasePred implements predict.Reporter.
func (dw *DiffWriter) NeedsBasePred() bool {
	return true
}

// HandleBatchPredictions implements predict.Reporter.
func (dw *DiffWriter) HandleBatchPredictions(altOut *mat.Dense, ids []string, refOut *mat.Dense) error {
	_, cols := altOut.Dims()
	if !dw.wroteHeader {
		if err := writeScoreHeader(dw.w, cols); err != nil {
			return err
		}
		dw.wroteHeader = true
	}
	return writeScoreRows(dw.w, altOut, ids, refOut)
}

// Flush writes any buffered rows to the underlying writer.
func (dw *DiffWriter) Flush() error {
	return dw.w.Flush()
}

func writeScoreHeader(w *bufio.Writer, cols int) error {
	if _, err := w.WriteString("name"); err != nil {
		return err
	}
	for j := 0; j < cols; j++ {
		if _, err := fmt.Fprintf(w, "\tscore_%d", j); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

// writeScoreRows writes one row per id. With refOut nil the alternate
// outputs are written as-is; otherwise each value is alt - ref.
func writeScoreRows(w *bufio.Writer, altOut *mat.Dense, ids []string, refOut *mat.Dense) error {
	rows, cols := altOut.Dims()
	if rows != len(ids) {
		return fmt.Errorf("got %d output rows for %d ids", rows, len(ids))
	}
	for i := 0; i < rows; i++ {
		if _, err := w.WriteString(ids[i]); err != nil {
			return err
		}
		for j := 0; j < cols; j++ {
			value := altOut.At(i, j)
			if refOut != nil {
				value -= refOut.At(i, j)
			}
			if _, err := fmt.Fprintf(w, "\t%g", value); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	return nil
}
