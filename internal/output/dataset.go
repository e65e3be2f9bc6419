// Package output provides prediction reporters and sampled-dataset
// writers.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/openbio/seqsampler/internal/sampler"
)

// DatasetWriter logs accepted sampled windows as tab-separated rows:
// mode, chrom, start, end, strand, semicolon-joined nonzero label
// indices. It implements sampler.DatasetLogger.
type DatasetWriter struct {
	w *bufio.Writer
}

// NewDatasetWriter creates a dataset log writer.
func NewDatasetWriter(w io.Writer) *DatasetWriter {
	return &DatasetWriter{w: bufio.NewWriter(w)}
}

// LogSample implements sampler.DatasetLogger.
func (dw *DatasetWriter) LogSample(mode sampler.Mode, chrom string, start, end int, strand byte, labelIndices []int) error {
	_, err := fmt.Fprintf(dw.w, "%s\t%s\t%d\t%d\t%c\t%s\n",
		mode, chrom, start, end, strand, joinIndices(labelIndices))
	return err
}

// Flush writes any buffered rows to the underlying writer.
func (dw *DatasetWriter) Flush() error {
	return dw.w.Flush()
}

func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ";")
}
