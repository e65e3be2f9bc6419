// Package intervals provides genomic interval loading, length-weighted
// index selection, and train/validate/test partitioning.
package intervals

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Interval is a half-open genomic coordinate range eligible for sampling.
// Intervals are identified by their position in the loaded slice.
type Interval struct {
	Chrom string
	Start int
	End   int
}

// Length returns End - Start.
func (iv Interval) Length() int {
	return iv.End - iv.Start
}

// Lengths returns the per-interval length table for a loaded interval list.
func Lengths(ivs []Interval) []int {
	lengths := make([]int, len(ivs))
	for i, iv := range ivs {
		lengths[i] = iv.Length()
	}
	return lengths
}

// Load reads intervals from a tab-separated file with columns
// chrom, start, end. Extra columns are ignored; no header is assumed.
// Supports both plain and gzipped (.gz) files.
func Load(path string) ([]Interval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open intervals file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}

// Parse reads intervals from tab-separated content.
func Parse(reader io.Reader) ([]Interval, error) {
	var ivs []Interval
	scanner := bufio.NewScanner(reader)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, fmt.Errorf("intervals line %d: expected at least 3 columns, found %d",
				lineNumber, len(cols))
		}
		start, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, fmt.Errorf("intervals line %d: invalid start %q", lineNumber, cols[1])
		}
		end, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, fmt.Errorf("intervals line %d: invalid end %q", lineNumber, cols[2])
		}
		ivs = append(ivs, Interval{Chrom: cols[0], Start: start, End: end})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan intervals: %w", err)
	}

	return ivs, nil
}
