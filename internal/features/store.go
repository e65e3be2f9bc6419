// Package features provides the functional-genomics label collaborator:
// fixed-length label vectors for a genomic region, backed by BED-style
// feature annotations.
package features

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Query is the label capability consumed by the sampler. FeatureData
// returns a vector of length len(Features()) with 1 at every slot whose
// feature overlaps the half-open query range.
type Query interface {
	FeatureData(chrom string, start, end int) []float64
	Features() []string
}

// Record is one annotated feature range.
type Record struct {
	Chrom   string
	Start   int
	End     int
	Feature string
}

// Store answers label-vector queries over a fixed set of distinct
// features, with per-chromosome interval trees for overlap lookup.
type Store struct {
	features []string
	slots    map[string]int
	trees    map[string]*intervalTree
}

// New builds a store from feature records. The distinct feature list is
// the sorted set of feature names seen in the records; its order fixes
// the label-vector layout.
func New(records []Record) *Store {
	s := &Store{slots: make(map[string]int)}

	for _, r := range records {
		if _, ok := s.slots[r.Feature]; !ok {
			s.slots[r.Feature] = 0
			s.features = append(s.features, r.Feature)
		}
	}
	sort.Strings(s.features)
	for i, name := range s.features {
		s.slots[name] = i
	}

	perChrom := make(map[string][]entry)
	for _, r := range records {
		perChrom[r.Chrom] = append(perChrom[r.Chrom], entry{
			start:   r.Start,
			end:     r.End,
			feature: s.slots[r.Feature],
		})
	}
	s.trees = make(map[string]*intervalTree, len(perChrom))
	for chrom, entries := range perChrom {
		s.trees[chrom] = buildIntervalTree(entries)
	}

	return s
}

// LoadBED reads feature records from a BED-like tab-separated file with
// columns chrom, start, end, name. Extra columns are ignored. Supports
// plain and gzipped (.gz) files.
func LoadBED(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open features file: %w", err)
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

	records, err := parseBED(reader)
	if err != nil {
		return nil, err
	}
	return New(records), nil
}

func parseBED(reader io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(reader)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 4 {
			return nil, fmt.Errorf("features line %d: expected at least 4 columns, found %d",
				lineNumber, len(cols))
		}
		start, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, fmt.Errorf("features line %d: invalid start %q", lineNumber, cols[1])
		}
		end, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, fmt.Errorf("features line %d: invalid end %q", lineNumber, cols[2])
		}
		records = append(records, Record{Chrom: cols[0], Start: start, End: end, Feature: cols[3]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan features: %w", err)
	}

	return records, nil
}

// Features returns the distinct feature names in label-vector order.
func (s *Store) Features() []string {
	return s.features
}

// FeatureData implements Query.
func (s *Store) FeatureData(chrom string, start, end int) []float64 {
	labels := make([]float64, len(s.features))
	tree, ok := s.trees[chrom]
	if !ok {
		return labels
	}
	for _, slot := range tree.overlapping(start, end) {
		labels[slot] = 1
	}
	return labels
}
