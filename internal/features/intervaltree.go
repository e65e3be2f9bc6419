package features

import "sort"

// intervalTree provides O(log n + k) overlap queries using a sorted-slice
// approach. Entries are loaded once and never modified after build.
type intervalTree struct {
	entries []entry
	maxEnd  []int // maxEnd[i] = max(end) for entries[:i+1]
}

// entry is one half-open annotated range on a single chromosome.
type entry struct {
	start   int
	end     int
	feature int // index into the store's feature list
}

// buildIntervalTree creates an interval tree from a slice of entries.
func buildIntervalTree(entries []entry) *intervalTree {
	if len(entries) == 0 {
		return &intervalTree{}
	}

	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start < sorted[j].start
	})

	// Build prefix-max array: maxEnd[i] = max(end) for sorted[:i+1]
	maxEnd := make([]int, len(sorted))
	maxEnd[0] = sorted[0].end
	for i := 1; i < len(sorted); i++ {
		maxEnd[i] = sorted[i].end
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &intervalTree{entries: sorted, maxEnd: maxEnd}
}

// overlapping returns the feature indices of all entries overlapping the
// half-open query range [start, end). The result may contain duplicates
// when a feature is annotated in several overlapping ranges.
func (t *intervalTree) overlapping(start, end int) []int {
	if len(t.entries) == 0 || start >= end {
		return nil
	}

	var result []int

	// Binary search: find the first entry with start >= end.
	// All candidates lie to its left.
	hi := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].start >= end
	})

	for i := hi - 1; i >= 0; i-- {
		// Prune: maxEnd[i] covers entries[:i+1]. If none of them extends
		// past the query start, nothing further left can overlap.
		if t.maxEnd[i] <= start {
			break
		}
		if t.entries[i].end > start {
			result = append(result, t.entries[i].feature)
		}
	}

	return result
}
