package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/openbio/seqsampler/internal/intervals"
)

func TestDrawCacheDomain(t *testing.T) {
	sample := intervals.SampleIndices{
		Indices: []int{3, 7, 12},
		Weights: []float64{0.2, 0.3, 0.5},
	}
	cache, err := newDrawCache(sample, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	allowed := map[int]bool{3: true, 7: true, 12: true}
	for i := 0; i < 50; i++ {
		idx := cache.next()
		assert.True(t, allowed[idx], "drawn index %d not in the sample set", idx)
	}
}

func TestDrawCacheRefills(t *testing.T) {
	sample := intervals.SampleIndices{
		Indices: []int{5},
		Weights: []float64{1},
	}
	cache, err := newDrawCache(sample, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// The cache holds len(Indices) pre-drawn values; reading past the end
	// must transparently refill.
	for i := 0; i < 10; i++ {
		assert.Equal(t, 5, cache.next())
	}
}

func TestDrawCacheEmpty(t *testing.T) {
	_, err := newDrawCache(intervals.SampleIndices{}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestDrawCacheDeterministic(t *testing.T) {
	sample := intervals.SampleIndices{
		Indices: []int{1, 2, 3, 4},
		Weights: []float64{0.25, 0.25, 0.25, 0.25},
	}

	a, err := newDrawCache(sample, rand.New(rand.NewSource(436)))
	require.NoError(t, err)
	b, err := newDrawCache(sample, rand.New(rand.NewSource(436)))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.next(), b.next(), "draw %d diverged", i)
	}
}
