package sampler

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/openbio/seqsampler/internal/intervals"
)

// drawCache holds one mode's pre-drawn interval indices. Indices are
// drawn i.i.d. with replacement according to the mode's weights; the
// cursor marks the next unread position and the cache refills when it
// reaches the end.
type drawCache struct {
	sample intervals.SampleIndices
	cat    distuv.Categorical
	cache  []int
	cursor int
}

// newDrawCache builds and fills a cache for one mode. An empty partition
// is a configuration error: nothing can ever be drawn from it.
func newDrawCache(sample intervals.SampleIndices, src rand.Source) (*drawCache, error) {
	if len(sample.Indices) == 0 {
		return nil, fmt.Errorf("no intervals to sample from")
	}
	c := &drawCache{
		sample: sample,
		cat:    distuv.NewCategorical(sample.Weights, src),
		cache:  make([]int, len(sample.Indices)),
	}
	c.refill()
	return c, nil
}

func (c *drawCache) refill() {
	for i := range c.cache {
		c.cache[i] = c.sample.Indices[int(c.cat.Rand())]
	}
	c.cursor = 0
}

// next returns the next pre-drawn interval index, refilling first if the
// cache is exhausted.
func (c *drawCache) next() int {
	if c.cursor == len(c.cache) {
		c.refill()
	}
	idx := c.cache[c.cursor]
	c.cursor++
	return idx
}
