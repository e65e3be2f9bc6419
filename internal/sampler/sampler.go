package sampler

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/openbio/seqsampler/internal/features"
	"github.com/openbio/seqsampler/internal/intervals"
	"github.com/openbio/seqsampler/internal/sequence"
)

// DatasetLogger receives every accepted example for modes listed in
// Config.SaveDatasets. Single writer, append-only.
type DatasetLogger interface {
	LogSample(mode Mode, chrom string, start, end int, strand byte, labelIndices []int) error
}

// IntervalSampler draws encoded sequence windows and label vectors from
// genomic intervals, biased by interval length and stratified by holdout
// partition. It is single-threaded: all randomness comes from one seeded
// generator, so draw order is reproducible for a fixed seed.
type IntervalSampler struct {
	cfg       Config
	genome    sequence.Genome
	query     features.Query
	intervals []intervals.Interval
	lengths   []int

	sampleFrom map[Mode]intervals.SampleIndices
	caches     map[Mode]*drawCache
	mode       Mode

	rng       *rand.Rand
	logger    *zap.Logger
	datasets  DatasetLogger
	saveModes map[Mode]bool
	nFeatures int
}

// New builds a sampler over the given intervals. The configuration is
// validated and the partition weights and draw caches are constructed up
// front; partitions left empty by the holdout simply cannot be sampled
// from later. The initial mode is train.
func New(genome sequence.Genome, query features.Query, ivs []intervals.Interval, cfg Config) (*IntervalSampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sampler config: %w", err)
	}
	if len(ivs) == 0 {
		return nil, fmt.Errorf("no intervals to sample from")
	}

	s := &IntervalSampler{
		cfg:       cfg,
		genome:    genome,
		query:     query,
		intervals: ivs,
		lengths:   intervals.Lengths(ivs),
		rng:       rand.New(rand.NewSource(cfg.RandomSeed)),
		logger:    zap.NewNop(),
		saveModes: make(map[Mode]bool),
		nFeatures: len(query.Features()),
	}
	for _, m := range cfg.SaveDatasets {
		s.saveModes[m] = true
	}

	var part intervals.Partition
	switch cfg.Holdout {
	case HoldoutProportion:
		var err error
		part, err = intervals.PartitionProportion(
			s.lengths, cfg.ValidationProportion, cfg.TestProportion, s.rng)
		if err != nil {
			return nil, fmt.Errorf("partition intervals: %w", err)
		}
	case HoldoutChromosome:
		part = intervals.PartitionChromosome(ivs, s.lengths, cfg.ValidationChroms, cfg.TestChroms)
	}

	s.sampleFrom = map[Mode]intervals.SampleIndices{
		ModeTrain:    part.Train,
		ModeValidate: part.Validate,
		ModeTest:     part.Test,
	}

	s.caches = make(map[Mode]*drawCache)
	for _, m := range AllModes {
		sample := s.sampleFrom[m]
		if len(sample.Indices) == 0 {
			continue
		}
		cache, err := newDrawCache(sample, s.rng)
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", m, err)
		}
		s.caches[m] = cache
	}

	s.mode = ModeTrain
	return s, nil
}

// SetLogger sets the logger for rejection and diagnostic messages.
func (s *IntervalSampler) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetDatasetLogger installs the sink for accepted examples of saved modes.
func (s *IntervalSampler) SetDatasetLogger(dl DatasetLogger) {
	s.datasets = dl
}

// Mode returns the current sampling mode.
func (s *IntervalSampler) Mode() Mode {
	return s.mode
}

// SetMode switches the active sampling mode. Switching to a mode whose
// partition is empty is a configuration error.
func (s *IntervalSampler) SetMode(m Mode) error {
	if !validMode(m) {
		return fmt.Errorf("unknown mode %q", m)
	}
	if _, ok := s.caches[m]; !ok {
		return fmt.Errorf("mode %q has no intervals to sample from", m)
	}
	s.mode = m
	return nil
}

// ModeSize returns the number of intervals assigned to a mode.
func (s *IntervalSampler) ModeSize(m Mode) int {
	return len(s.sampleFrom[m].Indices)
}

// NumFeatures returns the label-vector length.
func (s *IntervalSampler) NumFeatures() int {
	return s.nFeatures
}

// drawWindow draws one interval index from the current mode's cache,
// picks a uniform position inside it, and attempts retrieval. A false
// accepted flag means the draw was rejected and must be retried.
func (s *IntervalSampler) drawWindow() (seq *mat.Dense, labels []float64, accepted bool, err error) {
	cache, ok := s.caches[s.mode]
	if !ok {
		return nil, nil, false, fmt.Errorf("mode %q has no intervals to sample from", s.mode)
	}

	idx := cache.next()
	iv := s.intervals[idx]
	position := iv.Start + int(s.rng.Float64()*float64(s.lengths[idx]))

	return s.retrieve(iv.Chrom, position)
}

// retrieve fetches the label window and encoded sequence window around a
// position, applying the rejection rules: no positive label signal
// (unless negatives are sampled), unretrievable sequence, or too many
// ambiguous bases.
func (s *IntervalSampler) retrieve(chrom string, position int) (*mat.Dense, []float64, bool, error) {
	binStart := position - s.cfg.binStartRadius
	binEnd := position + s.cfg.binEndRadius

	labels := s.query.FeatureData(chrom, binStart, binEnd)
	if !s.cfg.SampleNegative && allZero(labels) {
		s.logger.Info("no features found in sampled region, sampling again",
			zap.String("chrom", chrom), zap.Int("position", position))
		return nil, nil, false, nil
	}

	windowStart := binStart - s.cfg.surroundingRadius
	windowEnd := binEnd + s.cfg.surroundingRadius
	strand := byte(sequence.StrandForward)
	if s.rng.Intn(2) == 1 {
		strand = sequence.StrandReverse
	}

	enc := s.genome.EncodingFromCoords(chrom, windowStart, windowEnd, strand)
	if enc == nil {
		s.logger.Info("sequence window could not be retrieved, sampling again",
			zap.String("chrom", chrom), zap.Int("position", position))
		return nil, nil, false, nil
	}
	if sequence.UnambiguousFraction(enc) < minUnambiguousFraction {
		s.logger.Info("over 40% of bases in sequence window are ambiguous, sampling again",
			zap.String("chrom", chrom), zap.Int("position", position))
		return nil, nil, false, nil
	}

	if s.saveModes[s.mode] && s.datasets != nil {
		err := s.datasets.LogSample(s.mode, chrom, windowStart, windowEnd, strand, nonzeroIndices(labels))
		if err != nil {
			return nil, nil, false, fmt.Errorf("log sampled dataset: %w", err)
		}
	}

	return enc, labels, true, nil
}

// Sample collects a full batch of accepted examples, redrawing on every
// rejection. It returns the encoded windows and a batchSize x nFeatures
// target matrix; it never returns a partial batch. With MaxRetries > 0,
// exceeding the cap yields an error instead of looping forever.
func (s *IntervalSampler) Sample(batchSize int) ([]*mat.Dense, *mat.Dense, error) {
	if batchSize <= 0 {
		return nil, nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	sequences := make([]*mat.Dense, 0, batchSize)
	targets := mat.NewDense(batchSize, s.nFeatures, nil)

	retries := 0
	for drawn := 0; drawn < batchSize; {
		enc, labels, accepted, err := s.drawWindow()
		if err != nil {
			return nil, nil, err
		}
		if !accepted {
			retries++
			if s.cfg.MaxRetries > 0 && retries > s.cfg.MaxRetries {
				return nil, nil, fmt.Errorf(
					"exhausted %d sampling retries in mode %q", s.cfg.MaxRetries, s.mode)
			}
			continue
		}
		sequences = append(sequences, enc)
		targets.SetRow(drawn, labels)
		drawn++
	}

	return sequences, targets, nil
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func nonzeroIndices(v []float64) []int {
	var idx []int
	for i, x := range v {
		if x != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}
