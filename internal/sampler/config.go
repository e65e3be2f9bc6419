// Package sampler draws training, validation, and test examples of
// genome sequence windows and their feature labels from a weighted set
// of genomic intervals.
package sampler

import "fmt"

// Mode identifies which partition examples are drawn from.
type Mode string

// Sampling modes.
const (
	ModeTrain    Mode = "train"
	ModeValidate Mode = "validate"
	ModeTest     Mode = "test"
)

// AllModes lists the sampling modes in their canonical order.
var AllModes = []Mode{ModeTrain, ModeValidate, ModeTest}

// HoldoutType selects how intervals are reserved for validation/test.
type HoldoutType string

// Holdout strategies.
const (
	HoldoutProportion HoldoutType = "proportion"
	HoldoutChromosome HoldoutType = "chromosome"
)

// minUnambiguousFraction is the rejection threshold on the fraction of
// unambiguous bases in a retrieved window.
const minUnambiguousFraction = 0.60

// DefaultMaxRetries bounds the rejection-sampling loop per batch. Large
// enough that well-formed inputs never hit it; set MaxRetries to 0 for
// unbounded retries.
const DefaultMaxRetries = 100000

// Config holds the sampling parameters. SequenceLength is the width of
// the encoded input window; CenterBinToPredict is the narrower centered
// sub-window over which labels are queried. The dependent radii are
// derived and validated by Validate before first use.
type Config struct {
	SequenceLength     int
	CenterBinToPredict int
	RandomSeed         uint64
	SampleNegative     bool
	MaxRetries         int

	Holdout              HoldoutType
	ValidationProportion float64
	TestProportion       float64
	ValidationChroms     []string
	TestChroms           []string

	SaveDatasets []Mode

	// derived by Validate
	binStartRadius    int
	binEndRadius      int
	surroundingRadius int
}

// DefaultConfig returns the sampling defaults: a 1001 bp window with a
// 201 bp center bin, chromosome holdout of 6/7 for validation and 8/9
// for test, and the test set logged.
func DefaultConfig() Config {
	return Config{
		SequenceLength:     1001,
		CenterBinToPredict: 201,
		RandomSeed:         436,
		MaxRetries:         DefaultMaxRetries,
		Holdout:            HoldoutChromosome,
		ValidationChroms:   []string{"6", "7"},
		TestChroms:         []string{"8", "9"},
		SaveDatasets:       []Mode{ModeTest},
	}
}

// Validate checks the configuration and derives the dependent radii.
func (c *Config) Validate() error {
	if c.SequenceLength <= 0 {
		return fmt.Errorf("sequence length must be positive, got %d", c.SequenceLength)
	}
	if c.CenterBinToPredict <= 0 {
		return fmt.Errorf("center bin must be positive, got %d", c.CenterBinToPredict)
	}
	if c.CenterBinToPredict > c.SequenceLength {
		return fmt.Errorf("center bin %d wider than sequence length %d",
			c.CenterBinToPredict, c.SequenceLength)
	}
	if (c.SequenceLength-c.CenterBinToPredict)%2 != 0 {
		return fmt.Errorf("sequence length %d and center bin %d must have the same parity",
			c.SequenceLength, c.CenterBinToPredict)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", c.MaxRetries)
	}

	switch c.Holdout {
	case HoldoutProportion:
		if len(c.ValidationChroms) > 0 || len(c.TestChroms) > 0 {
			return fmt.Errorf("holdout chromosomes set with proportional holdout")
		}
		if c.ValidationProportion < 0 || c.ValidationProportion > 1 {
			return fmt.Errorf("validation proportion %v outside [0, 1]", c.ValidationProportion)
		}
		if c.TestProportion < 0 || c.TestProportion > 1 {
			return fmt.Errorf("test proportion %v outside [0, 1]", c.TestProportion)
		}
		if c.ValidationProportion+c.TestProportion > 1 {
			return fmt.Errorf("holdout proportions sum to %v, exceeding 1",
				c.ValidationProportion+c.TestProportion)
		}
	case HoldoutChromosome:
		if c.ValidationProportion != 0 || c.TestProportion != 0 {
			return fmt.Errorf("holdout proportions set with chromosome holdout")
		}
	default:
		return fmt.Errorf("unknown holdout type %q", c.Holdout)
	}

	for _, m := range c.SaveDatasets {
		if !validMode(m) {
			return fmt.Errorf("unknown mode %q in save datasets", m)
		}
	}

	c.binStartRadius = c.CenterBinToPredict / 2
	c.binEndRadius = c.CenterBinToPredict/2 + c.CenterBinToPredict%2
	c.surroundingRadius = (c.SequenceLength - c.CenterBinToPredict) / 2

	return nil
}

func validMode(m Mode) bool {
	for _, known := range AllModes {
		if m == known {
			return true
		}
	}
	return false
}
