package predict

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/openbio/seqsampler/internal/sequence"
	"github.com/openbio/seqsampler/internal/vcf"
)

// Scorer drives variant effect scoring over a stream of variants: for
// each variant it retrieves the wild-type window centered on the
// reference allele, reconciles the declared reference against the genome,
// reconstructs the alternate window, and flushes full batches through the
// model to the configured reporters.
type Scorer struct {
	genome         sequence.Genome
	model          Model
	reporters      []Reporter
	batchSize      int
	sequenceLength int
	startRadius    int
	endRadius      int
	logger         *zap.Logger
}

// NewScorer creates a scorer producing windows of the given sequence
// length, flushed to the model in batches of batchSize.
func NewScorer(g sequence.Genome, model Model, sequenceLength, batchSize int) (*Scorer, error) {
	if sequenceLength <= 0 {
		return nil, fmt.Errorf("sequence length must be positive, got %d", sequenceLength)
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	return &Scorer{
		genome:         g,
		model:          model,
		batchSize:      batchSize,
		sequenceLength: sequenceLength,
		startRadius:    sequenceLength / 2,
		endRadius:      sequenceLength/2 + sequenceLength%2,
		logger:         zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for warning and diagnostic messages.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// AddReporter appends a reporter to the dispatch list.
func (s *Scorer) AddReporter(r Reporter) {
	s.reporters = append(s.reporters, r)
}

// FormatVariantID renders the identifier reporters receive for a variant.
func FormatVariantID(v *vcf.Variant) string {
	ref := v.Ref
	if ref == "" {
		ref = "-"
	}
	alt := v.Alt
	if alt == "" {
		alt = "-"
	}
	return fmt.Sprintf("%s_%d_%s_%s_%s_%c", v.Chrom, v.Pos, v.Name, ref, alt, v.Strand)
}

// ScoreAll scores every variant from a parser. See ScoreVariants.
func (s *Scorer) ScoreAll(parser vcf.VariantParser) error {
	var variants []*vcf.Variant
	for {
		v, err := parser.Next()
		if err != nil {
			return fmt.Errorf("read variant: %w", err)
		}
		if v == nil {
			break
		}
		variants = append(variants, v)
	}
	return s.ScoreVariants(variants)
}

// ScoreVariants scores a list of variants. Variants whose window cannot
// be retrieved are skipped with a warning; reference mismatches are
// corrected in place, surfaced at warn level, and scoring proceeds with
// the corrected window. Model failures abort the run.
func (s *Scorer) ScoreVariants(variants []*vcf.Variant) error {
	var refBatch, altBatch []*mat.Dense
	var ids []string

	flush := func() error {
		if len(ids) == 0 {
			return nil
		}
		err := HandleRefAltPredictions(s.model, refBatch, altBatch, ids, s.reporters)
		refBatch = refBatch[:0]
		altBatch = altBatch[:0]
		ids = ids[:0]
		return err
	}

	for _, v := range variants {
		refLen := len(v.Ref)
		center := int(v.Pos) + refLen/2
		start := center - s.startRadius
		end := center + s.endRadius

		windowEnc := s.genome.EncodingFromCoords(v.Chrom, start, end, v.Strand)
		if windowEnc == nil {
			s.logger.Warn("window sequence could not be retrieved, skipping variant",
				zap.String("variant", v.String()))
			continue
		}

		if refLen > 0 {
			refEnc := s.genome.SequenceToEncoding(strings.ToUpper(v.Ref))

			var matched bool
			var observed string
			if refLen < s.startRadius+s.endRadius {
				matched, windowEnc, observed = CheckRef(
					s.genome, refEnc, windowEnc, s.startRadius, v.Strand)
			} else {
				matched, windowEnc, observed = CheckLongRef(
					s.genome, refEnc, windowEnc, s.startRadius, s.endRadius, v.Strand)
			}
			if !matched {
				s.logger.Warn("declared reference allele does not match genome, patched window",
					zap.String("variant", v.String()),
					zap.String("observed", observed))
			}
		}

		wtSequence := s.genome.EncodingToSequence(windowEnc)
		altEnc := BuildAltSequence(s.genome, v, start, end, s.startRadius, wtSequence)

		refBatch = append(refBatch, windowEnc)
		altBatch = append(altBatch, altEnc)
		ids = append(ids, FormatVariantID(v))

		if len(ids) == s.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
