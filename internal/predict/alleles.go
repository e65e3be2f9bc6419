// Package predict evaluates how a variant changes a model's output
// relative to the reference sequence: it reconstructs alternate-allele
// windows, reconciles declared against observed reference alleles, and
// dispatches batched model predictions to reporters.
package predict

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/openbio/seqsampler/internal/sequence"
	"github.com/openbio/seqsampler/internal/vcf"
)

// refAlleleSpan returns the half-open offset range [start, end) inside a
// window where a reference allele of the given length sits, for a window
// whose physical center is at offset mid. The centering rule is strand-
// and length-aware so that reference and alternate windows stay aligned
// on the same genomic center.
func refAlleleSpan(mid int, strand byte, refLen int) (int, int) {
	start := mid
	switch {
	case strand == '-' && refLen > 1:
		start = mid - (refLen+1)/2 + 1
	case strand == '+' && refLen == 1:
		start = mid - 1
	case strand == '+':
		start = mid - refLen/2 - 1
	}
	return start, start + refLen
}

// truncateToLength center-truncates a sequence to the given length.
func truncateToLength(seq string, length int) string {
	start := (len(seq) - length) / 2
	return seq[start : start+length]
}

// BuildAltSequence reconstructs the alternate-allele window for a variant
// given the wild-type window text. windowStart and windowEnd are the
// genomic coordinates of the window and startRadius its left radius; the
// variant's Pos is the 1-based VCF position. The reconstruction is done
// as text and re-encoded through the genome's encoder, never by matrix
// splicing.
//
// Case dispatch on allele lengths:
//   - alternate longer than the whole window: center-truncate the
//     alternate allele alone, discarding all reference context;
//   - equal lengths (substitution): splice the alternate over the
//     reference span;
//   - alternate longer than reference (insertion): splice, then
//     center-truncate back to the window length;
//   - alternate shorter than reference (deletion): requery flanking
//     reference text from the genome with asymmetric margins that keep
//     the deletion centered, assembling right-alt-left on the reverse
//     strand and left-alt-right otherwise.
func BuildAltSequence(g sequence.Genome, v *vcf.Variant, windowStart, windowEnd, startRadius int, wtSequence string) *mat.Dense {
	refLen := len(v.Ref)
	altLen := len(v.Alt)
	pos := int(v.Pos)

	var text string
	switch {
	case altLen > len(wtSequence):
		text = truncateToLength(v.Alt, len(wtSequence))
	case refLen == altLen:
		start, end := refAlleleSpan(startRadius, v.Strand, refLen)
		text = wtSequence[:start] + v.Alt + wtSequence[end:]
	case altLen > refLen:
		start, _ := refAlleleSpan(startRadius, v.Strand, refLen)
		text = truncateToLength(
			wtSequence[:start]+v.Alt+wtSequence[start+refLen:],
			len(wtSequence))
	default:
		lhs, _ := g.SequenceFromCoords(v.Chrom,
			windowStart-refLen/2+altLen/2,
			pos+1,
			v.Strand, true)
		rhs, _ := g.SequenceFromCoords(v.Chrom,
			pos+1+refLen,
			windowEnd+int(math.Ceil(float64(refLen)/2))-int(math.Ceil(float64(altLen)/2)),
			v.Strand, true)
		if v.Strand == '-' {
			text = rhs + v.Alt + lhs
		} else {
			text = lhs + v.Alt + rhs
		}
	}

	return g.SequenceToEncoding(text)
}
