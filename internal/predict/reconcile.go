package predict

import (
	"gonum.org/v1/gonum/mat"

	"github.com/openbio/seqsampler/internal/sequence"
)

// CheckRef verifies that the reference allele observed in a wild-type
// window matches the VCF-declared reference encoding. The expected span
// is located with the same centering rule used for allele splicing, with
// mid the window offset of the physical center. On mismatch the span is
// overwritten with the declared reference, trusting the VCF over the
// genome. Returns whether the alleles matched, the (possibly corrected)
// window, and the text actually observed at the span for diagnostics.
func CheckRef(g sequence.Genome, refEnc, windowEnc *mat.Dense, mid int, strand byte) (bool, *mat.Dense, string) {
	refLen, _ := refEnc.Dims()
	start, _ := refAlleleSpan(mid, strand, refLen)

	sub := windowEnc.Slice(start, start+refLen, 0, len(sequence.Alphabet)).(*mat.Dense)
	observed := g.EncodingToSequence(sub)

	matched := mat.Equal(sub, refEnc)
	if !matched {
		for i := 0; i < refLen; i++ {
			windowEnc.SetRow(start+i, mat.Row(nil, i, refEnc))
		}
	}
	return matched, windowEnc, observed
}

// CheckLongRef handles reference alleles at least as wide as the window
// itself. The declared reference encoding is sliced down to the window
// span, offset by one on the forward strand, and compared against the
// entire window; on mismatch the whole window is replaced by the sliced
// reference.
func CheckLongRef(g sequence.Genome, refEnc, windowEnc *mat.Dense, startRadius, endRadius int, strand byte) (bool, *mat.Dense, string) {
	refLen, _ := refEnc.Dims()
	observed := g.EncodingToSequence(windowEnc)

	refStart := refLen/2 - startRadius
	refEnd := refLen/2 + endRadius
	if strand != '-' {
		refStart--
		refEnd--
	}
	sliced := refEnc.Slice(refStart, refEnd, 0, len(sequence.Alphabet)).(*mat.Dense)

	matched := mat.Equal(windowEnc, sliced)
	if !matched {
		return false, sliced, observed
	}
	return true, windowEnc, observed
}
