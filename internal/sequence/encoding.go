// Package sequence provides reference genome access and one-hot encoding
// of nucleotide sequences.
package sequence

import (
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Alphabet is the encoding alphabet. Column i of an encoded sequence
// corresponds to Alphabet[i].
const Alphabet = "ACGT"

// UnknownBase is the character used for ambiguous or padded positions.
// Ambiguous bases encode as an all-zero row, so the sum of an encoding
// equals its number of unambiguous positions.
const UnknownBase = 'N'

// Strand side constants.
const (
	StrandForward = '+'
	StrandReverse = '-'
)

var baseColumn = map[byte]int{
	'A': 0, 'a': 0,
	'C': 1, 'c': 1,
	'G': 2, 'g': 2,
	'T': 3, 't': 3,
}

var complementBase = map[byte]byte{
	'A': 'T', 'a': 't',
	'C': 'G', 'c': 'g',
	'G': 'C', 'g': 'c',
	'T': 'A', 't': 'a',
}

// Encode converts a nucleotide sequence to its one-hot encoding, an L x 4
// matrix over the ACGT alphabet. Bases outside the alphabet produce an
// all-zero row.
func Encode(s string) *mat.Dense {
	if len(s) == 0 {
		return nil
	}
	enc := mat.NewDense(len(s), len(Alphabet), nil)
	for i := 0; i < len(s); i++ {
		if col, ok := baseColumn[s[i]]; ok {
			enc.Set(i, col, 1)
		}
	}
	return enc
}

// Decode converts a one-hot encoding back to its nucleotide sequence.
// All-zero rows decode to UnknownBase.
func Decode(enc *mat.Dense) string {
	if enc == nil {
		return ""
	}
	rows, _ := enc.Dims()
	var sb strings.Builder
	sb.Grow(rows)
	for i := 0; i < rows; i++ {
		base := byte(UnknownBase)
		for j := 0; j < len(Alphabet); j++ {
			if enc.At(i, j) == 1 {
				base = Alphabet[j]
				break
			}
		}
		sb.WriteByte(base)
	}
	return sb.String()
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence. Bases without a complement (e.g. 'N') map to UnknownBase.
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b, ok := complementBase[s[len(s)-1-i]]
		if !ok {
			b = UnknownBase
		}
		out[i] = b
	}
	return string(out)
}

// UnambiguousFraction returns the fraction of rows in an encoding that
// represent unambiguous bases.
func UnambiguousFraction(enc *mat.Dense) float64 {
	if enc == nil {
		return 0
	}
	rows, _ := enc.Dims()
	if rows == 0 {
		return 0
	}
	return mat.Sum(enc) / float64(rows)
}
