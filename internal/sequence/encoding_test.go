package sequence

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sequences := []string{
		"A",
		"ACGT",
		"ACGTACGTAC",
		"TTTTGGGGCCCCAAAA",
		"ACGNNTGCA",
	}

	for _, s := range sequences {
		enc := Encode(s)
		if enc == nil {
			t.Fatalf("Encode(%q) returned nil", s)
		}
		got := Decode(enc)
		if got != s {
			t.Errorf("round trip of %q gave %q", s, got)
		}
	}
}

func TestEncodeShape(t *testing.T) {
	enc := Encode("ACGTN")
	rows, cols := enc.Dims()
	if rows != 5 || cols != 4 {
		t.Fatalf("expected 5x4 encoding, got %dx%d", rows, cols)
	}

	// Each unambiguous row is one-hot; the N row is all zero.
	for i := 0; i < 4; i++ {
		if sum := mat.Sum(enc.Slice(i, i+1, 0, 4)); sum != 1 {
			t.Errorf("row %d sums to %v, expected 1", i, sum)
		}
	}
	if sum := mat.Sum(enc.Slice(4, 5, 0, 4)); sum != 0 {
		t.Errorf("ambiguous row sums to %v, expected 0", sum)
	}
}

func TestEncodeLowercase(t *testing.T) {
	if got := Decode(Encode("acgt")); got != "ACGT" {
		t.Errorf("lowercase encoding decoded to %q", got)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if enc := Encode(""); enc != nil {
		t.Error("expected nil encoding for empty sequence")
	}
	if got := Decode(nil); got != "" {
		t.Errorf("Decode(nil) = %q", got)
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A", "T"},
		{"ACGT", "ACGT"},
		{"AACC", "GGTT"},
		{"ACGTN", "NACGT"},
	}

	for _, tt := range tests {
		if got := ReverseComplement(tt.in); got != tt.want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnambiguousFraction(t *testing.T) {
	if f := UnambiguousFraction(Encode("ACGT")); f != 1 {
		t.Errorf("fully unambiguous fraction = %v", f)
	}
	if f := UnambiguousFraction(Encode("ACNN")); f != 0.5 {
		t.Errorf("half ambiguous fraction = %v", f)
	}
	if f := UnambiguousFraction(nil); f != 0 {
		t.Errorf("nil encoding fraction = %v", f)
	}
}
