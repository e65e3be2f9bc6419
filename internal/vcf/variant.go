// Package vcf provides VCF file parsing functionality.
package vcf

import "fmt"

// Variant represents a single genomic variant from a VCF file, after
// multi-allelic expansion. Alleles are normalized at parse time: a Ref of
// "-" becomes the empty string (pure insertion) and an Alt of "*" or "-"
// becomes the empty string (pure deletion).
type Variant struct {
	Chrom  string // Chromosome name (e.g., "12", "chr12")
	Pos    int64  // 1-based genomic position
	Name   string // Variant identifier (e.g., rs ID)
	Ref    string // Reference allele
	Alt    string // Alternate allele (single allele after splitting)
	Strand byte   // '+', '-', or '.' when no strand column was configured
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}

// IsInsertion returns true if the variant is an insertion.
func (v *Variant) IsInsertion() bool {
	return len(v.Alt) > len(v.Ref)
}

// IsDeletion returns true if the variant is a deletion.
func (v *Variant) IsDeletion() bool {
	return len(v.Ref) > len(v.Alt)
}

// String renders the variant for logs and reports.
func (v *Variant) String() string {
	ref := v.Ref
	if ref == "" {
		ref = "-"
	}
	alt := v.Alt
	if alt == "" {
		alt = "-"
	}
	return fmt.Sprintf("%s:%d %s>%s", v.Chrom, v.Pos, ref, alt)
}
