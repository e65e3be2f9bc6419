package vcf

// VariantParser is the interface for streaming variant sources.
// Next returns nil, nil when there are no more variants.
type VariantParser interface {
	Next() (*Variant, error)
	Close() error
}
