package vcf

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"

func newTestParser(t *testing.T, body string, strandIndex int) *Parser {
	t.Helper()
	p, err := NewParserFromReader(strings.NewReader(testHeader+body), strandIndex)
	require.NoError(t, err)
	return p
}

func TestParseSNV(t *testing.T) {
	p := newTestParser(t, "1\t12345\trs1\tA\tG\t.\t.\t.\n", -1)

	v, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, "1", v.Chrom)
	assert.Equal(t, int64(12345), v.Pos)
	assert.Equal(t, "rs1", v.Name)
	assert.Equal(t, "A", v.Ref)
	assert.Equal(t, "G", v.Alt)
	assert.Equal(t, byte('.'), v.Strand)
	assert.True(t, v.IsSNV())

	v, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, v, "expected end of input")
}

func TestMultiAllelicExpansion(t *testing.T) {
	p := newTestParser(t, "1\t100\trs2\tA\tG,T,C\t.\t.\t.\n", -1)

	variants, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, variants, 3)

	for i, alt := range []string{"G", "T", "C"} {
		assert.Equal(t, alt, variants[i].Alt)
		assert.Equal(t, int64(100), variants[i].Pos)
	}
}

func TestAlleleNormalization(t *testing.T) {
	body := "1\t100\tins1\t-\tACG\t.\t.\t.\n" +
		"1\t200\tdel1\tACG\t-\t.\t.\t.\n" +
		"1\t300\tdel2\tACG\t*\t.\t.\t.\n"
	p := newTestParser(t, body, -1)

	variants, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, variants, 3)

	assert.Equal(t, "", variants[0].Ref)
	assert.True(t, variants[0].IsInsertion())
	assert.Equal(t, "", variants[1].Alt)
	assert.True(t, variants[1].IsDeletion())
	assert.Equal(t, "", variants[2].Alt)
}

func TestStrandColumn(t *testing.T) {
	body := "1\t100\ta\tA\tG\t-\n" +
		"1\t200\tb\tA\tG\t+\n" +
		"1\t300\tc\tA\tG\t.\n" +
		"1\t400\td\tA\tG\tx\n" // unrecognized strand, skipped
	p := newTestParser(t, body, 5)

	variants, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, variants, 3)

	assert.Equal(t, byte('-'), variants[0].Strand)
	assert.Equal(t, byte('+'), variants[1].Strand)
	assert.Equal(t, byte('+'), variants[2].Strand, "'.' maps to forward")
}

func TestStrandColumnMissing(t *testing.T) {
	// Strand index past the line's column count skips the record.
	p := newTestParser(t, "1\t100\ta\tA\tG\n", 7)
	variants, err := p.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestShortLinesSkipped(t *testing.T) {
	body := "1\t100\ta\tA\n" + // four columns, skipped
		"1\t200\tb\tA\tG\t.\t.\t.\n"
	p := newTestParser(t, body, -1)

	variants, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "b", variants[0].Name)
}

func TestInvalidPosition(t *testing.T) {
	p := newTestParser(t, "1\tabc\ta\tA\tG\t.\t.\t.\n", -1)
	_, err := p.ReadAll()

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "invalid position")
}

func TestHeaderValidation(t *testing.T) {
	// Wrong column order is fatal.
	bad := "#CHROM\tID\tPOS\tREF\tALT\n1\t100\ta\tA\tG\n"
	_, err := NewParserFromReader(strings.NewReader(bad), -1)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "expected first columns")

	// A data line before any #CHROM line is fatal.
	_, err = NewParserFromReader(strings.NewReader("1\t100\ta\tA\tG\n"), -1)
	require.Error(t, err)
	assert.True(t, errors.As(err, &parseErr))

	// No header at all is fatal.
	_, err = NewParserFromReader(strings.NewReader("##meta only\n"), -1)
	require.Error(t, err)
}

func TestHeaderRetained(t *testing.T) {
	p := newTestParser(t, "", -1)
	header := p.Header()
	require.Len(t, header, 2)
	assert.Equal(t, "##fileformat=VCFv4.2", header[0])
	assert.True(t, strings.HasPrefix(header[1], "#CHROM"))
}

func TestVariantString(t *testing.T) {
	v := &Variant{Chrom: "12", Pos: 500, Ref: "", Alt: "AC"}
	assert.Equal(t, "12:500 ->AC", v.String())

	v = &Variant{Chrom: "1", Pos: 10, Ref: "ACG", Alt: ""}
	assert.Equal(t, "1:10 ACG>-", v.String())
}

func TestVariantClassification(t *testing.T) {
	assert.True(t, (&Variant{Ref: "A", Alt: "G"}).IsSNV())
	assert.False(t, (&Variant{Ref: "A", Alt: "G"}).IsIndel())
	assert.True(t, (&Variant{Ref: "A", Alt: "ACG"}).IsInsertion())
	assert.True(t, (&Variant{Ref: "ACG", Alt: "A"}).IsDeletion())
	assert.True(t, (&Variant{Ref: "ACG", Alt: "A"}).IsIndel())
}
