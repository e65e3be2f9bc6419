package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// RequiredColumns are the first five columns the #CHROM header line must
// declare, in order. A mismatch is a fatal configuration error.
var RequiredColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT"}

// Parser reads variants from a VCF-like file. Multi-allelic records are
// expanded so Next returns one variant per alternate allele.
type Parser struct {
	reader      *bufio.Reader
	file        *os.File
	gzipReader  *gzip.Reader
	lineNumber  int
	header      []string
	strandIndex int
	pending     []*Variant
}

// NewParser creates a parser for the given file. Supports both plain and
// gzipped VCF files. strandIndex is the 0-based column holding the strand
// of each variant; pass a negative value when the file has no strand
// column (all variants then get strand '.').
func NewParser(path string, strandIndex int) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin, strandIndex)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file, strandIndex: strandIndex}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader, strandIndex int) (*Parser, error) {
	p := &Parser{
		reader:      bufio.NewReader(r),
		strandIndex: strandIndex,
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads header lines up to and including the #CHROM line and
// validates the required column layout.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.Contains(line, "#CHROM") {
			p.header = append(p.header, line)
			cols := strings.Split(line, "\t")
			if len(cols) < len(RequiredColumns) {
				return &ParseError{
					Line: p.lineNumber,
					Message: fmt.Sprintf("expected first columns %v, found %v",
						RequiredColumns, cols),
				}
			}
			for i, want := range RequiredColumns {
				if cols[i] != want {
					return &ParseError{
						Line: p.lineNumber,
						Message: fmt.Sprintf("expected first columns %v, found %v",
							RequiredColumns, cols[:len(RequiredColumns)]),
					}
				}
			}
			return nil
		}

		if strings.HasPrefix(line, "#") {
			p.header = append(p.header, line)
			continue
		}

		// Non-header line encountered without #CHROM
		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// Next reads the next variant. Multi-allelic records are expanded, so
// consecutive calls may return variants from the same file line.
// Returns nil, nil when there are no more variants.
func (p *Parser) Next() (*Variant, error) {
	for {
		if len(p.pending) > 0 {
			v := p.pending[0]
			p.pending = p.pending[1:]
			return v, nil
		}

		line, readErr := p.reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", readErr)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			variants, err := p.parseLine(line)
			if err != nil {
				return nil, err
			}
			p.pending = variants
		}

		if readErr == io.EOF && len(p.pending) == 0 {
			return nil, nil
		}
	}
}

// parseLine parses one data line into its expanded variant records.
// Lines with fewer than five columns are skipped, as are lines whose
// strand column holds an unrecognized value.
func (p *Parser) parseLine(line string) ([]*Variant, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < len(RequiredColumns) {
		return nil, nil
	}

	pos, err := strconv.ParseInt(cols[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", cols[1]),
		}
	}

	ref := cols[3]
	if ref == "-" {
		ref = ""
	}

	strand := byte('.')
	if p.strandIndex >= 0 {
		if p.strandIndex >= len(cols) {
			return nil, nil
		}
		switch cols[p.strandIndex] {
		case "-":
			strand = '-'
		case "+", ".":
			strand = '+'
		default:
			return nil, nil
		}
	}

	alts := strings.Split(cols[4], ",")
	variants := make([]*Variant, 0, len(alts))
	for _, alt := range alts {
		if alt == "*" || alt == "-" {
			alt = ""
		}
		variants = append(variants, &Variant{
			Chrom:  cols[0],
			Pos:    pos,
			Name:   cols[2],
			Ref:    ref,
			Alt:    alt,
			Strand: strand,
		})
	}

	return variants, nil
}

// ReadAll reads every remaining variant from the parser.
func (p *Parser) ReadAll() ([]*Variant, error) {
	var variants []*Variant
	for {
		v, err := p.Next()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return variants, nil
		}
		variants = append(variants, v)
	}
}

// Header returns the VCF header lines.
func (p *Parser) Header() []string {
	return p.header
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
