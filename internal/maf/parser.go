// Package maf provides MAF (Mutation Annotation Format) parsing as an
// alternative variant source for effect scoring.
package maf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/openbio/seqsampler/internal/vcf"
)

// Standard MAF column names.
const (
	ColChromosome      = "Chromosome"
	ColStartPosition   = "Start_Position"
	ColReferenceAllele = "Reference_Allele"
	ColTumorSeqAllele2 = "Tumor_Seq_Allele2"
	ColStrand          = "Strand"
	ColDbSNPRS         = "dbSNP_RS"
)

// columnIndices holds the indices of the MAF columns the parser reads.
// Optional columns are -1 when absent.
type columnIndices struct {
	chromosome      int
	startPosition   int
	referenceAllele int
	tumorSeqAllele2 int
	strand          int
	dbSNPRS         int
}

// Parser reads variants from a MAF file and yields them as vcf.Variant
// records, so the scorer consumes MAF and VCF input interchangeably.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    columnIndices
	headerLine string
}

// NewParser creates a MAF parser for the given file. Supports both plain
// and gzipped files; pass "-" to read from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read maf header: %w", err)
	}

	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek maf file: %w", err)
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
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads past comment lines to the column header and resolves
// the column layout.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return &ParseError{
					Line:    p.lineNumber,
					Message: "no header line found",
				}
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p.headerLine = line
		return p.parseColumnIndices(line)
	}
}

func (p *Parser) parseColumnIndices(headerLine string) error {
	p.columns = columnIndices{
		chromosome:      -1,
		startPosition:   -1,
		referenceAllele: -1,
		tumorSeqAllele2: -1,
		strand:          -1,
		dbSNPRS:         -1,
	}

	for i, col := range strings.Split(headerLine, "\t") {
		switch col {
		case ColChromosome:
			p.columns.chromosome = i
		case ColStartPosition:
			p.columns.startPosition = i
		case ColReferenceAllele:
			p.columns.referenceAllele = i
		case ColTumorSeqAllele2:
			p.columns.tumorSeqAllele2 = i
		case ColStrand:
			p.columns.strand = i
		case ColDbSNPRS:
			p.columns.dbSNPRS = i
		}
	}

	for _, required := range []struct {
		name  string
		index int
	}{
		{ColChromosome, p.columns.chromosome},
		{ColStartPosition, p.columns.startPosition},
		{ColReferenceAllele, p.columns.referenceAllele},
		{ColTumorSeqAllele2, p.columns.tumorSeqAllele2},
	} {
		if required.index == -1 {
			return &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("required column %q not found in header", required.name),
			}
		}
	}

	return nil
}

// Next reads the next variant from the MAF file.
// Returns nil, nil when there are no more variants.
func (p *Parser) Next() (*vcf.Variant, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		return p.parseLine(line)
	}
}

// parseLine parses a single MAF data line into a Variant. Alleles use
// the MAF convention of "-" for the absent side of an indel.
func (p *Parser) parseLine(line string) (*vcf.Variant, error) {
	fields := strings.Split(line, "\t")

	minCols := maxIndex(p.columns.chromosome, p.columns.startPosition,
		p.columns.referenceAllele, p.columns.tumorSeqAllele2)
	if len(fields) <= minCols {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, found %d", minCols+1, len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[p.columns.startPosition], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[p.columns.startPosition]),
		}
	}

	ref := fields[p.columns.referenceAllele]
	alt := fields[p.columns.tumorSeqAllele2]
	if ref == "-" {
		ref = ""
	}
	if alt == "-" {
		alt = ""
	}

	strand := byte('+')
	if p.columns.strand >= 0 && p.columns.strand < len(fields) && fields[p.columns.strand] == "-" {
		strand = '-'
	}

	name := "."
	if p.columns.dbSNPRS >= 0 && p.columns.dbSNPRS < len(fields) && fields[p.columns.dbSNPRS] != "" {
		name = fields[p.columns.dbSNPRS]
	}

	return &vcf.Variant{
		Chrom:  fields[p.columns.chromosome],
		Pos:    pos,
		Name:   name,
		Ref:    ref,
		Alt:    alt,
		Strand: strand,
	}, nil
}

// Header returns the MAF column header line.
func (p *Parser) Header() string {
	return p.headerLine
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

// ParseError represents an error during MAF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("maf parse error at line %d: %s", e.Line, e.Message)
}

func maxIndex(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
