package sequence

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Genome is the reference-sequence capability used by the sampler and the
// variant scorer. Coordinates are 0-based and half-open.
type Genome interface {
	// EncodingFromCoords returns the one-hot encoding of the requested
	// region, reverse-complemented for the reverse strand. A nil result
	// signals an out-of-range query or an unknown chromosome.
	EncodingFromCoords(chrom string, start, end int, strand byte) *mat.Dense

	// SequenceFromCoords returns the nucleotide text of the requested
	// region. With pad set, out-of-range flanks are filled with 'N'
	// instead of failing. The second return value reports whether any
	// sequence could be produced.
	SequenceFromCoords(chrom string, start, end int, strand byte, pad bool) (string, bool)

	// SequenceToEncoding one-hot encodes a nucleotide sequence.
	SequenceToEncoding(s string) *mat.Dense

	// EncodingToSequence decodes a one-hot encoding back to text.
	EncodingToSequence(enc *mat.Dense) string
}

// FASTAGenome is an in-memory Genome backed by a FASTA file.
type FASTAGenome struct {
	chroms map[string]string
}

// NewGenome creates a genome from an explicit chromosome->sequence map.
// Sequences are stored uppercased.
func NewGenome(chroms map[string]string) *FASTAGenome {
	g := &FASTAGenome{chroms: make(map[string]string, len(chroms))}
	for name, seq := range chroms {
		g.chroms[name] = strings.ToUpper(seq)
	}
	return g
}

// LoadFASTA reads a reference genome from a FASTA file. Supports both
// plain and gzipped (.gz) files. The chromosome name is the first
// whitespace-delimited word of each header line.
func LoadFASTA(path string) (*FASTAGenome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return parseFASTA(reader)
}

func parseFASTA(reader io.Reader) (*FASTAGenome, error) {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024) // chromosomes can be long lines

	g := &FASTAGenome{chroms: make(map[string]string)}
	var currentName string
	var currentSeq strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			if currentName != "" && currentSeq.Len() > 0 {
				g.chroms[currentName] = strings.ToUpper(currentSeq.String())
			}
			header := strings.TrimPrefix(line, ">")
			currentName = strings.Fields(header)[0]
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}

	if currentName != "" && currentSeq.Len() > 0 {
		g.chroms[currentName] = strings.ToUpper(currentSeq.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	return g, nil
}

// Chroms returns the loaded chromosome names.
func (g *FASTAGenome) Chroms() []string {
	names := make([]string, 0, len(g.chroms))
	for name := range g.chroms {
		names = append(names, name)
	}
	return names
}

// ChromLen returns the length of a chromosome, or 0 if unknown.
func (g *FASTAGenome) ChromLen(chrom string) int {
	return len(g.chroms[chrom])
}

// SequenceFromCoords implements Genome.
func (g *FASTAGenome) SequenceFromCoords(chrom string, start, end int, strand byte, pad bool) (string, bool) {
	seq, ok := g.chroms[chrom]
	if !ok || start >= end {
		return "", false
	}

	var text string
	if pad {
		left := 0
		if start < 0 {
			left = -start
			start = 0
		}
		right := 0
		if end > len(seq) {
			right = end - len(seq)
			end = len(seq)
		}
		core := ""
		if start < end {
			core = seq[start:end]
		}
		text = strings.Repeat(string(UnknownBase), left) + core +
			strings.Repeat(string(UnknownBase), right)
	} else {
		if start < 0 || end > len(seq) {
			return "", false
		}
		text = seq[start:end]
	}

	if strand == StrandReverse {
		text = ReverseComplement(text)
	}
	return text, true
}

// EncodingFromCoords implements Genome.
func (g *FASTAGenome) EncodingFromCoords(chrom string, start, end int, strand byte) *mat.Dense {
	text, ok := g.SequenceFromCoords(chrom, start, end, strand, false)
	if !ok {
		return nil
	}
	return Encode(text)
}

// SequenceToEncoding implements Genome.
func (g *FASTAGenome) SequenceToEncoding(s string) *mat.Dense {
	return Encode(s)
}

// EncodingToSequence implements Genome.
func (g *FASTAGenome) EncodingToSequence(enc *mat.Dense) string {
	return Decode(enc)
}
