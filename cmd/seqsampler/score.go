package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/openbio/seqsampler/internal/maf"
	"github.com/openbio/seqsampler/internal/output"
	"github.com/openbio/seqsampler/internal/predict"
	"github.com/openbio/seqsampler/internal/sequence"
	"github.com/openbio/seqsampler/internal/vcf"
)

func runScore(args []string) int {
	fs := flag.NewFlagSet("score", flag.ExitOnError)

	var (
		genomePath  string
		weightsPath string
		format      string
		seqLen      int
		batchSize   int
		strandCol   int
		outputFile  string
		diffsFile   string
		verbose     bool
	)

	fs.StringVar(&genomePath, "genome", "", "Reference genome FASTA file (required)")
	fs.StringVar(&weightsPath, "weights", "", "Linear model weights .npy file (required)")
	fs.StringVar(&format, "format", "vcf", "Input format: vcf or maf")
	fs.IntVar(&seqLen, "sequence-length", 1001, "Input window length")
	fs.IntVar(&batchSize, "batch-size", 64, "Variants per model batch")
	fs.IntVar(&strandCol, "strand-col", -1, "0-based strand column in the VCF (negative: no strand column)")
	fs.StringVar(&outputFile, "o", "", "Alternate-allele predictions output (default: stdout)")
	fs.StringVar(&diffsFile, "diffs", "", "Alt-minus-ref diff scores output (optional)")
	fs.BoolVar(&verbose, "verbose", false, "Log reference mismatches and skipped variants")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Score the predicted effect of variants against the reference sequence.

Usage:
  seqsampler score [options] <input-vcf>

Arguments:
  <input-vcf>  Input VCF or MAF file (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  seqsampler score --genome hg19.fa --weights model.npy input.vcf
  seqsampler score --genome hg19.fa --weights model.npy --diffs diffs.tsv input.vcf
  seqsampler score --genome hg19.fa --weights model.npy --format maf input.maf
  cat input.vcf | seqsampler score --genome hg19.fa --weights model.npy -
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if genomePath == "" || weightsPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --genome and --weights are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	inputPath := fs.Arg(0)

	var parser vcf.VariantParser
	var err error
	switch format {
	case "vcf":
		parser, err = vcf.NewParser(inputPath, strandCol)
	case "maf":
		parser, err = maf.NewParser(inputPath)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown input format %q\n", format)
		return ExitUsage
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the file path is correct\n")
		}
		return ExitError
	}
	defer parser.Close()

	genome, err := sequence.LoadFASTA(genomePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded %d chromosomes\n", len(genome.Chroms()))

	model, err := predict.LoadLinearModel(weightsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded model with %d outputs\n", model.NumOutputs())

	scorer, err := predict.NewScorer(genome, model, seqLen, batchSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			return ExitError
		}
		defer logger.Sync()
		scorer.SetLogger(logger)
	}

	var out *os.File
	if outputFile == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer out.Close()
	}

	pw := output.NewPredictionWriter(out)
	scorer.AddReporter(pw)

	var dw *output.DiffWriter
	if diffsFile != "" {
		f, err := os.Create(diffsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating diffs file: %v\n", err)
			return ExitError
		}
		defer f.Close()
		dw = output.NewDiffWriter(f)
		scorer.AddReporter(dw)
	}

	if err := scorer.ScoreAll(parser); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if err := pw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}
	if dw != nil {
		if err := dw.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing diffs: %v\n", err)
			return ExitError
		}
	}

	return ExitSuccess
}
