package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/openbio/seqsampler/internal/duckdb"
	"github.com/openbio/seqsampler/internal/features"
	"github.com/openbio/seqsampler/internal/intervals"
	"github.com/openbio/seqsampler/internal/output"
	"github.com/openbio/seqsampler/internal/sampler"
	"github.com/openbio/seqsampler/internal/sequence"
)

func runSample(args []string) int {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)

	var (
		genomePath     string
		intervalsPath  string
		featuresPath   string
		mode           string
		batchSize      int
		nSamples       int
		seed           uint64
		seqLen         int
		centerBin      int
		sampleNegative bool
		maxRetries     int
		validProp      float64
		testProp       float64
		validChroms    string
		testChroms     string
		saveModes      string
		outputPrefix   string
		datasetLog     string
		duckdbPath     string
		verbose        bool
	)

	fs.StringVar(&genomePath, "genome", "", "Reference genome FASTA file (required)")
	fs.StringVar(&intervalsPath, "intervals", "", "Tab-separated intervals file (required)")
	fs.StringVar(&featuresPath, "features", "", "BED-like feature annotations file (required)")
	fs.StringVar(&mode, "mode", "train", "Sampling mode: train, validate, test")
	fs.IntVar(&batchSize, "batch-size", 64, "Examples per batch")
	fs.IntVar(&nSamples, "n-samples", 0, "Total examples to draw (default: mode partition size)")
	fs.Uint64Var(&seed, "seed", 436, "Random seed")
	fs.IntVar(&seqLen, "sequence-length", 1001, "Input window length")
	fs.IntVar(&centerBin, "center-bin", 201, "Center bin width for label queries")
	fs.BoolVar(&sampleNegative, "sample-negative", false, "Keep windows with no positive labels")
	fs.IntVar(&maxRetries, "max-retries", sampler.DefaultMaxRetries, "Rejection retries per batch (0 = unlimited)")
	fs.Float64Var(&validProp, "validation-proportion", 0, "Proportional holdout fraction for validation")
	fs.Float64Var(&testProp, "test-proportion", 0, "Proportional holdout fraction for test")
	fs.StringVar(&validChroms, "validation-chroms", "", "Comma-separated validation holdout chromosomes")
	fs.StringVar(&testChroms, "test-chroms", "", "Comma-separated test holdout chromosomes")
	fs.StringVar(&saveModes, "save", "", "Comma-separated modes whose samples are logged")
	fs.StringVar(&outputPrefix, "o", "", "Output prefix for .npy sequence/target files (required)")
	fs.StringVar(&datasetLog, "dataset-log", "", "Tab-separated dataset log file")
	fs.StringVar(&duckdbPath, "duckdb", "", "DuckDB database for the dataset log")
	fs.BoolVar(&verbose, "verbose", false, "Log sampling rejections")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Draw batches of encoded sequence windows and feature labels.

Usage:
  seqsampler sample [options]

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if genomePath == "" || intervalsPath == "" || featuresPath == "" || outputPrefix == "" {
		fmt.Fprintf(os.Stderr, "Error: --genome, --intervals, --features, and -o are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	cfg := sampler.Config{
		SequenceLength:     seqLen,
		CenterBinToPredict: centerBin,
		RandomSeed:         seed,
		SampleNegative:     sampleNegative,
		MaxRetries:         maxRetries,
	}
	if validChroms != "" || testChroms != "" {
		cfg.Holdout = sampler.HoldoutChromosome
		cfg.ValidationChroms = splitList(validChroms)
		cfg.TestChroms = splitList(testChroms)
	} else {
		cfg.Holdout = sampler.HoldoutProportion
		cfg.ValidationProportion = validProp
		cfg.TestProportion = testProp
	}
	for _, m := range splitList(saveModes) {
		cfg.SaveDatasets = append(cfg.SaveDatasets, sampler.Mode(m))
	}

	genome, err := sequence.LoadFASTA(genomePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded %d chromosomes\n", len(genome.Chroms()))

	store, err := features.LoadBED(featuresPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded %d distinct features\n", len(store.Features()))

	ivs, err := intervals.Load(intervalsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded %d intervals\n", len(ivs))

	s, err := sampler.New(genome, store, ivs, cfg)
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
		s.SetLogger(logger)
	}

	var flushLog func() error
	switch {
	case duckdbPath != "":
		dbStore, err := duckdb.Open(duckdbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer dbStore.Close()
		s.SetDatasetLogger(dbStore)
	case datasetLog != "":
		f, err := os.Create(datasetLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating dataset log: %v\n", err)
			return ExitError
		}
		defer f.Close()
		dw := output.NewDatasetWriter(f)
		s.SetDatasetLogger(dw)
		flushLog = dw.Flush
	}

	batches, _, err := s.GetDatasetInBatches(sampler.Mode(mode), batchSize, nSamples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	var sequences []*mat.Dense
	var targets []*mat.Dense
	for _, b := range batches {
		sequences = append(sequences, b.Sequences...)
		targets = append(targets, b.Targets)
	}
	if err := output.WriteDatasetNpy(outputPrefix, sequences, targets); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if flushLog != nil {
		if err := flushLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing dataset log: %v\n", err)
			return ExitError
		}
	}

	fmt.Fprintf(os.Stderr, "Wrote %d examples in %d batches to %s_sequences.npy and %s_targets.npy\n",
		len(sequences), len(batches), outputPrefix, outputPrefix)

	return ExitSuccess
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
