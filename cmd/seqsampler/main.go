// Package main provides the seqsampler command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Parse()

	if showVersion {
		fmt.Printf("seqsampler version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "sample":
		return runSample(args[1:])
	case "score":
		return runScore(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `seqsampler - interval-weighted genome window sampling and variant effect scoring

Usage:
  seqsampler [options] <command> [arguments]

Commands:
  sample      Draw batches of sequence windows and labels from genomic intervals
  score       Score the predicted effect of variants in a VCF file
  config      Manage seqsampler configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Draw the test dataset in batches and export NumPy arrays
  seqsampler sample --genome hg19.fa --intervals regions.bed --features labels.bed \
      --mode test --batch-size 64 -o test_set

  # Score variants against a linear model
  seqsampler score --genome hg19.fa --weights model.npy input.vcf

For more information on a command, use:
  seqsampler <command> --help
`)
}
