package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
)

const usage = `Usage: sangerPrep <command> [flags]

Commands:
  decompress  decompress a gzipped read file in place
  convert     convert an AB1 trace file to FASTQ
  fq2fa       convert a FASTQ file to FASTA
  trim        keep the longest N-free fragment of each FASTA record
  plot        plot the raw channels of an AB1 trace file
`

var commands = map[string]func(args []string) error{
	"decompress": runDecompress,
	"convert":    runConvert,
	"fq2fa":      runFastqToFasta,
	"trim":       runTrim,
	"plot":       runPlot,
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err := run(os.Args[2:]); err != nil {
		log.Fatalf("Error running %s: %v", os.Args[1], err)
	}
}

// parseFlags parses args into fs and exits with usage when a required
// string flag is empty.
func parseFlags(fs *flag.FlagSet, args []string, required ...*string) {
	fs.Parse(args)
	for _, r := range required {
		if *r == "" {
			fmt.Println("Missing required arguments")
			fs.Usage()
			os.Exit(2)
		}
	}
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	inputFile := fs.String("i", "", "Compressed input file (required)")
	execName := fs.String("exec", Gunzip.Exec, "Decompression utility")
	native := fs.Bool("native", false, "Decompress in-process instead of running -exec")
	verbose := fs.Bool("v", false, "Show the utility's output")
	parseFlags(fs, args, inputFile)

	d := Decompressor{Exec: *execName, Verbose: *verbose}
	if *native {
		d.Exec = ""
	}
	out, err := d.Run(*inputFile)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	inputFile := fs.String("i", "", "Input AB1 file (required)")
	outputFile := fs.String("o", "", "Output FASTQ file (required)")
	parseFlags(fs, args, inputFile, outputFile)

	if err := ConvertAB1ToFastq(*inputFile, *outputFile); err != nil {
		return err
	}
	color.HiGreen("Converted %s to %s\n", *inputFile, *outputFile)
	return nil
}

func runFastqToFasta(args []string) error {
	fs := flag.NewFlagSet("fq2fa", flag.ExitOnError)
	inputFile := fs.String("i", "", "Input FASTQ file, optionally gzipped (required)")
	outputFile := fs.String("o", "", "Output FASTA file (required)")
	parseFlags(fs, args, inputFile, outputFile)

	n, err := ConvertFastqToFasta(*inputFile, *outputFile)
	if err != nil {
		return err
	}
	color.HiGreen("Converted %s records\n", Comma(int64(n)))
	return nil
}

func runTrim(args []string) error {
	fs := flag.NewFlagSet("trim", flag.ExitOnError)
	inputFile := fs.String("i", "", "Input FASTA file, optionally gzipped (required)")
	outputFile := fs.String("o", "", "Output FASTA file, appended to (required)")
	minRun := fs.Int("n", 4, "Minimum run of N bases treated as a separator")
	parseFlags(fs, args, inputFile, outputFile)

	stats, err := TrimAmbiguousRuns(*inputFile, *outputFile, *minRun, newConsoleLogger())
	if err != nil {
		return err
	}

	fmt.Printf("\nTotal records: %s\n", Comma(stats.Records))
	color.HiGreen("Records split on N: %s\n", Comma(stats.Split))
	color.HiMagenta("Records without N: %s\n", Comma(stats.Unchanged))
	fmt.Printf("Bases kept: %s of %s\n", Comma(stats.BasesOut), Comma(stats.BasesIn))
	fmt.Println("\nTrimming completed")
	return nil
}

func runPlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	inputFile := fs.String("i", "", "Input AB1 file (required)")
	outputFile := fs.String("o", "", "Output image file, format from extension (required)")
	parseFlags(fs, args, inputFile, outputFile)

	if err := PlotTrace(*inputFile, *outputFile); err != nil {
		return err
	}
	color.HiGreen("Saved electropherogram to %s\n", *outputFile)
	return nil
}
