package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/mapkit/pkg/mapfile"
	"github.com/joshuapare/mapkit/pkg/types"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool

	// Parse flags
	granularity = granularityFlag{value: types.GranularitySegment}
	logLevel    = logLevelFlag{level: slog.LevelWarn}
	strict      bool
	workers     int
	encoding    string
)

var rootCmd = &cobra.Command{
	Use:   "mapctl",
	Short: "Inspect GNU ld linker map files",
	Long: `mapctl decodes the memory map of a GNU ld map file (ld -Map=out.map)
into segments, the input sections placed in them, and per-object sizes. It
reports linker anomalies such as overlapping fills and size mismatches, and
exports the result as XML, XLSX, JSON or text.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Parse flags
	rootCmd.PersistentFlags().VarP(&granularity, "granularity", "g",
		"Memory map granularity: segment (blank-line blocks, objects required) or section (column-0 blocks)")
	rootCmd.PersistentFlags().Var(&logLevel, "log-level",
		"Diagnostics logged to stderr: off, error, warn, info, debug, trace (or 0-5)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail on the first segment that cannot be decoded")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "Decode segments concurrently with this many workers")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "",
		"Input encoding: UTF-8, UTF-16LE or WINDOWS-1252 (default: detect)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseOptions builds parse options from the global flags. Diagnostics go to
// report and, filtered by --log-level, to stderr.
func parseOptions(report *types.DiagnosticReport) types.ParseOptions {
	logSink := mapfile.NewSlogSink(newLogger(os.Stderr, logLevel))
	return types.ParseOptions{
		Granularity:   granularity.value,
		Strict:        strict,
		Workers:       workers,
		InputEncoding: encoding,
		Sink: types.SinkFunc(func(d types.Diagnostic) {
			report.Add(d)
			logSink.Report(d)
		}),
	}
}

// loadMap parses the map file at path and returns it with its diagnostics.
func loadMap(path string) (*types.Document, *types.DiagnosticReport, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("map file not found: %s", path)
	}

	report := types.NewDiagnosticReport()
	report.Source = path

	printVerbose("Parsing %s (granularity %s)\n", path, granularity.value)
	doc, err := mapfile.ParseFile(path, parseOptions(report))
	if err != nil {
		return nil, report, err
	}
	printVerbose("Decoded %d segments, %d records (%d errors, %d warnings)\n",
		len(doc.Segments), doc.RecordCount(), report.Summary.Errors, report.Summary.Warnings)
	return doc, report, nil
}
