package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/mapkit/pkg/report"
)

var parseCmd = &cobra.Command{
	Use:     "parse <map-file>",
	Aliases: []string{"summary"},
	Short:   "Summarize the segments and objects of a map file",
	Long: `Parses the "Linker script and memory map" section of a map file and prints
every segment with its record count, followed by the size each object file
contributes to each segment.`,
	Example: `  # Summary table
  mapctl parse build/app.map

  # Embedded maps without object names on every record
  mapctl parse --granularity section firmware.map

  # Full document as JSON
  mapctl parse --json build/app.map`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(args []string) error {
	path := args[0]

	doc, diags, err := loadMap(path)
	if err != nil {
		return fmt.Errorf("failed to parse map file: %w", err)
	}

	format := report.FormatText
	if jsonOut {
		format = report.FormatJSON
	} else if quiet {
		return nil
	}

	opts := report.DefaultOptions()
	opts.Format = format
	opts.Source = path
	if err := report.New(os.Stdout, opts).Write(doc); err != nil {
		return err
	}

	if !jsonOut && diags.HasAnyIssues() {
		printInfo("\nDiagnostics: %d errors, %d warnings, %d info (see 'mapctl diagnose')\n",
			diags.Summary.Errors, diags.Summary.Warnings, diags.Summary.Info)
	}
	return nil
}
