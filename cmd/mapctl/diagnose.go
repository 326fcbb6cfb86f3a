package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/mapkit/pkg/types"
)

var (
	diagMinSeverity string
	diagFailOnError bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <map-file>",
	Short: "Report linker anomalies found while parsing a map file",
	Long: `Parses a map file and reports every diagnostic:
  - Segments whose records do not add up to the declared size
  - Fills that are not contiguous with, or larger than, their record
  - Lines that could not be recognized
  - Segments that could not be decoded and were skipped
  - Linker directives between segments`,
	Example: `  # Warnings and errors
  mapctl diagnose app.map

  # Everything, including skipped lines and directives
  mapctl diagnose --min-severity info app.map

  # Structured output for CI
  mapctl diagnose --json --fail-on-error app.map`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagnose(args)
	},
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagMinSeverity, "min-severity", "warning",
		"Lowest severity to show: info, warning, error")
	diagnoseCmd.Flags().BoolVar(&diagFailOnError, "fail-on-error", false,
		"Exit with an error when a segment was skipped")

	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(args []string) error {
	minSev, err := types.ParseSeverity(diagMinSeverity)
	if err != nil {
		return err
	}

	_, diags, err := loadMap(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse map file: %w", err)
	}

	if jsonOut {
		out, err := diags.FormatJSON()
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		printInfo("%s\n", out)
	} else {
		printInfo("%s", diags.FormatText(minSev))
	}

	if diagFailOnError && diags.HasErrors() {
		return fmt.Errorf("%d segment(s) could not be decoded", diags.Summary.Errors)
	}
	return nil
}
