package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/mapkit/pkg/mapfile"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <map-file>",
	Short: "List the top-level sections of a map file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSections(args)
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read map file: %w", err)
	}

	sections, err := mapfile.Sections(data, mapfile.ParseOptions{InputEncoding: encoding})
	if err != nil {
		return err
	}

	if jsonOut {
		if sections == nil {
			sections = []mapfile.SectionInfo{}
		}
		return printJSON(sections)
	}
	if quiet {
		return nil
	}
	if len(sections) == 0 {
		printInfo("No map file sections found in %s\n", path)
		return nil
	}

	cells := make([][]string, len(sections))
	for i, s := range sections {
		cells[i] = []string{s.Name, s.Title, fmt.Sprint(s.Start), fmt.Sprint(s.End), fmt.Sprint(s.Lines)}
	}
	fmt.Fprint(os.Stdout, renderTable([]string{"Section", "Title", "Start", "End", "Lines"}, cells, 2, 3, 4))
	return nil
}
