package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var (
	objectsSegment string
	objectsBySize  bool
)

var objectsCmd = &cobra.Command{
	Use:   "objects <map-file>",
	Short: "Show how much each object file contributes to each segment",
	Example: `  # All objects
  mapctl objects app.map

  # Largest contributors to .text
  mapctl objects --segment .text --by-size app.map`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runObjects(args)
	},
}

func init() {
	objectsCmd.Flags().StringVarP(&objectsSegment, "segment", "s", "", "Only show sizes in this segment")
	objectsCmd.Flags().BoolVar(&objectsBySize, "by-size", false, "Sort by size, largest first")

	rootCmd.AddCommand(objectsCmd)
}

type objectRow struct {
	Object  string `json:"object"`
	Segment string `json:"segment"`
	Size    uint64 `json:"size"`
}

func runObjects(args []string) error {
	doc, _, err := loadMap(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse map file: %w", err)
	}

	var rows []objectRow
	for _, name := range doc.ObjectNames() {
		obj := doc.Objects[name]
		for _, seg := range obj.SegmentNames() {
			if objectsSegment != "" && seg != objectsSegment {
				continue
			}
			rows = append(rows, objectRow{Object: name, Segment: seg, Size: obj.Segments[seg]})
		}
	}
	if objectsBySize {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Size > rows[j].Size })
	}

	if jsonOut {
		if rows == nil {
			rows = []objectRow{}
		}
		return printJSON(rows)
	}
	if quiet {
		return nil
	}
	if len(rows) == 0 {
		printInfo("No objects found\n")
		return nil
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Object, r.Segment, fmt.Sprint(r.Size), fmt.Sprintf("%#x", r.Size)}
	}
	fmt.Fprint(os.Stdout, renderTable([]string{"Object", "Segment", "Size", "Hex"}, cells, 2, 3))
	return nil
}
