package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments <map-file>",
	Short: "List segments with their address, size and record count",
	Example: `  mapctl segments app.map
  mapctl segments --json app.map`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSegments(args)
	},
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
}

type segmentRow struct {
	Name        string  `json:"name"`
	Address     *uint64 `json:"address,omitempty"`
	Size        *uint64 `json:"size,omitempty"`
	LoadAddress *uint64 `json:"load_address,omitempty"`
	Records     int     `json:"records"`
	RecordSum   uint64  `json:"record_sum"`
}

func runSegments(args []string) error {
	doc, _, err := loadMap(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse map file: %w", err)
	}

	rows := make([]segmentRow, 0, len(doc.Segments))
	for _, seg := range doc.Segments {
		row := segmentRow{
			Name:        seg.Name,
			LoadAddress: seg.LoadAddress,
			Records:     len(seg.Records),
			RecordSum:   seg.RecordsTotalSize(),
		}
		if seg.Extent != nil {
			addr, size := seg.Extent.Address, seg.Extent.Size
			row.Address, row.Size = &addr, &size
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	if quiet {
		return nil
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		addr, size, lma := "-", "-", ""
		if r.Address != nil {
			addr = fmt.Sprintf("0x%016x", *r.Address)
			size = fmt.Sprintf("%#x", *r.Size)
		}
		if r.LoadAddress != nil {
			lma = fmt.Sprintf("0x%016x", *r.LoadAddress)
		}
		cells = append(cells, []string{
			r.Name, addr, size, fmt.Sprintf("%#x", r.RecordSum), fmt.Sprint(r.Records), lma,
		})
	}
	fmt.Fprint(os.Stdout, renderTable(
		[]string{"Segment", "Address", "Size", "Record sum", "Records", "Load address"},
		cells, 2, 3, 4))
	return nil
}
