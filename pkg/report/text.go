package report

import (
	"fmt"
	"text/tabwriter"

	"github.com/joshuapare/mapkit/pkg/types"
)

// writeText prints a segment table followed by an object table.
func (r *Writer) writeText(doc *types.Document) error {
	if r.opts.Source != "" {
		fmt.Fprintf(r.w, "Map file: %s\n", r.opts.Source)
	}
	fmt.Fprintf(r.w, "Segments: %d, Records: %d, Objects: %d\n\n",
		len(doc.Segments), doc.RecordCount(), len(doc.Objects))

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEGMENT\tADDRESS\tSIZE\tRECORDS\tRECORD SUM")
	for _, seg := range doc.Segments {
		addr, size := "-", "-"
		if seg.Extent != nil {
			addr = hex(seg.Extent.Address)
			size = fmt.Sprintf("%#x", seg.Extent.Size)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%#x\n", seg.Name, addr, size, len(seg.Records), seg.RecordsTotalSize())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(doc.Objects) == 0 {
		return nil
	}
	fmt.Fprintln(r.w)

	tw = tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECT\tSEGMENT\tSIZE")
	for _, name := range doc.ObjectNames() {
		obj := doc.Objects[name]
		for _, segName := range obj.SegmentNames() {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", name, segName, obj.Segments[segName])
		}
	}
	return tw.Flush()
}
