package maptext

import (
	"fmt"

	"github.com/joshuapare/mapkit/pkg/types"
)

// Assemble builds one segment from a block: header first, then every record
// in order. Any record that fails to decode fails the whole block. When the
// header declares a size that the records do not add up to, a SIZE_MISMATCH
// warning is reported and the segment is still returned.
func (d *Decoder) Assemble(block string) (*types.Segment, error) {
	ranges := SplitRecords(block)

	seg, err := DecodeHeader(ranges[0].Slice(block))
	if err != nil {
		return nil, err
	}

	seg.Records = make([]types.Record, 0, len(ranges)-1)
	for _, r := range ranges[1:] {
		rec, err := d.DecodeRecord(seg.Name, r.Slice(block))
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", seg.Name, err)
		}
		seg.Records = append(seg.Records, rec)
	}

	if size, ok := seg.Size(); ok {
		if total := seg.RecordsTotalSize(); total != size {
			d.report(types.SevWarning, types.DiagSizeMismatch, seg.Name, "", "",
				"records add up to %#x, header declares %#x", total, size)
		}
	}
	return seg, nil
}
