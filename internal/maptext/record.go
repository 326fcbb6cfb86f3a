package maptext

import (
	"fmt"
	"strings"

	"github.com/joshuapare/mapkit/internal/mapfmt"
	"github.com/joshuapare/mapkit/pkg/types"
)

// Decoder decodes blocks of one document. Granularity is fixed for the
// whole document.
type Decoder struct {
	Granularity types.Granularity
	Sink        types.Sink
}

// NewDecoder returns a decoder reporting to sink. A nil sink discards.
func NewDecoder(g types.Granularity, sink types.Sink) *Decoder {
	if sink == nil {
		sink = types.Discard
	}
	return &Decoder{Granularity: g, Sink: sink}
}

func (d *Decoder) report(sev types.Severity, cat types.DiagCategory, segment, record, line, format string, args ...any) {
	if d.Sink == nil {
		return
	}
	d.Sink.Report(types.Diagnostic{
		Severity: sev,
		Category: cat,
		Segment:  segment,
		Record:   record,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// DecodeRecord decodes one record span of the named segment.
//
// The name is on the first line. The info line (address, size, provenance)
// follows the name on the same line, or comes on a later line when the name
// stands alone. Symbol lines are collected and the first fill line is merged
// into the record. The span is kept verbatim in Record.Data.
func (d *Decoder) DecodeRecord(segment, span string) (types.Record, error) {
	lines := strings.Split(span, mapfmt.LF)

	first := firstNonBlank(lines, 0)
	if first < 0 {
		return types.Record{}, types.ErrInvalidDocument
	}

	name, end, ok := mapfmt.MatchName(lines[first])
	if !ok {
		return types.Record{}, &types.Error{
			Kind: types.ErrKindInvalidRecord,
			Msg:  fmt.Sprintf("missing record name in %q", strings.TrimSpace(lines[first])),
		}
	}

	info, next, err := d.findInfo(segment, name, lines[first][end:], lines[first+1:])
	if err != nil {
		return types.Record{}, err
	}
	if !info.HasProvenance() && d.Granularity == types.GranularitySegment {
		return types.Record{}, &types.Error{
			Kind: types.ErrKindInvalidRecord,
			Msg:  fmt.Sprintf("record %s: missing object", name),
		}
	}

	r := types.Record{
		Name:    name,
		Address: info.Address,
		Size:    info.Size,
		Library: info.Library,
		Object:  info.Object,
		Data:    span,
	}
	r = d.scanTail(segment, r, lines[first+1+next:])
	return r, nil
}

// findInfo locates the info line. When rest (the text after the name) is not
// blank it must be the info line. Otherwise the following lines are searched
// and next is the number of lines consumed.
func (d *Decoder) findInfo(segment, name, rest string, following []string) (mapfmt.Info, int, error) {
	if !mapfmt.IsBlank(rest) {
		info, ok := mapfmt.MatchInfo(rest)
		if !ok {
			return mapfmt.Info{}, 0, &types.Error{
				Kind: types.ErrKindInvalidRecord,
				Msg:  fmt.Sprintf("record %s: malformed address/size in %q", name, strings.TrimSpace(rest)),
			}
		}
		return info, 0, nil
	}

	for i, line := range following {
		if mapfmt.IsBlank(line) || mapfmt.IsNoise(line) {
			continue
		}
		if info, ok := mapfmt.MatchInfo(line); ok {
			return info, i + 1, nil
		}
		d.report(types.SevInfo, types.DiagSkippedLine, segment, name, line,
			"skipped line before record info")
	}
	return mapfmt.Info{}, 0, &types.Error{
		Kind: types.ErrKindInvalidRecord,
		Msg:  fmt.Sprintf("record %s: missing address/size", name),
	}
}

// scanTail collects symbols and merges the first fill line. Lines after the
// fill are not examined.
func (d *Decoder) scanTail(segment string, r types.Record, lines []string) types.Record {
	for _, line := range lines {
		if mapfmt.IsBlank(line) {
			continue
		}
		if fill, ok := mapfmt.MatchFill(line); ok {
			d.checkFill(segment, r, fill, line)
			return r.WithFill(fill.Address, fill.Size)
		}
		if mapfmt.IsNoise(line) {
			continue
		}
		if addr, sym, ok := mapfmt.MatchSymbol(line); ok {
			r.Symbols = append(r.Symbols, types.Symbol{Address: addr, Name: sym})
			continue
		}
		d.report(types.SevInfo, types.DiagSkippedLine, segment, r.Name, line,
			"skipped unrecognized line")
	}
	return r
}

func (d *Decoder) checkFill(segment string, r types.Record, fill mapfmt.HexPair, line string) {
	if fill.Address != r.Address && fill.Address != r.Address+r.Size {
		d.report(types.SevWarning, types.DiagFillAddress, segment, r.Name, line,
			"fill at %#x is not contiguous with record at %#x size %#x", fill.Address, r.Address, r.Size)
	}
	if fill.Size > r.Size {
		d.report(types.SevWarning, types.DiagFillSize, segment, r.Name, line,
			"fill size %#x exceeds record size %#x", fill.Size, r.Size)
	}
}
