package maptext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/mapkit/internal/mapfmt"
	"github.com/joshuapare/mapkit/pkg/types"
)

// ErrDirective is the cause of an InvalidHeader error raised for a linker
// directive (LOAD, OUTPUT(...), START GROUP, assignments, script echoes),
// which can never head a segment.
var ErrDirective = errors.New("linker directive")

// DecodeHeader decodes the header span of a block into an empty segment.
//
// The first non-blank line must start with the segment name at column 0.
// Address and size follow the name on the same line, or on the next
// non-blank line when the name stands alone. A name-only header followed by
// noise, or by nothing, has no extent.
func DecodeHeader(span string) (*types.Segment, error) {
	lines := strings.Split(span, mapfmt.LF)

	first := firstNonBlank(lines, 0)
	if first < 0 {
		return nil, types.ErrInvalidDocument
	}
	line := lines[first]

	if mapfmt.IsDirective(line) {
		return nil, &types.Error{
			Kind: types.ErrKindInvalidHeader,
			Msg:  fmt.Sprintf("header %q", strings.TrimSpace(line)),
			Err:  ErrDirective,
		}
	}

	name, end, ok := mapfmt.MatchHeaderName(line)
	if !ok {
		return nil, &types.Error{
			Kind: types.ErrKindInvalidHeader,
			Msg:  fmt.Sprintf("invalid segment name in %q", strings.TrimSpace(line)),
		}
	}
	seg := &types.Segment{Name: name}

	rest := line[end:]
	if mapfmt.IsBlank(rest) {
		next := firstNonBlank(lines, first+1)
		if next < 0 || mapfmt.IsNoise(lines[next]) {
			return seg, nil
		}
		rest = lines[next]
		pair, ok := mapfmt.MatchHexPair(rest)
		if !ok {
			return seg, nil
		}
		seg.Extent = &types.Extent{Address: pair.Address, Size: pair.Size}
	} else {
		pair, ok := mapfmt.MatchHexPair(rest)
		if !ok {
			return nil, &types.Error{
				Kind: types.ErrKindInvalidHeader,
				Msg:  fmt.Sprintf("segment %s: missing address/size", name),
			}
		}
		seg.Extent = &types.Extent{Address: pair.Address, Size: pair.Size}
	}

	if lma, ok := mapfmt.MatchLoadAddress(rest); ok {
		seg.LoadAddress = &lma
	}
	return seg, nil
}

func firstNonBlank(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if !mapfmt.IsBlank(lines[i]) {
			return i
		}
	}
	return -1
}
