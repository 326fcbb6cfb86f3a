package maptext

import (
	"strings"

	"github.com/joshuapare/mapkit/internal/mapfmt"
	"github.com/joshuapare/mapkit/pkg/types"
)

// SplitBlocks cuts the memory map body into one range per container.
//
// With GranularitySegment the body is split on blank lines. With
// GranularitySection every column-0 line opens a new block, so blank lines
// stay inside their block. Blocks holding only whitespace are dropped.
func SplitBlocks(body string, g types.Granularity) []Range {
	if g == types.GranularitySection {
		return splitAtColumnZero(body)
	}
	return splitOnBlankLines(body)
}

func splitOnBlankLines(body string) []Range {
	var out []Range
	pos := 0
	for pos <= len(body) {
		end := strings.Index(body[pos:], mapfmt.BlockSeparator)
		next := len(body)
		if end >= 0 {
			next = pos + end
		}
		if r, ok := trimBlock(body, pos, next); ok {
			out = append(out, r)
		}
		if end < 0 {
			break
		}
		pos = next + len(mapfmt.BlockSeparator)
	}
	return out
}

func splitAtColumnZero(body string) []Range {
	var out []Range
	start := 0
	forEachLine(body, func(pos int, line string) {
		if pos == 0 || !mapfmt.StartsBlock(line) {
			return
		}
		if r, ok := trimBlock(body, start, pos); ok {
			out = append(out, r)
		}
		start = pos
	})
	if r, ok := trimBlock(body, start, len(body)); ok {
		out = append(out, r)
	}
	return out
}

// trimBlock drops leading and trailing newlines from [start, end) and
// reports false when nothing but whitespace remains.
func trimBlock(text string, start, end int) (Range, bool) {
	for start < end && text[start] == '\n' {
		start++
	}
	for end > start && text[end-1] == '\n' {
		end--
	}
	if mapfmt.IsBlank(text[start:end]) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// SplitRecords cuts one block into a header range followed by one range per
// record. A record starts at every line accepted by mapfmt.StartsRecord;
// everything else (continuation, symbol, fill and noise lines) stays with the
// range before it. The result always holds at least the header range.
func SplitRecords(block string) []Range {
	starts := []int{0}
	forEachLine(block, func(pos int, line string) {
		if pos > 0 && mapfmt.StartsRecord(line) {
			starts = append(starts, pos)
		}
	})

	out := make([]Range, len(starts))
	for i, start := range starts {
		end := len(block)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		for end > start && block[end-1] == '\n' {
			end--
		}
		out[i] = Range{Start: start, End: end}
	}
	return out
}

// forEachLine calls fn with the offset and text (without '\n') of every line.
func forEachLine(text string, fn func(pos int, line string)) {
	for pos := 0; pos < len(text); {
		end := strings.IndexByte(text[pos:], '\n')
		if end < 0 {
			fn(pos, text[pos:])
			return
		}
		fn(pos, text[pos:pos+end])
		pos += end + 1
	}
}
