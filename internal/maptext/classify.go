package maptext

import (
	"sort"
	"strings"

	"github.com/joshuapare/mapkit/internal/mapfmt"
)

// Section tags one of the top-level blocks of a map file.
type Section int

const (
	SectionArchiveMembers Section = iota
	SectionCommonSymbols
	SectionDiscardedInput
	SectionMemoryConfiguration
	SectionMemoryMap
	SectionCrossReference
)

// titles is ordered the way ld prints the blocks.
var titles = []struct {
	section Section
	title   string
}{
	{SectionArchiveMembers, mapfmt.TitleArchiveMembers},
	{SectionCommonSymbols, mapfmt.TitleCommonSymbols},
	{SectionDiscardedInput, mapfmt.TitleDiscardedInput},
	{SectionMemoryConfiguration, mapfmt.TitleMemoryConfiguration},
	{SectionMemoryMap, mapfmt.TitleMemoryMap},
	{SectionCrossReference, mapfmt.TitleCrossReference},
}

func (s Section) String() string {
	switch s {
	case SectionArchiveMembers:
		return "ArchiveMembers"
	case SectionCommonSymbols:
		return "CommonSymbols"
	case SectionDiscardedInput:
		return "DiscardedInput"
	case SectionMemoryConfiguration:
		return "MemoryConfiguration"
	case SectionMemoryMap:
		return "MemoryMap"
	case SectionCrossReference:
		return "CrossReference"
	default:
		return "Unknown"
	}
}

// Title returns the title line prefix that opens the section.
func (s Section) Title() string {
	for _, t := range titles {
		if t.section == s {
			return t.title
		}
	}
	return ""
}

// Range is a half-open byte range [Start, End) into a text buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int { return r.End - r.Start }

// Slice returns the text the range covers.
func (r Range) Slice(text string) string { return text[r.Start:r.End] }

// Body returns the covered text without its first (title) line.
func (r Range) Body(text string) string {
	s := r.Slice(text)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// SectionRange pairs a section tag with the range it was classified to.
type SectionRange struct {
	Section Section
	Range
}

// Sections maps each section seen in a document to its range.
type Sections map[Section]Range

// Ordered returns the ranges in document order.
func (s Sections) Ordered() []SectionRange {
	out := make([]SectionRange, 0, len(s))
	for tag, r := range s {
		out = append(out, SectionRange{Section: tag, Range: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// ClassifyLine reports which section title, if any, line opens.
func ClassifyLine(line string) (Section, bool) {
	for _, t := range titles {
		if strings.HasPrefix(line, t.title) {
			return t.section, true
		}
	}
	return 0, false
}

// Classify cuts text into top-level sections. Each range starts at its title
// line and runs to the next title line or the end of text. A repeated title
// replaces the earlier range for that section. Text before the first title
// belongs to no section.
func Classify(text string) Sections {
	out := make(Sections)

	current, open := Section(0), false
	start := 0

	for pos := 0; pos < len(text); {
		end := strings.IndexByte(text[pos:], '\n')
		next := len(text)
		if end >= 0 {
			next = pos + end + 1
		}
		line := text[pos:next]

		if tag, ok := ClassifyLine(line); ok {
			if open {
				out[current] = Range{Start: start, End: pos}
			}
			current, open, start = tag, true, pos
		}
		pos = next
	}
	if open {
		out[current] = Range{Start: start, End: len(text)}
	}
	return out
}
