package mapfile

import (
	"fmt"
	"strings"

	"github.com/joshuapare/mapkit/internal/maptext"
	"github.com/joshuapare/mapkit/internal/mmfile"
	"github.com/joshuapare/mapkit/pkg/types"
)

// Re-exported model types, so that most callers only import this package.
type (
	Document     = types.Document
	Segment      = types.Segment
	Record       = types.Record
	ObjectRollup = types.ObjectRollup
	ParseOptions = types.ParseOptions
	Granularity  = types.Granularity
)

const (
	GranularitySegment = types.GranularitySegment
	GranularitySection = types.GranularitySection
)

// ParseFile loads and parses the map file at path.
func ParseFile(path string, opts ParseOptions) (*Document, error) {
	f, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()

	// DecodeInput copies the bytes into a string, so nothing in the
	// document refers to the mapping after Close.
	doc, err := maptext.Parse(f.Bytes(), opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// ParseBytes parses map file contents held in memory.
func ParseBytes(data []byte, opts ParseOptions) (*Document, error) {
	return maptext.Parse(data, opts)
}

// ParseString parses map file text. The text must already be UTF-8;
// opts.InputEncoding is ignored.
func ParseString(text string, opts ParseOptions) (*Document, error) {
	return maptext.ParseText(maptext.NormalizeNewlines(text), opts)
}

// SectionInfo describes one top-level section of a map file.
type SectionInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Start int    `json:"start"` // byte offset of the title line in the decoded text
	End   int    `json:"end"`
	Lines int    `json:"lines"`
}

// Sections lists the top-level sections found in data, in document order.
func Sections(data []byte, opts ParseOptions) ([]SectionInfo, error) {
	text, err := maptext.DecodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}

	ordered := maptext.Classify(text).Ordered()
	out := make([]SectionInfo, 0, len(ordered))
	for _, sr := range ordered {
		body := sr.Slice(text)
		lines := strings.Count(body, "\n")
		if !strings.HasSuffix(body, "\n") {
			lines++
		}
		out = append(out, SectionInfo{
			Name:  sr.Section.String(),
			Title: sr.Section.Title(),
			Start: sr.Start,
			End:   sr.End,
			Lines: lines,
		})
	}
	return out, nil
}
