// Package report renders a parsed map Document for people and tools.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/joshuapare/mapkit/pkg/types"
)

// Format specifies the output format.
type Format string

const (
	// FormatText outputs a human-readable summary.
	FormatText Format = "text"

	// FormatJSON outputs the full document as JSON.
	FormatJSON Format = "json"

	// FormatXML outputs the mapfile XML report.
	FormatXML Format = "xml"

	// FormatXLSX outputs a spreadsheet with Segments, Entries and Objects sheets.
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts the names of the formats above.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatXML, FormatXLSX:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json, xml or xlsx)", s)
	}
}

// Options controls rendering.
type Options struct {
	// Format selects the output format.
	// Default: FormatText
	Format Format

	// Source names the map file in report headers.
	Source string

	// SkipData leaves out the verbatim source text of every record (xml only).
	// Default: false
	SkipData bool

	// Now stamps XML reports. Default: time.Now
	Now func() time.Time
}

// DefaultOptions returns text output with record data included.
func DefaultOptions() Options {
	return Options{
		Format: FormatText,
		Now:    time.Now,
	}
}

// Writer renders documents to an io.Writer.
type Writer struct {
	opts Options
	w    io.Writer
}

// New creates a Writer.
//
// Example:
//
//	doc, _ := mapfile.ParseFile("app.map", mapfile.ParseOptions{})
//	opts := report.DefaultOptions()
//	opts.Format = report.FormatXML
//	report.New(os.Stdout, opts).Write(doc)
func New(w io.Writer, opts Options) *Writer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Writer{opts: opts, w: w}
}

// Write renders doc in the configured format.
func (r *Writer) Write(doc *types.Document) error {
	switch r.opts.Format {
	case FormatJSON:
		return r.writeJSON(doc)
	case FormatXML:
		return r.writeXML(doc)
	case FormatXLSX:
		return r.WriteXLSX(doc)
	case FormatText, "":
		return r.writeText(doc)
	default:
		return fmt.Errorf("unknown report format %q", r.opts.Format)
	}
}

// hex formats addresses the way ld prints them.
func hex(v uint64) string {
	return fmt.Sprintf("0x%016x", v)
}
