// Package mapfile parses GNU ld linker map files.
//
// # Overview
//
// A map file (ld -Map=out.map) reports how the linker placed input sections
// into output sections. This package decodes the "Linker script and memory
// map" part of that report into a Document: an ordered list of segments
// (output sections), each with the records (input sections) placed in it,
// plus a rollup of record sizes per object file and segment.
//
// # Parsing
//
//	doc, err := mapfile.ParseFile("build/firmware.map", mapfile.ParseOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, seg := range doc.Segments {
//	    fmt.Println(seg.Name, len(seg.Records))
//	}
//
// On unix, large files are memory-mapped while they are decoded.
//
// # Granularity
//
// GranularitySegment (the default) splits the memory map on blank lines and
// requires every record to name its object file. GranularitySection starts a
// new section at every column-0 line and accepts records without an object,
// such as linker-generated stubs.
//
// # Diagnostics
//
// Real map files disagree with themselves: relaxed sections leave records
// that do not add up to the header size, fills overlap their records, and
// linker directives sit between segments. None of these fail a parse. They
// are reported to ParseOptions.Sink:
//
//	report := types.NewDiagnosticReport()
//	doc, err := mapfile.ParseBytes(data, mapfile.ParseOptions{Sink: report})
//	fmt.Print(report.FormatText(types.SevWarning))
//
// NewSlogSink forwards diagnostics to a *slog.Logger instead.
//
// # Errors
//
// A segment whose header or records cannot be decoded is skipped and
// reported at error severity. With ParseOptions.Strict the first such
// failure is returned instead; use errors.Is with types.ErrInvalidHeader or
// types.ErrInvalidRecord to tell them apart.
package mapfile
