// Package maptext decodes the text of a GNU ld map file into a
// types.Document.
//
// Decoding runs in four stages: DecodeInput turns bytes into text, Classify
// finds the "Linker script and memory map" section, SplitBlocks cuts that
// section into one block per segment, and Decoder.Assemble turns each block
// into a segment with its records.
package maptext

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/mapkit/pkg/types"
)

// Parse decodes a raw map file.
func Parse(data []byte, opts types.ParseOptions) (*types.Document, error) {
	text, err := DecodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}
	return ParseText(text, opts)
}

// ParseText decodes map file text that is already UTF-8 with LF line endings.
//
// Blocks that fail to assemble are reported and skipped unless opts.Strict
// is set, in which case the first failure is returned. Linker directive
// blocks are reported at info level and never abort the parse.
func ParseText(text string, opts types.ParseOptions) (*types.Document, error) {
	sink := opts.SinkOrDiscard()
	doc := types.NewDocument()

	mm, ok := Classify(text)[SectionMemoryMap]
	if !ok {
		sink.Report(types.Diagnostic{
			Severity: types.SevInfo,
			Category: types.DiagMissingMemoryMap,
			Message:  "no memory map section found",
		})
		return doc, nil
	}

	body := mm.Body(text)
	blocks := SplitBlocks(body, opts.Granularity)
	results := assembleAll(body, blocks, opts)

	for _, res := range results {
		res.diags.Replay(sink)

		if res.err == nil {
			doc.AddSegment(res.seg)
			continue
		}
		if errors.Is(res.err, ErrDirective) {
			sink.Report(types.Diagnostic{
				Severity: types.SevInfo,
				Category: types.DiagDirective,
				Message:  res.err.Error(),
			})
			continue
		}
		if opts.Strict {
			return nil, res.err
		}
		sink.Report(types.Diagnostic{
			Severity: types.SevError,
			Category: types.DiagSkippedBlock,
			Message:  res.err.Error(),
			Line:     firstLine(res.block),
		})
	}
	return doc, nil
}

type blockResult struct {
	block string
	seg   *types.Segment
	err   error
	diags *types.DiagnosticReport
}

// assembleAll assembles every block. Each block reports into its own
// DiagnosticReport so that replaying them in block order yields the same
// diagnostic stream whether or not blocks ran concurrently.
func assembleAll(body string, blocks []Range, opts types.ParseOptions) []blockResult {
	results := make([]blockResult, len(blocks))

	run := func(i int) {
		diags := types.NewDiagnosticReport()
		block := blocks[i].Slice(body)
		seg, err := NewDecoder(opts.Granularity, diags).Assemble(block)
		results[i] = blockResult{block: block, seg: seg, err: err, diags: diags}
	}

	if opts.Workers <= 1 || len(blocks) < 2 {
		for i := range blocks {
			run(i)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i := range blocks {
		i := i // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			run(i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
