package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joshuapare/mapkit/pkg/types"
)

const (
	sheetSegments = "Segments"
	sheetEntries  = "Entries"
	sheetObjects  = "Objects"
)

var (
	segmentHeader = []any{"Nr", "Segment", "Address", "Size"}
	entryHeader   = []any{"Nr", "Segment", "Entry", "Address", "Size", "Fill", "Library", "Object"}
	objectHeader  = []any{"Nr", "Object", "Segment", "Size"}
)

// WriteXLSX writes doc as a workbook with one sheet each for segments,
// entries and per-object segment sizes.
func (r *Writer) WriteXLSX(doc *types.Document) error {
	f, err := buildWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(r.w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes doc as a workbook file at path.
func SaveXLSX(doc *types.Document, path string) error {
	f, err := buildWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func buildWorkbook(doc *types.Document) (*excelize.File, error) {
	f := excelize.NewFile()

	// The default sheet becomes Segments so the workbook opens on it.
	if err := f.SetSheetName(f.GetSheetName(0), sheetSegments); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{sheetEntries, sheetObjects} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	w := sheetWriter{f: f, style: style}
	w.header(sheetSegments, segmentHeader)
	w.header(sheetEntries, entryHeader)
	w.header(sheetObjects, objectHeader)

	entry := 0
	for i, seg := range doc.Segments {
		row := []any{i, seg.Name, "", ""}
		if seg.Extent != nil {
			row[2] = hex(seg.Extent.Address)
			row[3] = seg.Extent.Size
		}
		w.row(sheetSegments, i+2, row)

		for _, rec := range seg.Records {
			w.row(sheetEntries, entry+2, []any{
				entry, seg.Name, rec.Name, hex(rec.Address), rec.EffectiveSize(),
				rec.FillSize(), rec.Library, rec.Object,
			})
			entry++
		}
	}

	n := 0
	for _, name := range doc.ObjectNames() {
		obj := doc.Objects[name]
		for _, segName := range obj.SegmentNames() {
			w.row(sheetObjects, n+2, []any{n, name, segName, obj.Segments[segName]})
			n++
		}
	}

	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// sheetWriter keeps the first error so rows can be written unconditionally.
type sheetWriter struct {
	f     *excelize.File
	style int
	err   error
}

func (w *sheetWriter) header(sheet string, cells []any) {
	w.row(sheet, 1, cells)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(cells), 1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(sheet, "A1", last, w.style)
}

func (w *sheetWriter) row(sheet string, row int, cells []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &cells)
}
