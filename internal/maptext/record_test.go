package maptext

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/mapkit/pkg/types"
)

var ignoreData = cmpopts.IgnoreFields(types.Record{}, "Data")

func newTestDecoder(g types.Granularity) (*Decoder, *types.DiagnosticReport) {
	report := types.NewDiagnosticReport()
	return NewDecoder(g, report), report
}

func TestDecodeRecord_SingleLine(t *testing.T) {
	d, report := newTestDecoder(types.GranularitySegment)
	span := " name  0x0000000000000010       0x20 libfoo.a(bar.o)"

	r, err := d.DecodeRecord(".text", span)
	require.NoError(t, err)

	want := types.Record{
		Name:    "name",
		Address: 0x10,
		Size:    0x20,
		Library: "libfoo.a",
		Object:  "bar.o",
	}
	if diff := cmp.Diff(want, r, ignoreData); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, span, r.Data, "span is kept verbatim")
	assert.Equal(t, uint64(0x20), r.EffectiveSize())
	assert.False(t, report.HasAnyIssues())
}

func TestDecodeRecord_TwoLineMatchesSingleLine(t *testing.T) {
	d, _ := newTestDecoder(types.GranularitySegment)

	single, err := d.DecodeRecord(".text", " name  0x0000000000000010       0x20 libfoo.a(bar.o)")
	require.NoError(t, err)
	double, err := d.DecodeRecord(".text", " name\n                0x0000000000000010       0x20 libfoo.a(bar.o)")
	require.NoError(t, err)

	if diff := cmp.Diff(single, double, ignoreData); diff != "" {
		t.Errorf("two-line record differs (-single +double):\n%s", diff)
	}
}

func TestDecodeRecord_BareObject(t *testing.T) {
	d, _ := newTestDecoder(types.GranularitySegment)

	r, err := d.DecodeRecord(".text", " .text          0x0000000000401000       0x2f /usr/lib/x86_64-linux-gnu/crt1.o")
	require.NoError(t, err)
	assert.Equal(t, "/usr/lib/x86_64-linux-gnu/crt1.o", r.Object)
	assert.Empty(t, r.Library)
}

func TestDecodeRecord_MalformedHex(t *testing.T) {
	d, _ := newTestDecoder(types.GranularitySegment)

	for _, span := range []string{
		" name  16       0x20 libfoo.a(bar.o)",
		" name  0x0000000000000010       32 libfoo.a(bar.o)",
		" name\n                16       0x20 libfoo.a(bar.o)",
		" name  0x10 bar.o",
	} {
		_, err := d.DecodeRecord(".text", span)
		require.Error(t, err, span)
		assert.True(t, errors.Is(err, types.ErrInvalidRecord), span)
	}
}

func TestDecodeRecord_ProvenanceByGranularity(t *testing.T) {
	span := " .glue_7        0x0000000008000150        0x0"

	seg, _ := newTestDecoder(types.GranularitySegment)
	_, err := seg.DecodeRecord(".text", span)
	assert.True(t, errors.Is(err, types.ErrInvalidRecord), "segment records must name an object")

	sec, _ := newTestDecoder(types.GranularitySection)
	r, err := sec.DecodeRecord(".text", span)
	require.NoError(t, err)
	assert.Equal(t, ".glue_7", r.Name)
	assert.False(t, r.HasObject())
}

func TestDecodeRecord_SymbolsAndFill(t *testing.T) {
	d, report := newTestDecoder(types.GranularitySegment)
	span := " .text          0x0000000000401000       0x2f crt1.o\n" +
		"                0x0000000000401000                _start\n" +
		"                0x0000000000401010                _dl_relocate_static_pie\n" +
		" *fill*         0x000000000040102f        0x1 \n" +
		"                0x0000000000401030                not_collected"

	r, err := d.DecodeRecord(".text", span)
	require.NoError(t, err)

	assert.Equal(t, []types.Symbol{
		{Address: 0x401000, Name: "_start"},
		{Address: 0x401010, Name: "_dl_relocate_static_pie"},
	}, r.Symbols)
	require.NotNil(t, r.Fill)
	assert.Equal(t, types.Fill{Address: 0x40102f, Size: 0x1}, *r.Fill)
	assert.False(t, r.FillOverlaps)
	assert.Equal(t, uint64(0x30), r.EffectiveSize())
	assert.False(t, report.HasAnyIssues())
}

func TestDecodeRecord_OverlappingFill(t *testing.T) {
	d, report := newTestDecoder(types.GranularitySegment)
	span := " .data          0x0000000020000000        0x4 main.o\n" +
		" *fill*         0x0000000020000000        0x8 "

	r, err := d.DecodeRecord(".data", span)
	require.NoError(t, err)
	assert.True(t, r.FillOverlaps)
	assert.Equal(t, uint64(0x8), r.EffectiveSize())

	require.Len(t, report.Diagnostics, 1)
	diag := report.Diagnostics[0]
	assert.Equal(t, types.SevWarning, diag.Severity)
	assert.Equal(t, types.DiagFillSize, diag.Category)
	assert.Equal(t, ".data", diag.Segment)
	assert.Equal(t, ".data", diag.Record)
}

func TestDecodeRecord_DetachedFill(t *testing.T) {
	d, report := newTestDecoder(types.GranularitySegment)
	span := " .bss           0x0000000020000008        0x4 main.o\n" +
		" *fill*         0x0000000020000010        0x4 "

	r, err := d.DecodeRecord(".bss", span)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x8), r.EffectiveSize(), "fill is still applied")

	fills := report.ByCategory(types.DiagFillAddress)
	require.Len(t, fills, 1)
	assert.Equal(t, types.SevWarning, fills[0].Severity)
	assert.Empty(t, report.ByCategory(types.DiagFillSize))
}

func TestDecodeRecord_OnlyFirstFillApplies(t *testing.T) {
	d, report := newTestDecoder(types.GranularitySegment)
	span := " .text          0x0000000000001000        0x4 a.o\n" +
		" *fill*         0x0000000000001004        0x4 \n" +
		" *fill*         0x0000000000001008        0x8 "

	r, err := d.DecodeRecord(".text", span)
	require.NoError(t, err)
	require.NotNil(t, r.Fill)
	assert.Equal(t, types.Fill{Address: 0x1004, Size: 0x4}, *r.Fill)
	assert.Equal(t, uint64(0x8), r.EffectiveSize())
	assert.False(t, report.HasAnyIssues(), "second fill line is not examined")
}

func TestDecodeRecord_NoiseAndSkippedLines(t *testing.T) {
	d, report := newTestDecoder(types.GranularitySegment)
	span := " .text.a_very_long_helper_function_name\n" +
		" *(SORT_BY_ALIGNMENT(.text.*))\n" +
		"   garbage before info\n" +
		"                0x0000000000401050       0x18 util.o\n" +
		"                0x0000000000401068                . = ALIGN (0x8)\n" +
		"   trailing garbage"

	r, err := d.DecodeRecord(".text", span)
	require.NoError(t, err)
	assert.Equal(t, ".text.a_very_long_helper_function_name", r.Name)
	assert.Equal(t, uint64(0x401050), r.Address)
	assert.Equal(t, "util.o", r.Object)

	skipped := report.ByCategory(types.DiagSkippedLine)
	require.Len(t, skipped, 2)
	assert.Equal(t, "   garbage before info", skipped[0].Line)
	assert.Equal(t, "   trailing garbage", skipped[1].Line)
	for _, diag := range skipped {
		assert.Equal(t, types.SevInfo, diag.Severity)
	}
	assert.Len(t, report.Diagnostics, 2, "noise lines are silent")
}

func TestDecodeRecord_MissingInfo(t *testing.T) {
	d, _ := newTestDecoder(types.GranularitySection)

	_, err := d.DecodeRecord(".text", " .text.orphan\n *(.text.orphan)")
	assert.True(t, errors.Is(err, types.ErrInvalidRecord))

	_, err = d.DecodeRecord(".text", " (bad) 0x0 0x0 a.o")
	assert.True(t, errors.Is(err, types.ErrInvalidRecord))

	_, err = d.DecodeRecord(".text", "\n\n")
	assert.True(t, errors.Is(err, types.ErrInvalidDocument))
}
