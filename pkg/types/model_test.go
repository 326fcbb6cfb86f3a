package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_NoFill(t *testing.T) {
	r := Record{Name: "test", Address: 0x10, Size: 0x20}

	assert.Equal(t, uint64(0x20), r.EffectiveSize())
	assert.False(t, r.FillOverlaps)
	assert.Zero(t, r.FillSize())
}

func TestRecord_FillNonOverlapping(t *testing.T) {
	r := Record{Name: "test", Address: 0, Size: 1}
	filled := r.WithFill(1, 2)

	assert.Equal(t, uint64(3), filled.EffectiveSize())
	assert.False(t, filled.FillOverlaps)
	assert.Equal(t, uint64(2), filled.FillSize())

	// the base record is untouched
	assert.Nil(t, r.Fill)
	assert.Equal(t, uint64(1), r.EffectiveSize())
}

func TestRecord_FillOverlapping(t *testing.T) {
	r := Record{Name: "test", Address: 0, Size: 1}
	filled := r.WithFill(0, 2)

	assert.Equal(t, uint64(2), filled.EffectiveSize())
	assert.True(t, filled.FillOverlaps)
}

func TestSegment_RecordsTotalSize(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    uint64
	}{
		{
			name: "empty",
			want: 0,
		},
		{
			name:    "single",
			records: []Record{{Address: 0x100, Size: 5}},
			want:    5,
		},
		{
			name: "same address counts last only",
			records: []Record{
				{Address: 0x100, Size: 5},
				{Address: 0x100, Size: 8},
			},
			want: 8,
		},
		{
			name: "distinct addresses are summed",
			records: []Record{
				{Address: 0x100, Size: 5},
				{Address: 0x105, Size: 8},
			},
			want: 13,
		},
		{
			name: "coalesced run in the middle",
			records: []Record{
				{Address: 0x100, Size: 4},
				{Address: 0x104, Size: 0},
				{Address: 0x104, Size: 2},
				{Address: 0x106, Size: 2},
			},
			want: 8,
		},
		{
			name: "fill is part of the effective size",
			records: []Record{
				Record{Address: 0x100, Size: 3}.WithFill(0x103, 1),
				{Address: 0x104, Size: 4},
			},
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := &Segment{Name: ".text", Records: tt.records}
			assert.Equal(t, tt.want, seg.RecordsTotalSize())
		})
	}
}

func TestSegment_AddressAndSize(t *testing.T) {
	seg := &Segment{Name: ".text"}
	_, ok := seg.Address()
	assert.False(t, ok)
	_, ok = seg.Size()
	assert.False(t, ok)

	seg.Extent = &Extent{Address: 0x1000, Size: 0x10}
	addr, ok := seg.Address()
	require.True(t, ok)
	assert.Equal(t, uint64(0x1000), addr)
	size, ok := seg.Size()
	require.True(t, ok)
	assert.Equal(t, uint64(0x10), size)
}

func TestDocument_ObjectRollup(t *testing.T) {
	doc := NewDocument()
	doc.AddSegment(&Segment{
		Name: ".text",
		Records: []Record{
			{Name: ".text.a", Address: 0x0, Size: 10, Object: "main.o"},
			{Name: ".text.b", Address: 0xa, Size: 15, Object: "main.o"},
			{Name: ".text.c", Address: 0x19, Size: 7},
		},
	})
	doc.AddSegment(&Segment{
		Name: ".data",
		Records: []Record{
			{Name: ".data", Address: 0x100, Size: 4, Library: "libc.a", Object: "errno.o"},
			{Name: ".data", Address: 0x104, Size: 2, Object: "main.o"},
		},
	})

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, ".text", doc.Segments[0].Name, "segments keep source order")
	assert.Equal(t, []string{"errno.o", "main.o"}, doc.ObjectNames())

	obj := doc.Objects["main.o"]
	size, ok := obj.SegmentSize(".text")
	require.True(t, ok)
	assert.Equal(t, uint64(25), size)
	size, ok = obj.SegmentSize(".data")
	require.True(t, ok)
	assert.Equal(t, uint64(2), size)
	assert.Equal(t, uint64(27), obj.TotalSize())
	assert.Equal(t, []string{".data", ".text"}, obj.SegmentNames())

	assert.Equal(t, 5, doc.RecordCount())
}

func TestDocument_RollupUsesEffectiveSize(t *testing.T) {
	doc := NewDocument()
	doc.AddSegment(&Segment{
		Name: ".text",
		Records: []Record{
			Record{Name: ".text", Address: 0x0, Size: 0x1c, Object: "a.o"}.WithFill(0x1c, 0x4),
			Record{Name: ".text", Address: 0x20, Size: 0x0, Object: "b.o"}.WithFill(0x20, 0x8),
		},
	})

	assert.Equal(t, uint64(0x20), doc.Objects["a.o"].Segments[".text"])
	assert.Equal(t, uint64(0x8), doc.Objects["b.o"].Segments[".text"])
}

func TestDocument_Segment(t *testing.T) {
	doc := NewDocument()
	doc.AddSegment(&Segment{Name: ".bss"})

	seg, ok := doc.Segment(".bss")
	require.True(t, ok)
	assert.Equal(t, ".bss", seg.Name)

	_, ok = doc.Segment(".data")
	assert.False(t, ok)
}
