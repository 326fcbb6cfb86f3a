package types

import "sort"

// -----------------------------------------------------------------------------
// Records
// -----------------------------------------------------------------------------

// Fill is linker-inserted padding that followed a record in the map.
type Fill struct {
	Address uint64 `json:"address"`
	Size    uint64 `json:"size"`
}

// Symbol is a symbol definition listed under a record.
type Symbol struct {
	Address uint64 `json:"address"`
	Name    string `json:"name"`
}

// Record is one input contribution (entry or sub-section) inside a segment.
//
// Records are built in two steps: the decoder produces the base record and
// WithFill returns the final one when a fill line followed it. Neither step
// mutates a record that has already been handed out.
type Record struct {
	Name    string `json:"name"`
	Address uint64 `json:"address"`
	Size    uint64 `json:"size"` // size as printed, before fill

	Fill         *Fill `json:"fill,omitempty"`
	FillOverlaps bool  `json:"fill_overlaps"` // fill starts at the record's own address

	Library string `json:"library,omitempty"` // archive, only with Object
	Object  string `json:"object,omitempty"`

	Symbols []Symbol `json:"symbols,omitempty"`

	// Data is the source span the record was decoded from, verbatim.
	Data string `json:"-"`
}

// WithFill returns a copy of r with the fill applied. A fill that starts at
// the record's own address replaces the record's footprint instead of
// extending it.
func (r Record) WithFill(address, size uint64) Record {
	r.Fill = &Fill{Address: address, Size: size}
	r.FillOverlaps = address == r.Address
	return r
}

// FillSize returns the size of the trailing fill, or 0.
func (r Record) FillSize() uint64 {
	if r.Fill == nil {
		return 0
	}
	return r.Fill.Size
}

// EffectiveSize is the footprint of the record after applying its fill.
func (r Record) EffectiveSize() uint64 {
	if r.FillOverlaps {
		return r.FillSize()
	}
	return r.Size + r.FillSize()
}

// HasObject reports whether the record names the object that produced it.
func (r Record) HasObject() bool {
	return r.Object != ""
}

// -----------------------------------------------------------------------------
// Segments
// -----------------------------------------------------------------------------

// Extent is an address/size pair. Both are present or the extent is absent.
type Extent struct {
	Address uint64 `json:"address"`
	Size    uint64 `json:"size"`
}

// Segment is an output placement unit (an output section) and its records.
type Segment struct {
	Name string `json:"name"`

	Extent      *Extent `json:"extent,omitempty"`       // nil when the header printed no address/size
	LoadAddress *uint64 `json:"load_address,omitempty"` // from "load address 0x..."

	Records []Record `json:"records"`
}

// Address returns the header address, if the header carried one.
func (s *Segment) Address() (uint64, bool) {
	if s.Extent == nil {
		return 0, false
	}
	return s.Extent.Address, true
}

// Size returns the header size, if the header carried one.
func (s *Segment) Size() (uint64, bool) {
	if s.Extent == nil {
		return 0, false
	}
	return s.Extent.Size, true
}

// RecordsTotalSize sums record effective sizes in order. Consecutive records
// at the same address are counted once, using the last one's size: the
// earlier ones were superseded by relaxation.
func (s *Segment) RecordsTotalSize() uint64 {
	if len(s.Records) == 0 {
		return 0
	}

	lastAddress := s.Records[0].Address
	lastSize := s.Records[0].EffectiveSize()
	var sum uint64

	for _, r := range s.Records[1:] {
		if r.Address == lastAddress {
			lastSize = r.EffectiveSize()
			continue
		}
		sum += lastSize
		lastAddress = r.Address
		lastSize = r.EffectiveSize()
	}
	return sum + lastSize
}

// -----------------------------------------------------------------------------
// Object rollup
// -----------------------------------------------------------------------------

// ObjectRollup accumulates effective sizes of one object's records per segment.
type ObjectRollup struct {
	Name     string            `json:"name"`
	Segments map[string]uint64 `json:"segments"`
}

// NewObjectRollup creates an empty rollup for the named object.
func NewObjectRollup(name string) *ObjectRollup {
	return &ObjectRollup{Name: name, Segments: make(map[string]uint64)}
}

// Add accumulates size under segment.
func (o *ObjectRollup) Add(segment string, size uint64) {
	o.Segments[segment] += size
}

// SegmentSize returns the accumulated size for segment.
func (o *ObjectRollup) SegmentSize(segment string) (uint64, bool) {
	size, ok := o.Segments[segment]
	return size, ok
}

// TotalSize sums the object's contribution over all segments.
func (o *ObjectRollup) TotalSize() uint64 {
	var total uint64
	for _, size := range o.Segments {
		total += size
	}
	return total
}

// SegmentNames returns the segment names in sorted order.
func (o *ObjectRollup) SegmentNames() []string {
	names := make([]string, 0, len(o.Segments))
	for name := range o.Segments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------
// Document
// -----------------------------------------------------------------------------

// Document is the result of one parse.
type Document struct {
	Segments []*Segment              `json:"segments"`
	Objects  map[string]*ObjectRollup `json:"objects"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{Objects: make(map[string]*ObjectRollup)}
}

// AddSegment appends seg and rolls its records up by object name. Records
// without an object are not rolled up.
func (d *Document) AddSegment(seg *Segment) {
	if d.Objects == nil {
		d.Objects = make(map[string]*ObjectRollup)
	}
	for _, r := range seg.Records {
		if !r.HasObject() {
			continue
		}
		obj, ok := d.Objects[r.Object]
		if !ok {
			obj = NewObjectRollup(r.Object)
			d.Objects[r.Object] = obj
		}
		obj.Add(seg.Name, r.EffectiveSize())
	}
	d.Segments = append(d.Segments, seg)
}

// Segment returns the first segment with the given name.
func (d *Document) Segment(name string) (*Segment, bool) {
	for _, s := range d.Segments {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ObjectNames returns the rolled up object names in sorted order.
func (d *Document) ObjectNames() []string {
	names := make([]string, 0, len(d.Objects))
	for name := range d.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordCount returns the number of records over all segments.
func (d *Document) RecordCount() int {
	n := 0
	for _, s := range d.Segments {
		n += len(s.Records)
	}
	return n
}
