package report

import (
	"encoding/xml"
	"strconv"

	"github.com/joshuapare/mapkit/pkg/types"
)

// xmlDateTime is the timestamp layout of the mapfile element.
const xmlDateTime = "02/01/2006 15:04:05"

type xmlMapfile struct {
	XMLName  xml.Name   `xml:"mapfile"`
	DateTime string     `xml:"datetime,attr"`
	Source   string     `xml:"source,attr"`
	Section  xmlSection `xml:"section"`
}

type xmlSection struct {
	Name     string      `xml:"name,attr"`
	Segments xmlSegments `xml:"segments"`
	Objects  xmlObjects  `xml:"objects"`
}

type xmlSegments struct {
	Count    int          `xml:"count,attr"`
	Segments []xmlSegment `xml:"segment"`
}

type xmlSegment struct {
	Name        string     `xml:"name,attr"`
	Address     string     `xml:"address,attr,omitempty"`
	Size        string     `xml:"size,attr,omitempty"`
	LoadAddress string     `xml:"load_address,attr,omitempty"`
	Entries     []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Name         string      `xml:"name,attr"`
	Address      string      `xml:"address,attr"`
	Size         uint64      `xml:"size,attr"`
	FillSize     uint64      `xml:"fill_size,attr"`
	FillOverlaps bool        `xml:"fill_overlaps,attr"`
	Library      string      `xml:"library,attr,omitempty"`
	Object       string      `xml:"object,attr,omitempty"`
	Symbols      []xmlSymbol `xml:"symbol"`
	Data         *xmlData    `xml:"data"`
}

type xmlSymbol struct {
	Name    string `xml:"name,attr"`
	Address string `xml:"address,attr"`
}

type xmlData struct {
	Text string `xml:",chardata"`
}

type xmlObjects struct {
	Count   int         `xml:"count,attr"`
	Objects []xmlObject `xml:"object"`
}

type xmlObject struct {
	Name     string            `xml:"name,attr"`
	Segments xmlObjectSegments `xml:"segments"`
}

type xmlObjectSegments struct {
	Count    int                `xml:"count,attr"`
	Segments []xmlObjectSegment `xml:"segment"`
}

type xmlObjectSegment struct {
	Name string `xml:"name,attr"`
	Size uint64 `xml:"size,attr"`
}

func (r *Writer) writeXML(doc *types.Document) error {
	out := xmlMapfile{
		DateTime: r.opts.Now().UTC().Format(xmlDateTime),
		Source:   r.opts.Source,
		Section:  xmlSection{Name: "MemoryMap"},
	}

	out.Section.Segments.Count = len(doc.Segments)
	for _, seg := range doc.Segments {
		xs := xmlSegment{Name: seg.Name}
		if seg.Extent != nil {
			xs.Address = hex(seg.Extent.Address)
			xs.Size = strconv.FormatUint(seg.Extent.Size, 10)
		}
		if seg.LoadAddress != nil {
			xs.LoadAddress = hex(*seg.LoadAddress)
		}
		for _, rec := range seg.Records {
			xs.Entries = append(xs.Entries, r.xmlEntry(rec))
		}
		out.Section.Segments.Segments = append(out.Section.Segments.Segments, xs)
	}

	names := doc.ObjectNames()
	out.Section.Objects.Count = len(names)
	for _, name := range names {
		obj := doc.Objects[name]
		xo := xmlObject{Name: name}
		for _, segName := range obj.SegmentNames() {
			xo.Segments.Segments = append(xo.Segments.Segments, xmlObjectSegment{
				Name: segName,
				Size: obj.Segments[segName],
			})
		}
		xo.Segments.Count = len(xo.Segments.Segments)
		out.Section.Objects.Objects = append(out.Section.Objects.Objects, xo)
	}

	enc := xml.NewEncoder(r.w)
	enc.Indent("", "    ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	_, err := r.w.Write([]byte("\n"))
	return err
}

func (r *Writer) xmlEntry(rec types.Record) xmlEntry {
	xe := xmlEntry{
		Name:         rec.Name,
		Address:      hex(rec.Address),
		Size:         rec.Size,
		FillSize:     rec.FillSize(),
		FillOverlaps: rec.FillOverlaps,
		Library:      rec.Library,
		Object:       rec.Object,
	}
	for _, sym := range rec.Symbols {
		xe.Symbols = append(xe.Symbols, xmlSymbol{Name: sym.Name, Address: hex(sym.Address)})
	}
	if !r.opts.SkipData {
		xe.Data = &xmlData{Text: rec.Data}
	}
	return xe
}
