package report

import (
	"encoding/json"

	"github.com/joshuapare/mapkit/pkg/types"
)

type jsonReport struct {
	Source   string           `json:"source,omitempty"`
	Segments []*types.Segment `json:"segments"`
	Objects  []jsonObject     `json:"objects"`
}

type jsonObject struct {
	Name     string            `json:"name"`
	Total    uint64            `json:"total"`
	Segments map[string]uint64 `json:"segments"`
}

func (r *Writer) writeJSON(doc *types.Document) error {
	out := jsonReport{
		Source:   r.opts.Source,
		Segments: doc.Segments,
		Objects:  make([]jsonObject, 0, len(doc.Objects)),
	}
	if out.Segments == nil {
		out.Segments = []*types.Segment{}
	}
	for _, name := range doc.ObjectNames() {
		obj := doc.Objects[name]
		out.Objects = append(out.Objects, jsonObject{
			Name:     name,
			Total:    obj.TotalSize(),
			Segments: obj.Segments,
		})
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
