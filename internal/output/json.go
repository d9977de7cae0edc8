// internal/output/json.go
package output

import (
	"io"

	"bwaidx/internal/engine"
	"bwaidx/internal/jsonlutil"
	"bwaidx/pkg/api"
)

// ToAPISMEM converts a domain Hit to the stable wire schema (v1).
func ToAPISMEM(h engine.Hit) api.SMEMV1 {
	v := api.SMEMV1{
		ReadID:     h.ReadID,
		QueryStart: h.QBeg,
		QueryEnd:   h.QEnd,
		Length:     h.Len(),
		Count:      h.Count,
		Hits:       make([]api.HitV1, 0, len(h.Locs)),
		Seq:        h.Seq,
		SourceFile: h.SourceFile,
	}
	for _, l := range h.Locs {
		v.Hits = append(v.Hits, api.HitV1{Contig: l.Contig, Pos: l.Pos, Strand: string(l.Strand)})
	}
	return v
}

func toAPISMEMs(list []engine.Hit) []api.SMEMV1 {
	out := make([]api.SMEMV1, 0, len(list))
	for _, h := range list {
		out = append(out, ToAPISMEM(h))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 seeds (pretty-indented).
func WriteJSON(w io.Writer, list []engine.Hit) error {
	return jsonlutil.EncodePretty(w, toAPISMEMs(list))
}
