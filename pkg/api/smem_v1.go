// pkg/api/smem_v1.go
package api

// SMEMV1 is the stable JSON/JSONL schema for one seed of one read.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SMEMV1 struct {
	ReadID     string  `json:"read_id"`
	QueryStart int     `json:"qstart"`
	QueryEnd   int     `json:"qend"`
	Length     int     `json:"length"`
	Count      uint64  `json:"count"`
	Hits       []HitV1 `json:"hits"`
	Seq        string  `json:"seq,omitempty"`
	SourceFile string  `json:"source_file,omitempty"`
}

// HitV1 is one reference location of a seed. Pos is 0-based on the
// contig's forward strand.
type HitV1 struct {
	Contig string `json:"contig"`
	Pos    int64  `json:"pos"`
	Strand string `json:"strand"` // "+" | "-"
}
