// pkg/api/reference_v1.go
package api

// LocusV1 is one position on the doubled axis resolved to a contig.
// Contig is empty (and RID negative) when the position is out of range.
type LocusV1 struct {
	Pos    int64  `json:"pos"`
	RID    int    `json:"rid"`
	Contig string `json:"contig,omitempty"`
	Offset int64  `json:"offset"`
	Strand string `json:"strand"`
}

// ContigV1 summarizes one contig of a reference package.
type ContigV1 struct {
	Name   string `json:"name"`
	Anno   string `json:"anno,omitempty"`
	Offset int64  `json:"offset"`
	Length int32  `json:"length"`
	NAmbs  int32  `json:"n_ambs"`
	IsAlt  bool   `json:"is_alt,omitempty"`
}

// StatsV1 describes a restored index.
type StatsV1 struct {
	Prefix      string     `json:"prefix"`
	LPac        int64      `json:"l_pac"`
	Contigs     int        `json:"n_contigs"`
	Holes       int        `json:"n_holes"`
	Seed        uint32     `json:"seed"`
	ForwardOnly bool       `json:"forward_only"`
	SeqLen      uint64     `json:"seq_len,omitempty"`
	Primary     uint64     `json:"primary,omitempty"`
	SAIntv      uint64     `json:"sa_intv,omitempty"`
	BaseCounts  [4]uint64  `json:"base_counts"`
	ContigList  []ContigV1 `json:"contigs,omitempty"`
}
