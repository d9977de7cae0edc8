// internal/engine/hit.go
package engine

// Loc is one occurrence of a seed on the reference.
type Loc struct {
	Contig string
	RID    int
	Pos    int64 // 0-based start on the contig's forward strand
	Strand byte  // '+' or '-'
}

// Hit is one super-maximal exact match of a read.
type Hit struct {
	ReadID string
	QBeg   int // query span [QBeg, QEnd)
	QEnd   int
	Count  uint64 // occurrences on both strands
	Locs   []Loc  // at most Config.MaxOcc, contig-spanning ones skipped

	Seq        string // matched bases, set when Config.NeedSeq
	SourceFile string
}

// Len is the seed length.
func (h Hit) Len() int { return h.QEnd - h.QBeg }
