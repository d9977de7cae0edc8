// internal/engine/engine.go
package engine

import (
	"cmp"
	"slices"

	"bwaidx/core/fmindex"
	"bwaidx/core/packseq"
	"bwaidx/core/refseq"
)

// Config holds seeding parameters.
type Config struct {
	MinSeedLen int    // shortest SMEM reported
	MinIntv    uint64 // stop extending below this many occurrences
	MaxIntv    uint64 // 0 = off; see fmindex.Index.SMEM1a
	MaxOcc     int    // locations resolved per hit (0 = all)
	NeedSeq    bool   // fill Hit.Seq

	// MaxMemIntv enables a third seeding round: walking forward from each
	// offset, the first match of at least MinSeedLen bases occurring fewer
	// than MaxMemIntv times is added. 0 disables it.
	MaxMemIntv uint64
}

// DefaultConfig mirrors the usual short-read seeding defaults.
var DefaultConfig = Config{MinSeedLen: 19, MinIntv: 1, MaxOcc: 500}

// Engine seeds reads against one index. It is read-only and safe for
// concurrent use; per-goroutine state lives in the Scratch passed to Seed.
type Engine struct {
	idx *fmindex.Index
	ref *refseq.Reference
	cfg Config
}

// New creates a new Engine.
func New(idx *fmindex.Index, ref *refseq.Reference, c Config) *Engine {
	if c.MinIntv < 1 {
		c.MinIntv = 1
	}
	if c.MinSeedLen < 1 {
		c.MinSeedLen = 1
	}
	return &Engine{idx: idx, ref: ref, cfg: c}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Seed returns the SMEMs of seq that are at least MinSeedLen long, in
// query order. s may be nil; callers seeding many reads on one goroutine
// should reuse one Scratch.
func (e *Engine) Seed(readID string, seq []byte, s *fmindex.Scratch) []Hit {
	if len(seq) == 0 {
		return nil
	}
	if s == nil {
		s = new(fmindex.Scratch)
	}
	q := packseq.Encode(seq)
	var (
		mem fmindex.IntervalSet
		out []Hit
	)
	for at := 0; at < len(q); {
		at = e.idx.SMEM1a(q, at, e.cfg.MinIntv, e.cfg.MaxIntv, &mem, s)
		for _, iv := range mem.Slice() {
			if iv.Len() < e.cfg.MinSeedLen {
				continue
			}
			h := Hit{
				ReadID: readID,
				QBeg:   iv.QueryBegin(),
				QEnd:   iv.QueryEnd(),
				Count:  iv.Width(),
				Locs:   e.locate(iv),
			}
			out = append(out, e.withSeq(h, q))
		}
	}
	if e.cfg.MaxMemIntv > 0 {
		out = e.reseed(readID, q, out)
	}
	return out
}

// reseed appends the rare seeds found by SeedStrategy1 and keeps out
// ordered by query begin.
func (e *Engine) reseed(readID string, q []byte, out []Hit) []Hit {
	n := len(out)
	for at := 0; at < len(q); {
		next, iv, ok := e.idx.SeedStrategy1(q, at, e.cfg.MinSeedLen, e.cfg.MaxMemIntv)
		if ok {
			out = append(out, e.withSeq(Hit{
				ReadID: readID,
				QBeg:   iv.QueryBegin(),
				QEnd:   iv.QueryEnd(),
				Count:  iv.Width(),
				Locs:   e.locate(iv),
			}, q))
		}
		at = next
	}
	if len(out) > n {
		slices.SortStableFunc(out, func(a, b Hit) int { return cmp.Compare(a.QBeg, b.QBeg) })
	}
	return out
}

func (e *Engine) withSeq(h Hit, q []byte) Hit {
	if e.cfg.NeedSeq {
		h.Seq = string(packseq.Decode(q[h.QBeg:h.QEnd]))
	}
	return h
}

// Match looks seq up as a whole by backward search. The hit spans the
// full query and carries up to MaxOcc locations; Count is zero when seq
// does not occur or contains ambiguous bases.
func (e *Engine) Match(readID string, seq []byte) Hit {
	q := packseq.Encode(seq)
	h := Hit{ReadID: readID, QEnd: len(q)}
	if len(q) == 0 {
		return h
	}
	pos, n := e.idx.Locate(q, e.cfg.MaxOcc)
	h.Count = n
	span := int64(len(q))
	for _, rb := range pos {
		if l, ok := e.toLoc(int64(rb), span); ok {
			h.Locs = append(h.Locs, l)
		}
	}
	return e.withSeq(h, q)
}

// locate resolves up to MaxOcc rows of iv to contig coordinates.
func (e *Engine) locate(iv fmindex.Interval) []Loc {
	n := iv.Width()
	if e.cfg.MaxOcc > 0 && n > uint64(e.cfg.MaxOcc) {
		n = uint64(e.cfg.MaxOcc)
	}
	span := int64(iv.Len())
	locs := make([]Loc, 0, n)
	for j := uint64(0); j < n; j++ {
		rb := int64(e.idx.SA(iv.X[0] + j))
		if l, ok := e.toLoc(rb, span); ok {
			locs = append(locs, l)
		}
	}
	return locs
}

// toLoc maps a match of length span at rb on the doubled axis to a
// contig location. Matches bridging two contigs or the strand boundary
// are rejected.
func (e *Engine) toLoc(rb, span int64) (Loc, bool) {
	rid := e.ref.IntvToRID(rb, rb+span)
	if rid < 0 {
		return Loc{}, false
	}
	posF, isRev := e.ref.Depos(rb)
	strand := byte('+')
	if isRev {
		posF -= span - 1
		strand = '-'
	}
	ann := e.ref.Anns[rid]
	return Loc{Contig: ann.Name, RID: rid, Pos: posF - ann.Offset, Strand: strand}, true
}
