// core/refseq/mapper.go
package refseq

import (
	"fmt"
	"sort"

	"bwaidx/core/packseq"
)

// Depos folds a position on the doubled axis onto the forward strand.
// Positions in the second half map to 2*lPac-1-pos with isRev set.
func Depos(lPac, pos int64) (int64, bool) {
	if pos >= lPac {
		return (lPac << 1) - 1 - pos, true
	}
	return pos, false
}

// Depos folds pos using the reference's forward length.
func (r *Reference) Depos(pos int64) (int64, bool) { return Depos(r.LPac, pos) }

// PosToRID returns the contig containing forward position posF, or
// OutOfRange when posF is past the forward strand.
func (r *Reference) PosToRID(posF int64) int {
	if posF >= r.LPac || posF < 0 || len(r.Anns) == 0 {
		return OutOfRange
	}
	// first contig starting after posF, minus one
	i := sort.Search(len(r.Anns), func(i int) bool { return r.Anns[i].Offset > posF })
	return i - 1
}

// IntvToRID resolves the half-open interval [rb, re) on the doubled axis
// to a single contig. It returns CrossStrand when the interval bridges the
// strands and Ambiguous when its ends fall on different contigs.
func (r *Reference) IntvToRID(rb, re int64) int {
	if re < rb {
		rb, re = re, rb
	}
	if rb < r.LPac && re > r.LPac {
		return CrossStrand
	}
	pb, _ := r.Depos(rb)
	ridB := r.PosToRID(pb)
	ridE := ridB
	if rb < re {
		pe, _ := r.Depos(re - 1)
		ridE = r.PosToRID(pe)
	}
	if ridB != ridE {
		return Ambiguous
	}
	return ridB
}

// CountAmbi returns how many bases of [posF, posF+n) fall inside the
// ambiguous run overlapping it (at most one run is considered) and the
// contig containing posF.
func (r *Reference) CountAmbi(posF int64, n int) (int, int) {
	rid := r.PosToRID(posF)
	end := posF + int64(n)
	lo, hi := 0, len(r.Ambs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		h := r.Ambs[mid]
		hEnd := h.Offset + int64(h.Len)
		switch {
		case posF >= hEnd:
			lo = mid + 1
		case end <= h.Offset:
			hi = mid
		default:
			return int(min(hEnd, end) - max(h.Offset, posF)), rid
		}
	}
	return 0, rid
}

// Fetched is a contig-clamped slice of the doubled axis.
type Fetched struct {
	Seq []byte // 2-bit codes
	RID int
	Beg int64
	End int64
}

// FetchSeq decodes [beg, end) after clamping it to the contig and strand
// holding mid. mid must lie in [beg, end) once the bounds are ordered.
func (r *Reference) FetchSeq(beg, mid, end int64) (Fetched, error) {
	if end < beg {
		beg, end = end, beg
	}
	if mid < beg || mid >= end {
		return Fetched{}, fmt.Errorf("refseq: mid %d outside [%d, %d)", mid, beg, end)
	}
	posF, isRev := r.Depos(mid)
	rid := r.PosToRID(posF)
	if rid < 0 {
		return Fetched{}, fmt.Errorf("refseq: position %d outside the reference", mid)
	}
	farBeg := r.Anns[rid].Offset
	farEnd := farBeg + int64(r.Anns[rid].Len)
	if isRev {
		farBeg, farEnd = (r.LPac<<1)-farEnd, (r.LPac<<1)-farBeg
	}
	beg = max(beg, farBeg)
	end = min(end, farEnd)
	seq, n := packseq.GetSeq(r.LPac, r.Pac, beg, end)
	if seq == nil || n != end-beg {
		return Fetched{}, fmt.Errorf("refseq: decoded %d bases for [%d, %d) on contig %d", n, beg, end, rid)
	}
	return Fetched{Seq: seq, RID: rid, Beg: beg, End: end}, nil
}
