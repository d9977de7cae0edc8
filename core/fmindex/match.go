// core/fmindex/match.go
package fmindex

// MatchExact backward-searches q (2-bit codes) and returns the inclusive
// row range [k, l] of its occurrences and their count. A count of zero
// means no match; ambiguous codes never match.
func (x *Index) MatchExact(q []byte) (k, l, n uint64) {
	k, l = 0, x.SeqLen
	for i := len(q) - 1; i >= 0; i-- {
		c := q[i]
		if c > 3 {
			return 0, 0, 0
		}
		ok, ol := x.Occ2(k, l+1, c)
		k = x.L2[c] + ok + 1
		l = x.L2[c] + ol
		if k > l {
			return 0, 0, 0
		}
	}
	return k, l, l - k + 1
}

// Locate returns the text positions of the occurrences of q on the
// doubled axis, in row order, and the total occurrence count. It stops
// after limit positions when limit > 0.
func (x *Index) Locate(q []byte, limit int) ([]uint64, uint64) {
	k, l, n := x.MatchExact(q)
	if n == 0 {
		return nil, 0
	}
	if limit > 0 && n > uint64(limit) {
		l = k + uint64(limit) - 1
	}
	out := make([]uint64, 0, l-k+1)
	for r := k; r <= l; r++ {
		out = append(out, x.SA(r))
	}
	return out, n
}
