// core/fmindex/interval.go
package fmindex

// Interval is a bi-directional suffix-array interval. X[0] is the start
// row in the forward index, X[1] the start row in the index of the
// reverse complement, and X[2] the width. Info carries the query span of
// a match: begin in the high 32 bits, end (exclusive) in the low 32 bits.
type Interval struct {
	X    [3]uint64
	Info uint64
}

// Width is the number of occurrences.
func (iv Interval) Width() uint64 { return iv.X[2] }

// QueryBegin is the first query offset covered by the match.
func (iv Interval) QueryBegin() int { return int(iv.Info >> 32) }

// QueryEnd is one past the last query offset covered by the match.
func (iv Interval) QueryEnd() int { return int(uint32(iv.Info)) }

// Len is QueryEnd - QueryBegin.
func (iv Interval) Len() int { return iv.QueryEnd() - iv.QueryBegin() }

func span(begin, end int) uint64 { return uint64(begin)<<32 | uint64(uint32(end)) }

// IntervalSet is a reusable, growable list of intervals.
type IntervalSet struct {
	a []Interval
}

// Push appends iv.
func (s *IntervalSet) Push(iv Interval) { s.a = append(s.a, iv) }

// Reset empties the set, keeping its storage.
func (s *IntervalSet) Reset() { s.a = s.a[:0] }

// Len returns the number of intervals.
func (s *IntervalSet) Len() int { return len(s.a) }

// At returns the i-th interval.
func (s *IntervalSet) At(i int) Interval { return s.a[i] }

// Last returns a pointer to the final interval; the set must be non-empty.
func (s *IntervalSet) Last() *Interval { return &s.a[len(s.a)-1] }

// Reverse reverses the set in place.
func (s *IntervalSet) Reverse() {
	for i, j := 0, len(s.a)-1; i < j; i, j = i+1, j-1 {
		s.a[i], s.a[j] = s.a[j], s.a[i]
	}
}

// Slice exposes the backing slice; it is invalidated by the next Push.
func (s *IntervalSet) Slice() []Interval { return s.a }

// SetInterval returns the interval of the single symbol c.
func (x *Index) SetInterval(c byte) Interval {
	return Interval{X: [3]uint64{
		x.L2[c] + 1,
		x.L2[3-c] + 1,
		x.L2[c+1] - x.L2[c],
	}}
}

// Extend computes the four children of ik. With isBack the symbols are
// prepended (backward extension); otherwise appended to the reverse
// complement strand, which is forward extension of the original query
// with complemented symbols.
func (x *Index) Extend(ik Interval, isBack bool) [4]Interval {
	f, b := 1, 0
	if isBack {
		f, b = 0, 1
	}
	tk, tl := x.Occ2x4(ik.X[f], ik.X[f]+ik.X[2])
	var ok [4]Interval
	for c := range ok {
		ok[c].X[f] = x.L2[c] + 1 + tk[c]
		ok[c].X[2] = tl[c] - tk[c]
		ok[c].Info = ik.Info
	}
	ok[3].X[b] = ik.X[b]
	if ik.X[2] > 0 && ik.X[f] <= x.Primary && ik.X[f]+ik.X[2]-1 >= x.Primary {
		ok[3].X[b]++
	}
	ok[2].X[b] = ok[3].X[b] + ok[3].X[2]
	ok[1].X[b] = ok[2].X[b] + ok[2].X[2]
	ok[0].X[b] = ok[1].X[b] + ok[1].X[2]
	return ok
}
