// core/fmindex/smem.go
package fmindex

// Scratch holds the two working lists reused across SMEM calls. A Scratch
// must not be shared between goroutines.
type Scratch struct {
	prev, curr IntervalSet
}

// SMEM1 collects the super-maximal exact matches of q that cover offset x
// into mem, sorted by query begin. Matches occurring fewer than minIntv
// times are not extended further. q holds 2-bit codes; codes above 3 stop
// extension. It returns the end of the longest exact match starting at x.
func (x *Index) SMEM1(q []byte, at int, minIntv uint64, mem *IntervalSet, s *Scratch) int {
	return x.SMEM1a(q, at, minIntv, 0, mem, s)
}

// SMEM1a is SMEM1 that additionally stops extending an interval once it
// occurs fewer than maxIntv times (0 disables the limit).
func (x *Index) SMEM1a(q []byte, at int, minIntv, maxIntv uint64, mem *IntervalSet, s *Scratch) int {
	mem.Reset()
	if q[at] > 3 {
		return at + 1
	}
	if minIntv < 1 {
		minIntv = 1
	}
	if s == nil {
		s = new(Scratch)
	}
	prev, curr := &s.prev, &s.curr

	ik := x.SetInterval(q[at])
	ik.Info = uint64(at + 1)

	// forward extension, recording every interval whose width shrinks
	curr.Reset()
	i := at + 1
	for ; i < len(q); i++ {
		if ik.X[2] < maxIntv {
			curr.Push(ik)
			break
		}
		if q[i] > 3 {
			curr.Push(ik)
			break
		}
		c := 3 - q[i]
		ok := x.Extend(ik, false)
		if ok[c].X[2] != ik.X[2] {
			curr.Push(ik)
			if ok[c].X[2] < minIntv {
				break
			}
		}
		ik = ok[c]
		ik.Info = uint64(i + 1)
	}
	if i == len(q) {
		curr.Push(ik)
	}
	curr.Reverse() // longest first
	ret := int(curr.At(0).Info)
	prev, curr = curr, prev

	// backward extension
	for i = at - 1; i >= -1; i-- {
		c := -1
		if i >= 0 && q[i] < 4 {
			c = int(q[i])
		}
		curr.Reset()
		for j := 0; j < prev.Len(); j++ {
			p := prev.At(j)
			var ok [4]Interval
			if c >= 0 && ik.X[2] >= maxIntv {
				ok = x.Extend(p, true)
			}
			if c < 0 || ik.X[2] < maxIntv || ok[c].X[2] < minIntv {
				// only the longest surviving match at this offset is kept
				if curr.Len() == 0 {
					if mem.Len() == 0 || i+1 < mem.Last().QueryBegin() {
						ik = p
						ik.Info |= uint64(i+1) << 32
						mem.Push(ik)
					}
				}
			} else if curr.Len() == 0 || ok[c].X[2] != curr.Last().X[2] {
				ok[c].Info = p.Info
				curr.Push(ok[c])
			}
		}
		if curr.Len() == 0 {
			break
		}
		prev, curr = curr, prev
	}
	mem.Reverse() // by query begin
	return ret
}

// SeedStrategy1 walks forward from at and returns the first match of at
// least minLen bases that occurs fewer than maxIntv times. It returns the
// offset to resume from and whether mem was filled.
func (x *Index) SeedStrategy1(q []byte, at, minLen int, maxIntv uint64) (int, Interval, bool) {
	if q[at] > 3 {
		return at + 1, Interval{}, false
	}
	ik := x.SetInterval(q[at])
	for i := at + 1; i < len(q); i++ {
		if q[i] > 3 {
			return i + 1, Interval{}, false
		}
		c := 3 - q[i]
		ok := x.Extend(ik, false)
		if ok[c].X[2] < maxIntv && i-at >= minLen {
			m := ok[c]
			m.Info = span(at, i+1)
			return i + 1, m, true
		}
		ik = ok[c]
	}
	return len(q), Interval{}, false
}
