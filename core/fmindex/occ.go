// core/fmindex/occ.go
package fmindex

import "math/bits"

// symbol patterns: code c repeated sixteen times
var symPattern = [4]uint32{0x00000000, 0x55555555, 0xaaaaaaaa, 0xffffffff}

// topMask keeps the first r symbols (top 2r bits) of a word; r in [1, 16].
func topMask(r uint64) uint32 { return ^uint32(0) << ((16 - r) << 1) }

// countSym counts code c among the first r symbols of w.
func countSym(w uint32, c byte, r uint64) uint64 {
	d := w ^ symPattern[c]
	nonzero := (d | d>>1) & 0x55555555 & topMask(r)
	return r - uint64(bits.OnesCount32(nonzero))
}

func (x *Index) aux4(w uint32) uint32 {
	return x.CntTable[w&0xff] + x.CntTable[w>>8&0xff] +
		x.CntTable[w>>16&0xff] + x.CntTable[w>>24]
}

// offset converts a row boundary to the sentinel-free symbol count.
func (x *Index) offset(k uint64) uint64 {
	if k > x.Primary {
		return k - 1
	}
	return k
}

func blockCount(p []uint32, c int) uint64 {
	return uint64(p[c<<1]) | uint64(p[c<<1+1])<<32
}

// Occ counts symbol c in BWT rows [0, k). k may be at most SeqLen+1.
func (x *Index) Occ(k uint64, c byte) uint64 {
	m := x.offset(k)
	p := x.BWT[m>>occShift<<4:]
	n := blockCount(p, int(c))
	words := p[8:]
	full := (m & (occInterval - 1)) >> 4
	for _, w := range words[:full] {
		n += countSym(w, c, 16)
	}
	if r := m & 15; r != 0 {
		n += countSym(words[full], c, r)
	}
	return n
}

// lanes sums symbol counts of words[from:to] plus the first r symbols of
// words[to], one byte lane per symbol.
func (x *Index) lanes(words []uint32, from, to, r uint64) uint32 {
	var v uint32
	for _, w := range words[from:to] {
		v += x.aux4(w)
	}
	if r != 0 {
		// masked-off symbols read as A
		v += x.aux4(words[to]&topMask(r)) - uint32(16-r)
	}
	return v
}

func spread(p []uint32, v uint32) (cnt [4]uint64) {
	for c := range cnt {
		cnt[c] = blockCount(p, c) + uint64(v>>(c<<3)&0xff)
	}
	return cnt
}

// Occ4 counts all four symbols in BWT rows [0, k).
func (x *Index) Occ4(k uint64) [4]uint64 {
	m := x.offset(k)
	p := x.BWT[m>>occShift<<4:]
	return spread(p, x.lanes(p[8:], 0, (m&(occInterval-1))>>4, m&15))
}

// Occ2x4 is Occ4 at two boundaries k <= l, sharing the scan when both fall
// in the same count block.
func (x *Index) Occ2x4(k, l uint64) (ck, cl [4]uint64) {
	mk, ml := x.offset(k), x.offset(l)
	if mk>>occShift != ml>>occShift {
		return x.Occ4(k), x.Occ4(l)
	}
	p := x.BWT[mk>>occShift<<4:]
	words := p[8:]
	fk, fl := (mk&(occInterval-1))>>4, (ml&(occInterval-1))>>4
	shared := x.lanes(words, 0, fk, 0)
	vk := shared
	if r := mk & 15; r != 0 {
		vk += x.aux4(words[fk]&topMask(r)) - uint32(16-r)
	}
	vl := shared + x.lanes(words, fk, fl, ml&15)
	return spread(p, vk), spread(p, vl)
}

// Occ2 is Occ at two boundaries k <= l for one symbol.
func (x *Index) Occ2(k, l uint64, c byte) (uint64, uint64) {
	ck, cl := x.Occ2x4(k, l)
	return ck[c], cl[c]
}
