// Package fmindex is a bidirectional FM-index over the 2-bit DNA alphabet,
// laid out exactly like the .bwt/.sa files it loads.
//
// The BWT is stored with the sentinel removed. Every 128 symbols are
// preceded by the four cumulative symbol counts (as 64-bit values split
// into two little-endian uint32 words each), followed by eight words of
// sixteen MSB-first 2-bit symbols. A final count block follows the last
// symbols. Rows are numbered over the sentinel-including matrix, so there
// are SeqLen+1 rows and row Primary holds the sentinel.
//
// An Index is read-only once built or restored and safe for concurrent use.
package fmindex

import "errors"

const (
	occShift    = 7
	occInterval = 1 << occShift // symbols per count block
	blockWords  = 16            // 8 count words + 8 symbol words
)

var (
	// ErrInconsistent marks .bwt/.sa pairs that describe different texts.
	ErrInconsistent = errors.New("SA-BWT inconsistency")
	// ErrBadInterval marks a suffix-array sampling interval that is not a
	// positive power of two.
	ErrBadInterval = errors.New("sampling interval must be a positive power of two")
)

// Index is a loaded FM-index.
type Index struct {
	Primary uint64    // row whose BWT symbol is the sentinel
	L2      [5]uint64 // L2[c]: symbols smaller than c; L2[4] == SeqLen
	SeqLen  uint64
	BWT     []uint32 // interleaved counts and symbols

	CntTable [256]uint32 // per-byte symbol counts, one byte lane per symbol

	SAIntv  uint64
	Samples []uint64 // Samples[i] is the text position of row i*SAIntv; Samples[0] is ^0
}

// bwtWords returns the interleaved array length for n symbols.
func bwtWords(n uint64) uint64 {
	return (n+15)>>4 + 8*((n+occInterval-1)>>occShift+1)
}

// genCntTable fills CntTable so that summing the entries for the four
// bytes of a symbol word gives each symbol's count in its own byte lane.
func (x *Index) genCntTable() {
	for i := range x.CntTable {
		var v uint32
		for j := 0; j < 4; j++ {
			v += 1 << (uint(i>>(j<<1)&3) << 3)
		}
		x.CntTable[i] = v
	}
}

// symbol returns the code at sentinel-free offset m.
func (x *Index) symbol(m uint64) byte {
	w := x.BWT[m>>occShift<<4+8+(m&(occInterval-1))>>4]
	return byte(w >> ((^m & 15) << 1) & 3)
}

// B returns the BWT symbol of row k. The sentinel row reports 4.
func (x *Index) B(k uint64) byte {
	switch {
	case k == x.Primary:
		return 4
	case k > x.Primary:
		return x.symbol(k - 1)
	default:
		return x.symbol(k)
	}
}

// LF maps row k to the row of the suffix one position to its left.
func (x *Index) LF(k uint64) uint64 {
	if k == x.Primary {
		return 0
	}
	c := x.B(k)
	return x.L2[c] + x.Occ(k+1, c)
}

// SA returns the text position of row k, walking LF to the nearest sample.
func (x *Index) SA(k uint64) uint64 {
	var steps uint64
	mask := x.SAIntv - 1
	for k&mask != 0 {
		steps++
		k = x.LF(k)
	}
	// SA[0] is ^0, which makes steps+SA[0] wrap to steps-1
	return steps + x.Samples[k/x.SAIntv]
}

// Rows returns the number of rows in the sentinel-including matrix.
func (x *Index) Rows() uint64 { return x.SeqLen + 1 }
