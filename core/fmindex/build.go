// core/fmindex/build.go
package fmindex

import (
	"cmp"
	"fmt"
	"slices"
)

// DefaultSAIntv is the suffix-array sampling interval used by the indexer.
const DefaultSAIntv = 32

// Build constructs an index over text (2-bit codes) entirely in memory.
// Suffixes are ordered by prefix doubling, which suits references up to a
// few tens of megabases.
func Build(text []byte, saIntv uint64) (*Index, error) {
	if saIntv == 0 || saIntv&(saIntv-1) != 0 {
		return nil, fmt.Errorf("fmindex: interval %d: %w", saIntv, ErrBadInterval)
	}
	for i, c := range text {
		if c > 3 {
			return nil, fmt.Errorf("fmindex: code %d at offset %d is not A/C/G/T", c, i)
		}
	}
	n := uint64(len(text))
	sa := suffixArray(text)

	x := &Index{SeqLen: n, SAIntv: saIntv}
	x.BWT = make([]uint32, bwtWords(n))
	var cnt [4]uint64
	var k, cur, m uint64
	for r, s := range sa {
		if s == 0 {
			x.Primary = uint64(r)
			continue
		}
		c := text[s-1]
		if m&(occInterval-1) == 0 {
			putCounts(x.BWT[k:], cnt)
			k += 8
		}
		if m&15 == 0 {
			cur = k
			k++
		}
		x.BWT[cur] |= uint32(c) << ((15 - m&15) << 1)
		cnt[c]++
		m++
	}
	putCounts(x.BWT[k:], cnt)
	for c := 0; c < 4; c++ {
		x.L2[c+1] = x.L2[c] + cnt[c]
	}
	x.genCntTable()

	x.Samples = make([]uint64, (n+saIntv)/saIntv)
	for i := range x.Samples {
		x.Samples[i] = uint64(sa[uint64(i)*saIntv])
	}
	x.Samples[0] = ^uint64(0)
	return x, nil
}

func putCounts(p []uint32, cnt [4]uint64) {
	for c, v := range cnt {
		p[c<<1] = uint32(v)
		p[c<<1+1] = uint32(v >> 32)
	}
}

// suffixArray returns the sorted suffix starts of text followed by a
// sentinel smaller than every code; the result has len(text)+1 entries.
func suffixArray(text []byte) []int {
	n := len(text)
	sa := make([]int, n+1)
	rank := make([]int, n+1)
	tmp := make([]int, n+1)
	for i := range sa {
		sa[i] = i
		if i < n {
			rank[i] = int(text[i]) + 1
		}
	}
	for step := 1; ; step <<= 1 {
		second := func(i int) int {
			if i+step <= n {
				return rank[i+step]
			}
			return -1
		}
		slices.SortFunc(sa, func(a, b int) int {
			if c := cmp.Compare(rank[a], rank[b]); c != 0 {
				return c
			}
			return cmp.Compare(second(a), second(b))
		})
		tmp[sa[0]] = 0
		for i := 1; i <= n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if rank[sa[i]] != rank[sa[i-1]] || second(sa[i]) != second(sa[i-1]) {
				tmp[sa[i]]++
			}
		}
		rank, tmp = tmp, rank
		if rank[sa[n]] == n {
			return sa
		}
	}
}
