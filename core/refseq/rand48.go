// core/refseq/rand48.go
package refseq

// rand48 is the POSIX drand48 family generator (48-bit LCG). Using it
// for ambiguous-base substitution keeps .pac files byte-identical with
// packages built by other tools from the same FASTA and seed.
type rand48 struct{ x uint64 }

const (
	rand48A    = 0x5DEECE66D
	rand48C    = 0xB
	rand48Mask = 1<<48 - 1
)

func newRand48(seed uint32) *rand48 {
	return &rand48{x: uint64(seed)<<16 | 0x330E}
}

// Next returns the next non-negative 31-bit value (lrand48).
func (r *rand48) Next() uint32 {
	r.x = (rand48A*r.x + rand48C) & rand48Mask
	return uint32(r.x >> 17)
}
