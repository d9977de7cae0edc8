// core/packseq/packed.go
package packseq

// Base i occupies bits ((^i&3)<<1) of byte i>>2, i.e. four bases per byte,
// first base in the two most significant bits. This is the .pac wire layout.

// Get returns the 2-bit code of base i in a raw packed buffer.
func Get(pac []byte, i int64) byte {
	return pac[i>>2] >> ((^i & 3) << 1) & 3
}

// Set stores a 2-bit code at base i of a raw packed buffer.
func Set(pac []byte, i int64, code byte) {
	shift := (^i & 3) << 1
	pac[i>>2] = pac[i>>2]&^(3<<shift) | (code&3)<<shift
}

// Array is a growable 2-bit-per-base sequence.
type Array struct {
	buf []byte
	n   int64
}

const minBases = 0x10000

// NewArray returns an empty array with room for at least capBases bases.
func NewArray(capBases int64) *Array {
	if capBases < minBases {
		capBases = minBases
	}
	return &Array{buf: make([]byte, (capBases+3)/4)}
}

// Len returns the number of bases stored.
func (a *Array) Len() int64 { return a.n }

// Get returns the code at base i.
func (a *Array) Get(i int64) byte { return Get(a.buf, i) }

// Set overwrites the code at base i (i < Len()).
func (a *Array) Set(i int64, code byte) { Set(a.buf, i, code) }

// Append adds one base, doubling the backing buffer when full.
func (a *Array) Append(code byte) {
	a.Grow(a.n + 1)
	Set(a.buf, a.n, code)
	a.n++
}

// Grow makes sure the buffer can hold n bases. New bytes are zero.
func (a *Array) Grow(n int64) {
	need := (n + 3) / 4
	if need <= int64(len(a.buf)) {
		return
	}
	size := int64(len(a.buf))
	if size == 0 {
		size = minBases / 4
	}
	for size < need {
		size <<= 1
	}
	buf := make([]byte, size)
	copy(buf, a.buf)
	a.buf = buf
}

// Bytes returns the packed bytes covering exactly Len() bases.
func (a *Array) Bytes() []byte { return a.buf[:(a.n+3)/4] }

// AppendReverseComplement doubles the array: the second half is the
// reverse complement of the first, written back-to-front.
func (a *Array) AppendReverseComplement() {
	n := a.n
	a.Grow(n * 2)
	for l := n - 1; l >= 0; l-- {
		Set(a.buf, a.n, Complement(Get(a.buf, l)))
		a.n++
	}
}

// Codes unpacks bases [0, Len()) into one code per byte.
func (a *Array) Codes() []byte {
	out := make([]byte, a.n)
	for i := range out {
		out[i] = Get(a.buf, int64(i))
	}
	return out
}
