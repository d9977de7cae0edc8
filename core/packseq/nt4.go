// core/packseq/nt4.go
package packseq

// Nucleotide codes. Codes 0..3 are the packed alphabet; anything else is
// never stored in a packed array.
const (
	CodeA byte = 0
	CodeC byte = 1
	CodeG byte = 2
	CodeT byte = 3
	// CodeAmbig marks any non-ACGT symbol (N, IUPAC codes, garbage).
	CodeAmbig byte = 4
	// CodeGap marks '-'.
	CodeGap byte = 5
)

// Alphabet renders codes 0..4 as letters.
const Alphabet = "ACGTN"

// NT4 maps an ASCII byte to its nucleotide code. Case-insensitive.
var NT4 = func() (t [256]byte) {
	for i := range t {
		t[i] = CodeAmbig
	}
	t['-'] = CodeGap
	for _, p := range []struct {
		b    byte
		code byte
	}{{'A', CodeA}, {'C', CodeC}, {'G', CodeG}, {'T', CodeT}} {
		t[p.b] = p.code
		t[p.b+'a'-'A'] = p.code
	}
	return t
}()

// Complement returns the code of the complementary base.
func Complement(code byte) byte { return 3 - code }

// Encode converts ASCII bases into codes (0..4). Gaps become CodeAmbig.
func Encode(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		c := NT4[b]
		if c > CodeAmbig {
			c = CodeAmbig
		}
		out[i] = c
	}
	return out
}

// Decode renders codes as upper-case letters. Codes above 3 become 'N'.
func Decode(codes []byte) []byte {
	out := make([]byte, len(codes))
	for i, c := range codes {
		if c > CodeAmbig {
			c = CodeAmbig
		}
		out[i] = Alphabet[c]
	}
	return out
}
