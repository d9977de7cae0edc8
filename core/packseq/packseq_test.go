package packseq

import (
	"bytes"
	"errors"
	"testing"
)

func TestSetGetMSBFirst(t *testing.T) {
	pac := make([]byte, 2)
	Set(pac, 0, CodeT)
	Set(pac, 1, CodeG)
	Set(pac, 2, CodeC)
	Set(pac, 3, CodeA)
	if pac[0] != 0b11_10_01_00 {
		t.Fatalf("byte layout = %08b, want 11100100", pac[0])
	}
	Set(pac, 1, CodeA)
	if got := Get(pac, 1); got != CodeA {
		t.Fatalf("overwrite: got %d", got)
	}
	if got := Get(pac, 0); got != CodeT {
		t.Fatalf("neighbour clobbered: got %d", got)
	}
}

func TestArrayGrowsAcrossDoubling(t *testing.T) {
	a := NewArray(0)
	n := int64(minBases*2 + 7)
	for i := int64(0); i < n; i++ {
		a.Append(byte(i % 4))
	}
	if a.Len() != n {
		t.Fatalf("len=%d want %d", a.Len(), n)
	}
	for i := int64(0); i < n; i += 997 {
		if a.Get(i) != byte(i%4) {
			t.Fatalf("base %d = %d", i, a.Get(i))
		}
	}
}

func TestReverseComplementHalf(t *testing.T) {
	a := NewArray(0)
	for _, c := range Encode([]byte("AACGT")) {
		a.Append(c)
	}
	a.AppendReverseComplement()
	if got := string(Decode(a.Codes())); got != "AACGTACGTT" {
		t.Fatalf("doubled = %s", got)
	}
}

func TestPacRoundTripAllRemainders(t *testing.T) {
	for n := int64(0); n < 9; n++ {
		a := NewArray(0)
		for i := int64(0); i < n; i++ {
			a.Append(byte((i * 3) % 4))
		}
		var buf bytes.Buffer
		if err := WritePac(&buf, a.Bytes(), n); err != nil {
			t.Fatalf("write: %v", err)
		}
		if want := n/4 + 2; int64(buf.Len()) != want {
			t.Fatalf("n=%d: size=%d want %d", n, buf.Len(), want)
		}
		body, got, err := ParsePac(buf.Bytes())
		if err != nil {
			t.Fatalf("n=%d parse: %v", n, err)
		}
		if got != n {
			t.Fatalf("n=%d: recovered %d", n, got)
		}
		for i := int64(0); i < n; i++ {
			if Get(body, i) != a.Get(i) {
				t.Fatalf("n=%d base %d mismatch", n, i)
			}
		}
	}
}

func TestWritePacZeroesBitsPastEnd(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePac(&buf, []byte{0x1b, 0xff}, 6); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x1b, 0xf0, 2}; !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %v want %v", buf.Bytes(), want)
	}
}

func TestParsePacRejectsBadTrailer(t *testing.T) {
	if _, _, err := ParsePac([]byte{0x1b, 7}); !errors.Is(err, ErrPacTrailer) {
		t.Fatalf("want ErrPacTrailer, got %v", err)
	}
	if _, _, err := ParsePac([]byte{1}); !errors.Is(err, ErrPacTrailer) {
		t.Fatalf("short file: want ErrPacTrailer, got %v", err)
	}
}

func doubled(t *testing.T, fwd string) (*Array, int64) {
	t.Helper()
	a := NewArray(0)
	for _, c := range Encode([]byte(fwd)) {
		a.Append(c)
	}
	l := a.Len()
	a.AppendReverseComplement()
	return a, l
}

func TestGetSeqStrandsAndBridging(t *testing.T) {
	a, l := doubled(t, "ACGGTTCA")
	pac := a.Bytes()

	fwd, n := GetSeq(l, pac, 1, 5)
	if n != 4 || string(Decode(fwd)) != "CGGT" {
		t.Fatalf("forward = %s (%d)", Decode(fwd), n)
	}
	// swapped bounds behave the same
	if sw, _ := GetSeq(l, pac, 5, 1); !bytes.Equal(sw, fwd) {
		t.Fatalf("swapped bounds differ")
	}
	all, n := GetSeq(l, pac, l, 2*l)
	if n != l || string(Decode(all)) != "TGAACCGT" {
		t.Fatalf("reverse half = %s", Decode(all))
	}
	for beg := int64(0); beg < l; beg++ {
		for end := l + 1; end <= 2*l; end++ {
			if s, n := GetSeq(l, pac, beg, end); s != nil || n != 0 {
				t.Fatalf("bridge [%d,%d) returned %d bases", beg, end, n)
			}
		}
	}
}

func TestGetSeqMirrorsComplement(t *testing.T) {
	a, l := doubled(t, "GATTACAGGC")
	pac := a.Bytes()
	for p := int64(0); p < l; p++ {
		f, _ := GetSeq(l, pac, p, p+1)
		mirror := 2*l - 1 - p
		r, n := GetSeq(l, pac, mirror, mirror+1)
		if n != 1 || r[0] != Complement(f[0]) {
			t.Fatalf("pos %d: fwd %c rev %c", p, Alphabet[f[0]], Alphabet[r[0]])
		}
		if r[0] != a.Get(mirror) {
			t.Fatalf("pos %d: decoded reverse disagrees with stored half", p)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	if got := string(Decode(Encode([]byte("acgtNRy-")))); got != "ACGTNNNN" {
		t.Fatalf("got %s", got)
	}
}
