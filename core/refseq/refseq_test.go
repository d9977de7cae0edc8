package refseq

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bwaidx/core/packseq"
)

func buildScenario(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder()
	b.Append("chr1", "first contig", []byte("ACGTN"))
	b.Append("chr2", "", []byte("GGCC"))
	if got := b.Finalize(false); got != 18 {
		t.Fatalf("Finalize=%d want 18", got)
	}
	return b
}

func TestRand48MatchesLibc(t *testing.T) {
	want := []uint32{1609868485, 1074594562, 470884846, 2128573038, 960673312}
	r := newRand48(DefaultSeed)
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Fatalf("draw %d = %d want %d", i, got, w)
		}
	}
}

func TestBuilderScenario(t *testing.T) {
	ref := buildScenario(t).Reference()
	if ref.LPac != 9 || ref.NSeqs != 2 {
		t.Fatalf("LPac=%d NSeqs=%d", ref.LPac, ref.NSeqs)
	}
	if len(ref.Ambs) != 1 || ref.Ambs[0] != (AmbRegion{Offset: 4, Len: 1, Amb: 'N'}) {
		t.Fatalf("ambs=%+v", ref.Ambs)
	}
	if ref.Anns[0].NAmbs != 1 || ref.Anns[1].NAmbs != 0 {
		t.Fatalf("n_ambs=%d,%d", ref.Anns[0].NAmbs, ref.Anns[1].NAmbs)
	}
	if ref.Anns[1].Offset != 5 || ref.Anns[1].Len != 4 {
		t.Fatalf("chr2 ann=%+v", ref.Anns[1])
	}
	// first lrand48 draw with seed 11 is 1 mod 4, so N becomes C
	fwd, n := packseq.GetSeq(ref.LPac, ref.Pac, 0, 9)
	if n != 9 || string(packseq.Decode(fwd)) != "ACGTCGGCC" {
		t.Fatalf("forward=%q", packseq.Decode(fwd))
	}
	stored := make([]byte, 0, 9)
	for i := int64(9); i < ref.PacLen; i++ {
		stored = append(stored, packseq.Get(ref.Pac, i))
	}
	if string(packseq.Decode(stored)) != "GGCCGACGT" {
		t.Fatalf("reverse half=%q", packseq.Decode(stored))
	}
}

func TestAmbiguousRunsMergeOnlyIdenticalSymbols(t *testing.T) {
	b := NewBuilder()
	b.Append("a", "", []byte("ANNRNn"))
	b.Append("b", "", []byte("NA"))
	b.Finalize(true)
	ref := b.Reference()
	want := []AmbRegion{
		{Offset: 1, Len: 2, Amb: 'N'},
		{Offset: 3, Len: 1, Amb: 'R'},
		{Offset: 4, Len: 1, Amb: 'N'},
		{Offset: 5, Len: 1, Amb: 'n'},
		{Offset: 6, Len: 1, Amb: 'N'},
	}
	if len(ref.Ambs) != len(want) {
		t.Fatalf("ambs=%+v", ref.Ambs)
	}
	for i := range want {
		if ref.Ambs[i] != want[i] {
			t.Fatalf("amb %d = %+v want %+v", i, ref.Ambs[i], want[i])
		}
	}
	if ref.Anns[0].NAmbs != 4 || ref.Anns[1].NAmbs != 1 {
		t.Fatalf("n_ambs=%d,%d", ref.Anns[0].NAmbs, ref.Anns[1].NAmbs)
	}
	if ref.PacLen != 8 {
		t.Fatalf("forward-only PacLen=%d", ref.PacLen)
	}
}

func writeScenario(t *testing.T) (string, *Builder) {
	t.Helper()
	b := buildScenario(t)
	prefix := filepath.Join(t.TempDir(), "ref")
	if err := b.Write(prefix); err != nil {
		t.Fatal(err)
	}
	return prefix, b
}

func TestWriteRestoreRoundTrip(t *testing.T) {
	prefix, b := writeScenario(t)
	ann, err := os.ReadFile(prefix + ".ann")
	if err != nil {
		t.Fatal(err)
	}
	wantAnn := "9 2 11\n0 chr1 first contig\n0 5 1\n0 chr2 (null)\n5 4 0\n"
	if string(ann) != wantAnn {
		t.Fatalf(".ann=\n%s", ann)
	}
	// forward strand only: ACGT CGGC C, last byte zero-padded, trailer 1
	pac, err := os.ReadFile(prefix + ".pac")
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x1b, 0x69, 0x40, 1}; !bytes.Equal(pac, want) {
		t.Fatalf(".pac=%v want %v", pac, want)
	}

	got, err := Restore(prefix)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Close()
	want := b.Reference()
	if got.LPac != want.LPac || got.NSeqs != want.NSeqs || got.Seed != want.Seed || got.PacLen != 9 {
		t.Fatalf("header: %+v", got)
	}
	for i := range want.Anns {
		if got.Anns[i] != want.Anns[i] {
			t.Fatalf("ann %d: %+v want %+v", i, got.Anns[i], want.Anns[i])
		}
	}
	if got.Ambs[0] != want.Ambs[0] {
		t.Fatalf("amb: %+v", got.Ambs[0])
	}
	for _, span := range [][2]int64{{0, 9}, {9, 18}} {
		g, _ := packseq.GetSeq(got.LPac, got.Pac, span[0], span[1])
		w, _ := packseq.GetSeq(want.LPac, want.Pac, span[0], span[1])
		if !bytes.Equal(g, w) {
			t.Fatalf("[%d,%d): restored %q built %q", span[0], span[1], packseq.Decode(g), packseq.Decode(w))
		}
	}
}

func TestRestoreRejectsInconsistentFiles(t *testing.T) {
	prefix, _ := writeScenario(t)
	if err := os.WriteFile(prefix+".amb", []byte("10 2 1\n4 1 N\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Restore(prefix)
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("err=%v want ErrInconsistent", err)
	}
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Line != 1 || !strings.HasSuffix(fe.File, ".amb") {
		t.Fatalf("err=%#v", err)
	}
}

func TestRestoreRejectsContigGap(t *testing.T) {
	prefix, _ := writeScenario(t)
	ann := "9 2 11\n0 chr1 first contig\n0 5 1\n0 chr2 (null)\n6 3 0\n"
	if err := os.WriteFile(prefix+".ann", []byte(ann), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(prefix); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("err=%v", err)
	}
}

func TestRestoreRejectsShortPac(t *testing.T) {
	prefix, _ := writeScenario(t)
	var buf bytes.Buffer
	if err := packseq.WritePac(&buf, []byte{0, 0}, 7); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(prefix+".pac", buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(prefix); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("err=%v", err)
	}
}

func TestRestoreRejectsDoubledPac(t *testing.T) {
	prefix, b := writeScenario(t)
	var buf bytes.Buffer
	if err := packseq.WritePac(&buf, b.Packed().Bytes(), 18); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(prefix+".pac", buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(prefix); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("err=%v", err)
	}
}

func TestRestoreMarksAlt(t *testing.T) {
	prefix, _ := writeScenario(t)
	alt := "@SQ\tSN:chr1\nchr2\t0\t*\nmissing\n"
	if err := os.WriteFile(prefix+".alt", []byte(alt), 0o644); err != nil {
		t.Fatal(err)
	}
	ref, err := Restore(prefix)
	if err != nil {
		t.Fatal(err)
	}
	defer ref.Close()
	if ref.Anns[0].IsAlt || !ref.Anns[1].IsAlt {
		t.Fatalf("alt flags: %v %v", ref.Anns[0].IsAlt, ref.Anns[1].IsAlt)
	}
}

func TestMarkAltNameTooLong(t *testing.T) {
	ref := buildScenario(t).Reference()
	long := strings.Repeat("x", MaxAltNameLen+1) + "\n"
	if _, err := ref.MarkAlt(strings.NewReader(long)); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("err=%v", err)
	}
	ok := strings.Repeat("x", MaxAltNameLen) + "\nchr1"
	n, err := ref.MarkAlt(strings.NewReader(ok))
	if err != nil || n != 1 || !ref.Anns[0].IsAlt {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestDeposInvolution(t *testing.T) {
	const l = 9
	for p := int64(0); p < 2*l; p++ {
		f, rev := Depos(l, p)
		if rev != (p >= l) || f < 0 || f >= l {
			t.Fatalf("Depos(%d)=%d,%v", p, f, rev)
		}
		if rev {
			if back, r2 := Depos(l, f); back != f || r2 {
				t.Fatalf("refold of %d gave %d,%v", f, back, r2)
			}
		}
	}
}

func TestPosToRID(t *testing.T) {
	ref := buildScenario(t).Reference()
	for p := int64(0); p < ref.LPac; p++ {
		want := 0
		if p >= 5 {
			want = 1
		}
		if got := ref.PosToRID(p); got != want {
			t.Fatalf("PosToRID(%d)=%d want %d", p, got, want)
		}
	}
	if got := ref.PosToRID(ref.LPac); got != OutOfRange {
		t.Fatalf("PosToRID(LPac)=%d", got)
	}
}

func TestIntvToRID(t *testing.T) {
	ref := buildScenario(t).Reference()
	cases := []struct {
		rb, re int64
		want   int
	}{
		{0, 5, 0},
		{5, 9, 1},
		{3, 7, Ambiguous},
		{8, 10, CrossStrand},
		{12, 3, CrossStrand}, // reversed bounds
		{7, 5, 1},
		{9, 13, 1},   // reverse of chr2
		{13, 18, 0},  // reverse of chr1
		{12, 14, Ambiguous},
		{4, 4, 0},
	}
	for _, c := range cases {
		if got := ref.IntvToRID(c.rb, c.re); got != c.want {
			t.Errorf("IntvToRID(%d,%d)=%d want %d", c.rb, c.re, got, c.want)
		}
	}
}

func TestCountAmbi(t *testing.T) {
	b := NewBuilder()
	b.Append("a", "", []byte("ACNNNNGT"))
	b.Finalize(false)
	ref := b.Reference()
	cases := []struct {
		pos  int64
		n    int
		want int
	}{
		{3, 1, 1}, // inside
		{0, 2, 0}, // before
		{6, 2, 0}, // after
		{1, 3, 2}, // left edge
		{4, 4, 2}, // right edge
		{0, 8, 4}, // covering
	}
	for _, c := range cases {
		got, rid := ref.CountAmbi(c.pos, c.n)
		if got != c.want || rid != 0 {
			t.Errorf("CountAmbi(%d,%d)=%d,%d want %d", c.pos, c.n, got, rid, c.want)
		}
	}
}

func TestFetchSeqClampsToContig(t *testing.T) {
	ref := buildScenario(t).Reference()
	f, err := ref.FetchSeq(2, 6, 9)
	if err != nil {
		t.Fatal(err)
	}
	if f.RID != 1 || f.Beg != 5 || f.End != 9 || string(packseq.Decode(f.Seq)) != "GGCC" {
		t.Fatalf("forward fetch=%+v %q", f, packseq.Decode(f.Seq))
	}
	// reverse of chr1 occupies [13, 18)
	f, err = ref.FetchSeq(18, 15, 10)
	if err != nil {
		t.Fatal(err)
	}
	if f.RID != 0 || f.Beg != 13 || f.End != 18 || string(packseq.Decode(f.Seq)) != "GACGT" {
		t.Fatalf("reverse fetch=%+v %q", f, packseq.Decode(f.Seq))
	}
	if _, err := ref.FetchSeq(0, 9, 5); err == nil {
		t.Fatal("expected error for mid outside range")
	}
}

func TestFromFASTA(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.fa")
	if err := os.WriteFile(path, []byte(">chr1 first contig\nACG\nTN\n>chr2\nGGCC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := FromFASTA(context.Background(), path, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := b.Reference()
	if ref.LPac != 9 || ref.Anns[0].Anno != "first contig" || ref.Anns[1].Name != "chr2" {
		t.Fatalf("ref=%+v", ref.Anns)
	}
	if got, _ := packseq.GetSeq(ref.LPac, ref.Pac, 0, 5); string(packseq.Decode(got)) != "ACGTC" {
		t.Fatalf("chr1=%q", got)
	}
}
