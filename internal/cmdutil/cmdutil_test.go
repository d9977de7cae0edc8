package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bwaidx/core/fmindex"
	"bwaidx/core/refseq"
	"bwaidx/internal/engine"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"": slog.LevelInfo, "DEBUG": slog.LevelDebug, "warn": slog.LevelWarn, "error": slog.LevelError} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("want error")
	}
}

func TestWarnf(t *testing.T) {
	var b bytes.Buffer
	l := slog.New(slog.NewTextHandler(&b, nil))
	Warnf(l, true, "hidden %d", 1)
	Warnf(l, false, "shown %d", 2)
	if strings.Contains(b.String(), "hidden") || !strings.Contains(b.String(), "level=WARN msg=\"shown 2\"") {
		t.Fatalf("log=%q", b.String())
	}
}

func setup(t *testing.T, nReads int) (*engine.Engine, []string) {
	t.Helper()
	r := rand.New(rand.NewPCG(5, 9))
	ref := make([]byte, 2000)
	for i := range ref {
		ref[i] = "ACGT"[r.IntN(4)]
	}
	bld := refseq.NewBuilder()
	bld.Append("chr", "", ref)
	bld.Finalize(false)
	idx, err := fmindex.Build(bld.Packed().Codes(), 8)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	var files []string
	for f := 0; f < 2; f++ {
		var sb strings.Builder
		for i := 0; i < nReads; i++ {
			off := r.IntN(len(ref) - 50)
			fmt.Fprintf(&sb, ">f%d_r%d\n%s\n", f, i, ref[off:off+50])
		}
		name := filepath.Join(dir, fmt.Sprintf("reads%d.fa", f))
		if err := os.WriteFile(name, []byte(sb.String()), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, name)
	}
	return engine.New(idx, bld.Reference(), engine.DefaultConfig), files
}

func TestRunStreamKeepsInputOrder(t *testing.T) {
	eng, files := setup(t, 37)
	for _, threads := range []int{1, 4} {
		var got []string
		n, err := RunStream(context.Background(), StreamConfig{Threads: threads, BatchSize: 5}, files, eng,
			func(h engine.Hit) (bool, string, error) { return true, h.SourceFile + "/" + h.ReadID, nil },
			func(s string) error { got = append(got, s); return nil })
		if err != nil {
			t.Fatal(err)
		}
		if n != len(got) || n < 74 {
			t.Fatalf("threads=%d n=%d got=%d", threads, n, len(got))
		}
		var want []string
		for f, name := range files {
			for i := 0; i < 37; i++ {
				want = append(want, fmt.Sprintf("%s/f%d_r%d", name, f, i))
			}
		}
		// every read yields at least its full-length seed; collapse repeats
		var seen []string
		for _, s := range got {
			if len(seen) == 0 || seen[len(seen)-1] != s {
				seen = append(seen, s)
			}
		}
		if strings.Join(seen, " ") != strings.Join(want, " ") {
			t.Fatalf("threads=%d order:\n%v", threads, seen)
		}
	}
}

func TestRunStreamStopsOnSendError(t *testing.T) {
	eng, files := setup(t, 20)
	boom := errors.New("boom")
	calls := 0
	n, err := RunStream(context.Background(), StreamConfig{Threads: 2, BatchSize: 3}, files, eng,
		func(h engine.Hit) (bool, int, error) { return true, 0, nil },
		func(int) error {
			calls++
			if calls == 4 {
				return boom
			}
			return nil
		})
	if !errors.Is(err, boom) || n != 3 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestRunStreamHonorsCancel(t *testing.T) {
	eng, files := setup(t, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := RunStream(ctx, StreamConfig{Threads: 2, BatchSize: 3}, files, eng,
		func(h engine.Hit) (bool, int, error) { return true, 0, nil },
		func(int) error { return nil })
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestRunStreamMissingFile(t *testing.T) {
	eng, _ := setup(t, 1)
	_, err := RunStream(context.Background(), StreamConfig{}, []string{filepath.Join(t.TempDir(), "nope.fa")}, eng,
		func(h engine.Hit) (bool, int, error) { return true, 0, nil },
		func(int) error { return nil })
	if err == nil {
		t.Fatal("want error")
	}
}
