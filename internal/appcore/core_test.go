package appcore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"bwaidx/core/fmindex"
	"bwaidx/core/refseq"
	"bwaidx/internal/engine"
)

// writePackage indexes a random 3 kb contig and writes nReads 60 bp reads.
func writePackage(t *testing.T, nReads int) (prefix, reads string) {
	t.Helper()
	r := rand.New(rand.NewPCG(13, 17))
	ref := make([]byte, 3000)
	for i := range ref {
		ref[i] = "ACGT"[r.IntN(4)]
	}
	b := refseq.NewBuilder()
	b.Append("chr", "", ref)
	b.Finalize(false)
	dir := t.TempDir()
	prefix = filepath.Join(dir, "ref")
	if err := b.Write(prefix); err != nil {
		t.Fatal(err)
	}
	fm, err := fmindex.Build(b.Packed().Codes(), 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := fm.Dump(prefix); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for i := 0; i < nReads; i++ {
		off := r.IntN(len(ref) - 60)
		fmt.Fprintf(&sb, ">r%d\n%s\n", i, ref[off:off+60])
	}
	reads = filepath.Join(dir, "reads.fa")
	if err := os.WriteFile(reads, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return prefix, reads
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestRunStopsSeedingOnWriteError(t *testing.T) {
	const nReads = 5000
	prefix, reads := writePackage(t, nReads)
	var visited atomic.Int64
	visit := func(h engine.Hit) (bool, engine.Hit, error) {
		visited.Add(1)
		return true, h, nil
	}
	code := Run[engine.Hit](context.Background(), failingWriter{errors.New("no space left on device")},
		slog.New(slog.DiscardHandler),
		Options{
			Prefix: prefix, ReadFiles: []string{reads},
			Engine: engine.DefaultConfig, Threads: 2, BatchSize: 10, NoMatchExitCode: 1,
		},
		visit, NewSMEMWriterFactory("tsv", true, false))
	if code != 3 {
		t.Fatalf("exit %d, want 3", code)
	}
	if n := visited.Load(); n >= nReads {
		t.Fatalf("all %d reads were seeded after the output failed", n)
	}
}

func TestRunReportsNoMatch(t *testing.T) {
	prefix, reads := writePackage(t, 20)
	cfg := engine.DefaultConfig
	cfg.MinSeedLen = 100
	var out strings.Builder
	code := Run[engine.Hit](context.Background(), &out, slog.New(slog.DiscardHandler),
		Options{Prefix: prefix, ReadFiles: []string{reads}, Engine: cfg, Threads: 1, BatchSize: 4, NoMatchExitCode: 7},
		func(h engine.Hit) (bool, engine.Hit, error) { return true, h, nil },
		NewSMEMWriterFactory("tsv", true, false))
	if code != 7 {
		t.Fatalf("exit %d, want 7", code)
	}
}
