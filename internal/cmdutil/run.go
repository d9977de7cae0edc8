package cmdutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"bwaidx/core/fasta"
	"bwaidx/core/fmindex"
	"bwaidx/internal/engine"
	"bwaidx/internal/pipeline"
)

// StreamConfig sizes the seeding pipeline.
type StreamConfig struct {
	Threads   int // ParallelFor workers in the seeding step
	BatchSize int // reads per batch
	Metrics   *pipeline.Metrics
}

type batch struct {
	reads  []fasta.Record
	source []string
	hits   [][]engine.Hit
}

// readSource walks several read files in order.
type readSource struct {
	files []string
	i     int
	cur   *fasta.Reader
	c     io.Closer
}

func (s *readSource) next() (fasta.Record, string, error) {
	for {
		if s.cur == nil {
			if s.i == len(s.files) {
				return fasta.Record{}, "", io.EOF
			}
			r, c, err := fasta.Open(s.files[s.i])
			if err != nil {
				return fasta.Record{}, "", err
			}
			s.cur, s.c = r, c
		}
		rec, err := s.cur.Next()
		if errors.Is(err, io.EOF) {
			_ = s.c.Close()
			s.cur, s.c = nil, nil
			s.i++
			continue
		}
		return rec, s.files[s.i], err
	}
}

func (s *readSource) close() {
	if s.c != nil {
		_ = s.c.Close()
	}
}

// RunStream seeds every read of readFiles through a three-step pipeline
// (read a batch, seed it with ParallelFor, emit in input order), applies
// visit, and streams kept results via send. It returns the number of kept
// outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg StreamConfig,
	readFiles []string,
	eng *engine.Engine,
	visit func(engine.Hit) (bool, T, error),
	send func(T) error,
) (int, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	src := &readSource{files: readFiles}
	defer src.close()
	scratch := make([]fmindex.Scratch, cfg.Threads)

	var (
		mu       sync.Mutex
		firstErr error
		total    int
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	read := func() *batch {
		if failed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			fail(err)
			return nil
		}
		b := &batch{}
		for len(b.reads) < cfg.BatchSize {
			rec, file, err := src.next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				fail(err)
				return nil
			}
			b.reads = append(b.reads, rec)
			b.source = append(b.source, file)
		}
		if len(b.reads) == 0 {
			return nil
		}
		return b
	}

	seed := func(b *batch) *batch {
		b.hits = make([][]engine.Hit, len(b.reads))
		pipeline.ParallelFor(cfg.Threads, len(b.reads), func(i, w int) {
			hs := eng.Seed(b.reads[i].ID, b.reads[i].Seq, &scratch[w])
			for j := range hs {
				hs[j].SourceFile = b.source[i]
			}
			b.hits[i] = hs
		})
		return b
	}

	emit := func(b *batch) {
		for _, hs := range b.hits {
			for _, h := range hs {
				if failed() {
					return
				}
				keep, out, err := visit(h)
				if err != nil {
					fail(err)
					return
				}
				if !keep {
					continue
				}
				if err := send(out); err != nil {
					fail(err)
					return
				}
				total++
			}
		}
	}

	// Two pipeline workers: one reads while the other seeds or emits.
	workers := 2
	if cfg.Threads == 1 {
		workers = 1
	}
	pipeline.Run(workers, 3, func(step int, in *batch) *batch {
		switch step {
		case 0:
			return read()
		case 1:
			return seed(in)
		default:
			emit(in)
			return nil
		}
	}, pipeline.WithMetrics(cfg.Metrics))

	return total, firstErr
}
