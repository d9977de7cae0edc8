// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"bwaidx/internal/cmdutil"
	"bwaidx/internal/engine"
	"bwaidx/internal/pipeline"
	"bwaidx/internal/runutil"
	"bwaidx/internal/writers"
)

// Options configures one seeding run.
type Options struct {
	Prefix    string
	ReadFiles []string
	Engine    engine.Config

	Threads   int
	BatchSize int

	Quiet           bool
	NoMatchExitCode int
	MetricsFile     string
}

type VisitorFunc[T any] func(engine.Hit) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	NeedSeq() bool
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// stopOnError cancels the run on the first failed write to the real
// output, so seeding does not continue into a full disk or closed pipe.
type stopOnError struct {
	w    io.Writer
	stop context.CancelCauseFunc
}

func (s *stopOnError) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		s.stop(err)
	}
	return n, err
}

// Run loads the index, seeds every read and streams the visited hits to
// the writer. It returns the process exit code.
func Run[T any](
	parent context.Context,
	stdout io.Writer,
	logger *slog.Logger,
	o Options,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	thr := runutil.EffectiveThreads(o.Threads)
	batch, warns := runutil.ValidateBatching(o.BatchSize, thr)
	for _, w := range warns {
		cmdutil.Warnf(logger, o.Quiet, "%s", w)
	}

	idx, err := LoadIndex(parent, o.Prefix, true, logger)
	if err != nil {
		logger.Error("load index", "err", err)
		return 3
	}
	defer idx.Close()

	reg := prometheus.NewRegistry()
	metrics, err := pipeline.NewMetrics(reg, "bwaidx")
	if err != nil {
		logger.Error("metrics", "err", err)
		return 3
	}

	cfg := o.Engine
	cfg.NeedSeq = cfg.NeedSeq || wf.NeedSeq()
	eng := engine.New(idx.FM, idx.Ref, cfg)

	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)

	outw := bufio.NewWriter(&stopOnError{w: stdout, stop: cancel})
	inCh, writeErr := wf.Start(outw, runutil.WriterBuffer(thr))

	total, perr := cmdutil.RunStream[T](
		ctx,
		cmdutil.StreamConfig{Threads: thr, BatchSize: batch, Metrics: metrics},
		o.ReadFiles,
		eng,
		visit,
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if o.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(o.MetricsFile, reg); err != nil {
			cmdutil.Warnf(logger, o.Quiet, "metrics file: %v", err)
		}
	}

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		logger.Error("write", "err", werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		logger.Error("flush", "err", e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		logger.Error("seed", "err", perr)
		return 3
	}
	logger.Debug("seeding done", "records", total, "files", len(o.ReadFiles))
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}
