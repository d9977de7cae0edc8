// internal/appcore/load.go
package appcore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"bwaidx/core/fmindex"
	"bwaidx/core/refseq"
)

// Index is a restored package: the reference side-cars plus, when
// loaded, the FM-index.
type Index struct {
	Prefix string
	Ref    *refseq.Reference
	FM     *fmindex.Index // nil unless requested
}

// Close releases the packed-base mapping.
func (x *Index) Close() error { return x.Ref.Close() }

// LoadIndex restores prefix. With withFM the .bwt/.sa pair is read in
// parallel with the reference files and checked against them.
func LoadIndex(ctx context.Context, prefix string, withFM bool, logger *slog.Logger) (*Index, error) {
	start := time.Now()
	out := &Index{Prefix: prefix}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := refseq.Restore(prefix)
		if err != nil {
			return err
		}
		out.Ref = r
		return nil
	})
	if withFM {
		g.Go(func() error {
			x, err := fmindex.Restore(prefix)
			if err != nil {
				return err
			}
			out.FM = x
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if out.Ref != nil {
			_ = out.Ref.Close()
		}
		return nil, err
	}
	if out.FM != nil && out.FM.SeqLen != uint64(out.Ref.LPac)<<1 {
		_ = out.Ref.Close()
		return nil, fmt.Errorf("%s: bwt covers %d bases, reference has %d: %w",
			prefix, out.FM.SeqLen, out.Ref.LPac<<1, refseq.ErrInconsistent)
	}
	logger.Info("index loaded",
		"prefix", prefix,
		"contigs", out.Ref.NSeqs,
		"bases", humanize.Comma(out.Ref.LPac),
		"pac", humanize.IBytes(uint64(len(out.Ref.Pac))),
		"fm", withFM,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return out, nil
}
