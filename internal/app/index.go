// internal/app/index.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bwaidx/core/fmindex"
	"bwaidx/core/refseq"
	"bwaidx/internal/cli"
	"bwaidx/internal/manifest"
	"bwaidx/internal/version"
)

func newIndexCmd(e *env) *cobra.Command {
	var o cli.IndexOptions
	cmd := &cobra.Command{
		Use:   "index [flags] <ref.fa[.gz|.zst]> [prefix]",
		Short: "Pack a FASTA reference and build its FM-index",
		Example: `  bwaidx index hg38.fa.gz hg38
  bwaidx index --forward-only --no-manifest ref.fa`,
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			if err := o.Finish(args); err != nil {
				return err
			}
			return runIndex(cmd.Context(), e, o)
		}),
	}
	o.Register(cmd.Flags())
	return cmd
}

func runIndex(ctx context.Context, e *env, o cli.IndexOptions) error {
	start := time.Now()
	b, err := refseq.FromFASTA(ctx, o.Ref, o.ForwardOnly, e.logger)
	if err != nil {
		return err
	}
	ref := b.Reference()
	if ref.NSeqs == 0 {
		return fmt.Errorf("%s: no sequences", o.Ref)
	}
	if err := b.Write(o.Prefix); err != nil {
		return err
	}

	if !o.ForwardOnly {
		t := time.Now()
		fm, err := fmindex.Build(b.Packed().Codes(), o.SAInterval)
		if err != nil {
			return err
		}
		if err := fm.Dump(o.Prefix); err != nil {
			return err
		}
		e.logger.Info("fm-index written",
			"bwt", humanize.IBytes(uint64(len(fm.BWT))*4),
			"sa_samples", humanize.Comma(int64(len(fm.Samples))),
			"elapsed", time.Since(t).Round(time.Millisecond))
	}

	if o.Alt != "" {
		n, err := installAlt(ref, o.Alt, o.Prefix+".alt")
		if err != nil {
			return err
		}
		e.logger.Info("alt contigs", "listed", o.Alt, "matched", n)
	}

	if !o.NoManifest {
		m, err := manifest.Build(ctx, o.Prefix, manifest.Manifest{
			Tool:        "bwaidx " + version.Version,
			LPac:        ref.LPac,
			Contigs:     ref.NSeqs,
			ForwardOnly: o.ForwardOnly,
			SAIntv:      o.SAInterval,
		})
		if err != nil {
			return err
		}
		if err := manifest.Write(o.Prefix, m); err != nil {
			return err
		}
	}
	e.logger.Info("index complete", "prefix", o.Prefix, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// installAlt checks src against ref and copies it to dst. It returns the
// number of contigs src names.
func installAlt(ref *refseq.Reference, src, dst string) (int, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	n, err := ref.MarkAlt(in)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", src, err)
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return 0, err
	}
	return n, out.Close()
}
