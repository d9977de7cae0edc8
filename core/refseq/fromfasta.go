// core/refseq/fromfasta.go
package refseq

import (
	"context"
	"log/slog"

	"bwaidx/core/fasta"
)

// FromFASTA packs every record of the FASTA file at path (gzip, zstd or
// "-" for stdin) into a finalized Builder. Nothing is written to disk.
func FromFASTA(ctx context.Context, path string, forwardOnly bool, logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := NewBuilder()
	err := fasta.StreamPathCtx(ctx, path, func(rec fasta.Record) error {
		n := b.Append(rec.ID, rec.Comment, rec.Seq)
		logger.Debug("packed contig", "name", rec.ID, "len", n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	total := b.Finalize(forwardOnly)
	logger.Info("packed reference",
		"path", path, "contigs", b.ref.NSeqs, "l_pac", b.ref.LPac,
		"holes", len(b.ref.Ambs), "packed", total)
	return b, nil
}
