// internal/app/stats.go
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bwaidx/internal/appcore"
	"bwaidx/internal/cli"
	"bwaidx/internal/jsonlutil"
	"bwaidx/pkg/api"
)

func newStatsCmd(e *env) *cobra.Command {
	var o cli.StatsOptions
	cmd := &cobra.Command{
		Use:   "stats [flags] <prefix>",
		Short: "Summarize an index package",
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			if err := o.Finish(args); err != nil {
				return err
			}
			_, statErr := os.Stat(o.Prefix + ".bwt")
			withFM := statErr == nil
			idx, err := appcore.LoadIndex(cmd.Context(), o.Prefix, withFM, e.logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			s := Stats(idx, o.Contigs)
			w := bufio.NewWriter(e.stdout)
			if o.JSON {
				err = jsonlutil.EncodePretty(w, s)
			} else {
				err = writeStats(w, s)
			}
			return errors.Join(err, w.Flush())
		}),
	}
	o.Register(cmd.Flags())
	return cmd
}

// Stats summarizes idx. Contig rows are included when contigs is set.
func Stats(idx *appcore.Index, contigs bool) api.StatsV1 {
	r := idx.Ref
	s := api.StatsV1{
		Prefix:      idx.Prefix,
		LPac:        r.LPac,
		Contigs:     int(r.NSeqs),
		Holes:       len(r.Ambs),
		Seed:        r.Seed,
		ForwardOnly: idx.FM == nil,
	}
	if fm := idx.FM; fm != nil {
		s.SeqLen, s.Primary, s.SAIntv = fm.SeqLen, fm.Primary, fm.SAIntv
		for c := 0; c < 4; c++ {
			s.BaseCounts[c] = fm.L2[c+1] - fm.L2[c]
		}
	}
	if contigs {
		for _, a := range r.Anns {
			s.ContigList = append(s.ContigList, api.ContigV1{
				Name: a.Name, Anno: a.Anno, Offset: a.Offset, Length: a.Len, NAmbs: a.NAmbs, IsAlt: a.IsAlt,
			})
		}
	}
	return s
}

func writeStats(w io.Writer, s api.StatsV1) error {
	fmt.Fprintf(w, "prefix\t%s\n", s.Prefix)
	fmt.Fprintf(w, "bases\t%s\n", humanize.Comma(s.LPac))
	fmt.Fprintf(w, "contigs\t%d\n", s.Contigs)
	fmt.Fprintf(w, "holes\t%d\n", s.Holes)
	fmt.Fprintf(w, "seed\t%d\n", s.Seed)
	fmt.Fprintf(w, "forward_only\t%t\n", s.ForwardOnly)
	if s.SeqLen > 0 {
		fmt.Fprintf(w, "seq_len\t%s\n", humanize.Comma(int64(s.SeqLen)))
		fmt.Fprintf(w, "primary\t%d\n", s.Primary)
		fmt.Fprintf(w, "sa_intv\t%d\n", s.SAIntv)
		fmt.Fprintf(w, "acgt\t%d\t%d\t%d\t%d\n", s.BaseCounts[0], s.BaseCounts[1], s.BaseCounts[2], s.BaseCounts[3])
	}
	for _, c := range s.ContigList {
		alt := ""
		if c.IsAlt {
			alt = "\talt"
		}
		fmt.Fprintf(w, "contig\t%s\t%d\t%d\t%d%s\n", c.Name, c.Offset, c.Length, c.NAmbs, alt)
	}
	return nil
}
