// internal/app/locate.go
package app

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bwaidx/core/refseq"
	"bwaidx/internal/appcore"
	"bwaidx/internal/cli"
	"bwaidx/internal/output"
	"bwaidx/pkg/api"
)

func newLocateCmd(e *env) *cobra.Command {
	var o cli.LocateOptions
	cmd := &cobra.Command{
		Use:   "locate [flags] <prefix> <pos>...",
		Short: "Resolve doubled-axis positions to contig, offset and strand",
		Example: `  bwaidx locate hg38 0 6199669839`,
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			if err := o.Finish(args); err != nil {
				return err
			}
			idx, err := appcore.LoadIndex(cmd.Context(), o.Prefix, false, e.logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			w := bufio.NewWriter(e.stdout)
			if err := writeLoci(w, idx.Ref, o); err != nil {
				return err
			}
			return w.Flush()
		}),
	}
	o.Register(cmd.Flags())
	return cmd
}

// Locate resolves pos on the doubled axis of ref.
func Locate(ref *refseq.Reference, pos int64) api.LocusV1 {
	l := api.LocusV1{Pos: pos, RID: refseq.OutOfRange, Offset: -1, Strand: "."}
	if pos < 0 || pos >= ref.LPac<<1 {
		return l
	}
	posF, isRev := ref.Depos(pos)
	rid := ref.PosToRID(posF)
	if rid < 0 {
		return l
	}
	a := ref.Anns[rid]
	l.RID, l.Contig, l.Offset, l.Strand = rid, a.Name, posF-a.Offset, "+"
	if isRev {
		l.Strand = "-"
	}
	return l
}

func writeLoci(w *bufio.Writer, ref *refseq.Reference, o cli.LocateOptions) error {
	if o.JSON {
		enc := json.NewEncoder(w)
		for _, p := range o.Positions {
			if err := enc.Encode(Locate(ref, p)); err != nil {
				return err
			}
		}
		return nil
	}
	if !o.NoHeader {
		if _, err := fmt.Fprintln(w, output.LocateHeader); err != nil {
			return err
		}
	}
	for _, p := range o.Positions {
		l := Locate(ref, p)
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\n", l.Pos, l.RID, l.Contig, l.Offset, l.Strand); err != nil {
			return err
		}
	}
	return nil
}
