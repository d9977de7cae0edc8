// internal/app/match.go
package app

import (
	"bufio"
	"errors"

	"github.com/spf13/cobra"

	"bwaidx/internal/appcore"
	"bwaidx/internal/cli"
	"bwaidx/internal/engine"
	"bwaidx/internal/output"
)

func newMatchCmd(e *env) *cobra.Command {
	var o cli.MatchOptions
	cmd := &cobra.Command{
		Use:   "match [flags] <prefix> <seq>...",
		Short: "Count and place exact occurrences of whole query sequences",
		Example: `  bwaidx match ref GATTACAGATTACA
  bwaidx match -o json --max-occ 0 hg38 TTAGGGTTAGGGTTAGGG`,
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			if err := o.Finish(args); err != nil {
				return err
			}
			idx, err := appcore.LoadIndex(cmd.Context(), o.Prefix, true, e.logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			eng := engine.New(idx.FM, idx.Ref, engine.Config{MaxOcc: o.MaxOcc})
			hits := make([]engine.Hit, 0, len(o.Queries))
			found := 0
			for _, q := range o.Queries {
				h := eng.Match(q, []byte(q))
				if h.Count > 0 {
					found++
				}
				hits = append(hits, h)
			}

			w := bufio.NewWriter(e.stdout)
			if o.Output == output.FormatJSON {
				err = output.WriteJSON(w, hits)
			} else {
				err = output.WriteTSV(w, hits, !o.NoHeader)
			}
			if err := errors.Join(err, w.Flush()); err != nil {
				return err
			}
			if found == 0 {
				return &exitError{code: 1}
			}
			return nil
		}),
	}
	o.Register(cmd.Flags())
	return cmd
}
