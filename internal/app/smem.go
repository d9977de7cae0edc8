// internal/app/smem.go
package app

import (
	"github.com/spf13/cobra"

	"bwaidx/internal/appcore"
	"bwaidx/internal/cli"
	"bwaidx/internal/engine"
	"bwaidx/internal/visitors"
)

func newSMEMCmd(e *env) *cobra.Command {
	var o cli.SMEMOptions
	cmd := &cobra.Command{
		Use:   "smem [flags] <prefix> <reads.fq[.gz]>...",
		Short: "Report super-maximal exact matches of reads",
		Example: `  bwaidx smem -t 8 hg38 reads_1.fq.gz reads_2.fq.gz
  bwaidx smem -o jsonl --seq --max-occ 10 ref 'lane*.fa'`,
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			if err := o.Finish(args); err != nil {
				return err
			}
			visit := visitors.PassThrough{}.Visit
			if o.LocatedOnly {
				visit = visitors.Located{}.Visit
			}
			code := appcore.Run[engine.Hit](cmd.Context(), e.stdout, e.logger,
				appcore.Options{
					Prefix:          o.Prefix,
					ReadFiles:       o.Reads,
					Engine:          o.EngineConfig(),
					Threads:         o.Threads,
					BatchSize:       o.BatchSize,
					Quiet:           e.common.Quiet,
					NoMatchExitCode: o.NoMatchExitCode,
					MetricsFile:     o.MetricsFile,
				},
				visit,
				appcore.NewSMEMWriterFactory(o.Output, !o.NoHeader, o.Seq),
			)
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		}),
	}
	o.Register(cmd.Flags())
	return cmd
}
