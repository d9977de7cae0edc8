// internal/app/verify.go
package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"bwaidx/internal/cli"
	"bwaidx/internal/manifest"
)

func newVerifyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <prefix>",
		Short: "Check the package files against <prefix>.manifest",
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return cli.Usagef("verify takes <prefix>")
			}
			probs, err := manifest.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, p := range probs {
				fmt.Fprintln(e.stdout, p)
			}
			if len(probs) > 0 {
				e.logger.Warn("package changed since indexing", "prefix", args[0], "problems", len(probs))
				return &exitError{code: 1}
			}
			e.logger.Info("package intact", "prefix", args[0])
			return nil
		}),
	}
}
