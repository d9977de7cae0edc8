// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"bwaidx/internal/cli"
	"bwaidx/internal/cmdutil"
	"bwaidx/internal/config"
	"bwaidx/internal/version"
)

// exitError carries a non-zero exit code out of a command.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// env is what every subcommand needs from the root.
type env struct {
	stdout, stderr io.Writer
	common         cli.Common
	logger         *slog.Logger
	ran            bool // a RunE body was entered
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "bwaidx",
		Short: "Build, inspect and query BWA-style FM-index packages",
		Long: `bwaidx builds BWA-compatible reference packages (.pac .ann .amb .bwt .sa),
maps positions on the doubled forward+reverse axis back to contigs, and
seeds reads with super-maximal exact matches.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Err: err}
	})
	cli.RegisterCommon(root.PersistentFlags(), &e.common)

	root.AddCommand(
		newIndexCmd(e),
		newSMEMCmd(e),
		newLocateCmd(e),
		newMatchCmd(e),
		newFetchCmd(e),
		newStatsCmd(e),
		newVerifyCmd(e),
	)
	return root
}

// setup applies the config file to cmd's flags and builds the logger.
func (e *env) setup(cmd *cobra.Command) error {
	if p := config.Path(e.common.ConfigFile); p != "" {
		f, err := config.LoadFile(p)
		if err != nil {
			return &cli.UsageError{Err: err}
		}
		if err := f.Apply(cmd.Flags()); err != nil {
			return &cli.UsageError{Err: err}
		}
	}
	if err := e.common.Validate(); err != nil {
		return err
	}
	lvl, _ := cmdutil.ParseLevel(e.common.LogLevel)
	e.logger = cmdutil.NewLogger(e.stderr, lvl)
	return nil
}

// run marks that the command body started, so later errors are not
// mistaken for usage errors.
func (e *env) run(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e.ran = true
		return fn(cmd, args)
	}
}

// RunContext executes argv and returns the process exit code: 0 ok,
// 2 usage error, 3 runtime error, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	e := &env{stdout: stdout, stderr: stderr, logger: slog.New(slog.DiscardHandler)}
	root := newRootCmd(e)
	root.SetArgs(argv)

	err := root.ExecuteContext(parent)
	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, context.Canceled) || parent.Err() != nil:
		return 130
	case cli.IsUsage(err) || !e.ran:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintln(stderr, "Run 'bwaidx --help' for usage.")
		return 2
	default:
		e.logger.Error(err.Error())
		return 3
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
