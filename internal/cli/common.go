// internal/cli/common.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"bwaidx/internal/cmdutil"
)

// UsageError marks a bad invocation; the app exits 2 and prints usage.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError.
func Usagef(format string, a ...any) error {
	return &UsageError{Err: fmt.Errorf(format, a...)}
}

// IsUsage reports whether err stems from a bad invocation.
func IsUsage(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}

// Common holds flags shared by every subcommand.
type Common struct {
	ConfigFile string
	LogLevel   string
	Quiet      bool
}

// RegisterCommon wires the shared flags onto fs (the root's persistent set).
func RegisterCommon(fs *pflag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigFile, "config", "", "YAML defaults file (or $BWAIDX_CONFIG)")
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level: debug | info | warn | error")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "suppress non-essential warnings")
}

// Validate checks the shared flags.
func (c *Common) Validate() error {
	if _, err := cmdutil.ParseLevel(c.LogLevel); err != nil {
		return &UsageError{Err: err}
	}
	return nil
}
