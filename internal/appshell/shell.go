// Package appshell is the process boundary shared by the mains: signal
// handling, argv defaults and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is an application entry point returning an exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with a context canceled by SIGINT/SIGTERM and exits with
// its code. A second signal kills the process immediately. With no
// arguments the help text is shown.
func Main(run RunFunc) {
	os.Exit(Exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without the os.Exit.
func Exec(run RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
