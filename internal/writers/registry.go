// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"bwaidx/internal/engine"
)

// SMEMWriterFunc drains in and renders it to out.
type SMEMWriterFunc func(out io.Writer, in <-chan engine.Hit, header bool) error

// SMEMWriters maps an --output format to its writer. Formats register
// themselves in init blocks; last registration wins.
var SMEMWriters = map[string]SMEMWriterFunc{}

// RegisterSMEM installs fn for format.
func RegisterSMEM(format string, fn SMEMWriterFunc) { SMEMWriters[format] = fn }

// Formats lists the registered formats in lexical order.
func Formats() []string {
	out := make([]string, 0, len(SMEMWriters))
	for f := range SMEMWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartSMEMWriter spins up a writer goroutine for format. An unknown
// format is reported on the error channel after in is drained.
func StartSMEMWriter(out io.Writer, format string, header bool, bufSize int) (chan<- engine.Hit, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.Hit, bufSize)
	errCh := make(chan error, 1)

	fn, ok := SMEMWriters[format]
	go func() {
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unknown smem format %q (no writer registered)", format)
			return
		}
		err := fn(out, in, header)
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}
