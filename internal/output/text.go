// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"bwaidx/internal/engine"
)

// WriteTSV prints one line per hit, after an optional header.
func WriteTSV(w io.Writer, list []engine.Hit, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, h := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(h)); err != nil {
			return err
		}
	}
	return nil
}

// StreamTSV writes hits as they arrive on in until it is closed.
func StreamTSV(w io.Writer, in <-chan engine.Hit, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for h := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(h)); err != nil {
			return err
		}
	}
	return nil
}
