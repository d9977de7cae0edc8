package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err means the reader of stdout went away
// (`bwaidx smem ... | head`). Output then stops without an error.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
