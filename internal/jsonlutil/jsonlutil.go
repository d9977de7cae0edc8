// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

const bufBytes = 64 << 10

var writers = sync.Pool{
	New: func() any { return bufio.NewWriterSize(io.Discard, bufBytes) },
}

// Start runs an encoder goroutine that writes one JSON document per value
// received on the returned channel. encode converts and encodes a value;
// isBroken, when set, marks errors (closed pipes) that should not be
// reported.
//
// The goroutine keeps draining after a failed encode, so senders never
// block. The first error arrives on the error channel once the input is
// closed.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	in := make(chan T, max(bufSize, 64))
	done := make(chan error, 1)

	go func() {
		bw := writers.Get().(*bufio.Writer)
		bw.Reset(out)
		enc := json.NewEncoder(bw)

		var first error
		for v := range in {
			if first == nil {
				first = encode(enc, v)
			}
		}
		if first == nil {
			first = bw.Flush()
		}
		bw.Reset(io.Discard)
		writers.Put(bw)

		if first != nil && isBroken != nil && isBroken(first) {
			first = nil
		}
		done <- first
	}()
	return in, done
}

// EncodePretty writes v to w as two-space indented JSON.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
