// core/fasta/stream.go
package fasta

import (
	"context"
	"errors"
	"io"
)

// Open returns a record reader over path (gzip/zstd/stdin aware) and the
// closer that releases the underlying file.
func Open(path string) (*Reader, io.Closer, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReader(rc), rc, nil
}

// StreamPathCtx opens path and calls emit for every record in order.
// Cancellation via ctx is honored between records. Return a non-nil
// error from emit to stop early.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	r, c, err := Open(path)
	if err != nil {
		return err
	}
	defer c.Close()
	return StreamCtx(ctx, r, emit)
}

// StreamCtx drains r into emit, honoring ctx between records.
func StreamCtx(ctx context.Context, r *Reader, emit func(Record) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
}
