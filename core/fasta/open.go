// core/fasta/open.go
package fasta

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error { z.d.Close(); return nil }

// openReader opens path ("-" is stdin) and transparently decompresses
// gzip and zstd input, detected by magic number or by file suffix.
func openReader(path string) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer
	)
	if path == "-" {
		src, closer = os.Stdin, io.NopCloser(nil)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closer = fh, fh
	}
	br := bufio.NewReaderSize(src, 1<<16)
	sig, _ := br.Peek(4)

	switch {
	case bytes.HasPrefix(sig, gzipMagic) || strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	case bytes.HasPrefix(sig, zstdMagic) || strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zstdCloser{zr}, closer}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
}
