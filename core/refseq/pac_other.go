//go:build !unix

package refseq

import (
	"os"

	"bwaidx/core/packseq"
)

// pacFile holds a .pac file read into memory on platforms without mmap.
type pacFile struct {
	body []byte
	n    int64
}

func openPac(name string) (*pacFile, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	body, n, err := packseq.ParsePac(data)
	if err != nil {
		return nil, &FormatError{File: name, Field: "trailer", Err: err}
	}
	return &pacFile{body: body, n: n}, nil
}

func (p *pacFile) Close() error { return nil }
