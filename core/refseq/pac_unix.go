//go:build unix

package refseq

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"bwaidx/core/packseq"
)

// pacFile is a read-only mapping of a .pac file.
type pacFile struct {
	f    *os.File
	data []byte
	body []byte
	n    int64
}

func openPac(name string) (*pacFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fi.Size() < 2 {
		_ = f.Close()
		return nil, &FormatError{File: name, Field: "size", Err: packseq.ErrPacTrailer}
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap %s: %w", name, err)
	}
	body, n, err := packseq.ParsePac(data)
	if err != nil {
		_ = unix.Munmap(data)
		_ = f.Close()
		return nil, &FormatError{File: name, Field: "trailer", Err: err}
	}
	return &pacFile{f: f, data: data, body: body, n: n}, nil
}

func (p *pacFile) Close() error {
	err := unix.Munmap(p.data)
	if cerr := p.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
