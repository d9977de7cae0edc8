// core/fmindex/io.go
package fmindex

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// FormatError reports a malformed or mismatched index file.
type FormatError struct {
	File  string
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: bad %s: %v", e.File, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

var le = binary.LittleEndian

// DumpBWT writes the .bwt file: primary, L2[1..4], then the interleaved words.
func (x *Index) DumpBWT(name string) error {
	return writeFile(name, func(w *bufio.Writer) error {
		head := append([]uint64{x.Primary}, x.L2[1:]...)
		if err := binary.Write(w, le, head); err != nil {
			return err
		}
		return binary.Write(w, le, x.BWT)
	})
}

// DumpSA writes the .sa file: primary, L2[1..4], interval, length, then
// every sample except the first.
func (x *Index) DumpSA(name string) error {
	return writeFile(name, func(w *bufio.Writer) error {
		head := append([]uint64{x.Primary}, x.L2[1:]...)
		head = append(head, x.SAIntv, x.SeqLen)
		if err := binary.Write(w, le, head); err != nil {
			return err
		}
		return binary.Write(w, le, x.Samples[1:])
	})
}

// Dump writes prefix.bwt and prefix.sa.
func (x *Index) Dump(prefix string) error {
	if err := x.DumpBWT(prefix + ".bwt"); err != nil {
		return err
	}
	return x.DumpSA(prefix + ".sa")
}

func writeFile(name string, fill func(*bufio.Writer) error) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(fh, 1<<20)
	if err := fill(w); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := w.Flush(); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return fh.Close()
}

// RestoreBWT loads a .bwt file. The suffix array is left empty.
func RestoreBWT(name string) (*Index, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if len(data) < 40 || (len(data)-40)%4 != 0 {
		return nil, &FormatError{File: name, Field: "size", Err: fmt.Errorf("%d bytes", len(data))}
	}
	x := &Index{Primary: le.Uint64(data)}
	for c := 1; c <= 4; c++ {
		x.L2[c] = le.Uint64(data[c*8:])
	}
	x.SeqLen = x.L2[4]
	for c := 1; c <= 4; c++ {
		if x.L2[c] < x.L2[c-1] {
			return nil, &FormatError{File: name, Field: "L2", Err: fmt.Errorf("counts not monotone: %v", x.L2)}
		}
	}
	if x.Primary > x.SeqLen {
		return nil, &FormatError{File: name, Field: "primary",
			Err: fmt.Errorf("%d beyond sequence length %d", x.Primary, x.SeqLen)}
	}
	body := data[40:]
	if want := bwtWords(x.SeqLen); uint64(len(body)/4) != want {
		return nil, &FormatError{File: name, Field: "size",
			Err: fmt.Errorf("%d words for %d symbols, want %d", len(body)/4, x.SeqLen, want)}
	}
	x.BWT = make([]uint32, len(body)/4)
	for i := range x.BWT {
		x.BWT[i] = le.Uint32(body[i*4:])
	}
	x.genCntTable()
	return x, nil
}

// RestoreSA loads a .sa file into x, rejecting one built from another BWT.
func (x *Index) RestoreSA(name string) error {
	fh, err := os.Open(name)
	if err != nil {
		return err
	}
	defer fh.Close()
	r := bufio.NewReaderSize(fh, 1<<20)
	var head [7]uint64
	if err := binary.Read(r, le, head[:]); err != nil {
		return &FormatError{File: name, Field: "header", Err: err}
	}
	if head[0] != x.Primary {
		return &FormatError{File: name, Field: "primary",
			Err: fmt.Errorf("%w: primary %d, .bwt says %d", ErrInconsistent, head[0], x.Primary)}
	}
	for c := 1; c <= 4; c++ {
		if head[c] != x.L2[c] {
			return &FormatError{File: name, Field: "L2",
				Err: fmt.Errorf("%w: L2[%d]=%d, .bwt says %d", ErrInconsistent, c, head[c], x.L2[c])}
		}
	}
	intv, seqLen := head[5], head[6]
	if intv == 0 || intv&(intv-1) != 0 {
		return &FormatError{File: name, Field: "sa_intv", Err: fmt.Errorf("%d: %w", intv, ErrBadInterval)}
	}
	if seqLen != x.SeqLen {
		return &FormatError{File: name, Field: "seq_len",
			Err: fmt.Errorf("%w: %d, .bwt says %d", ErrInconsistent, seqLen, x.SeqLen)}
	}
	nSA := (seqLen + intv) / intv
	sa := make([]uint64, nSA)
	sa[0] = ^uint64(0)
	if err := binary.Read(r, le, sa[1:]); err != nil {
		return &FormatError{File: name, Field: "samples", Err: fmt.Errorf("%w: want %d", err, nSA-1)}
	}
	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		return &FormatError{File: name, Field: "samples",
			Err: fmt.Errorf("%w: trailing data after %d samples", ErrInconsistent, nSA-1)}
	}
	x.SAIntv, x.Samples = intv, sa
	return nil
}

// Restore loads prefix.bwt and prefix.sa.
func Restore(prefix string) (*Index, error) {
	x, err := RestoreBWT(prefix + ".bwt")
	if err != nil {
		return nil, err
	}
	if err := x.RestoreSA(prefix + ".sa"); err != nil {
		return nil, err
	}
	return x, nil
}
