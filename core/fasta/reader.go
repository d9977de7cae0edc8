// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Record represents one parsed FASTA or FASTQ entry.
type Record struct {
	ID      string
	Comment string // header text after the first whitespace, "" if none
	Seq     []byte
	Qual    []byte // nil for FASTA
}

// Reader pulls records one at a time from FASTA or FASTQ text. The
// format is decided per record by its header marker ('>' or '@').
type Reader struct {
	sc      *bufio.Scanner
	pending []byte
	hasPend bool
	line    int
}

// NewReader wraps r. Lines may be up to 64 MiB long.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)
	return &Reader{sc: sc}
}

func (r *Reader) next() ([]byte, bool) {
	if r.hasPend {
		r.hasPend = false
		return r.pending, true
	}
	for r.sc.Scan() {
		r.line++
		line := bytes.TrimRight(r.sc.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		return line, true
	}
	return nil, false
}

func (r *Reader) unread(line []byte) {
	r.pending = append(r.pending[:0], line...)
	r.hasPend = true
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	hdr, ok := r.next()
	if !ok {
		if err := r.sc.Err(); err != nil {
			return Record{}, fmt.Errorf("fasta scan: %w", err)
		}
		return Record{}, io.EOF
	}
	var rec Record
	switch hdr[0] {
	case '>':
		rec.ID, rec.Comment = parseHeader(hdr[1:])
		for {
			line, ok := r.next()
			if !ok {
				break
			}
			if line[0] == '>' || line[0] == '@' {
				r.unread(line)
				break
			}
			rec.Seq = append(rec.Seq, bytes.TrimSpace(line)...)
		}
	case '@':
		rec.ID, rec.Comment = parseHeader(hdr[1:])
		for {
			line, ok := r.next()
			if !ok {
				return Record{}, fmt.Errorf("fastq line %d: record %q has no '+' separator", r.line, rec.ID)
			}
			if line[0] == '+' {
				break
			}
			rec.Seq = append(rec.Seq, bytes.TrimSpace(line)...)
		}
		for len(rec.Qual) < len(rec.Seq) {
			line, ok := r.next()
			if !ok {
				return Record{}, fmt.Errorf("fastq line %d: record %q quality truncated", r.line, rec.ID)
			}
			rec.Qual = append(rec.Qual, bytes.TrimSpace(line)...)
		}
		if len(rec.Qual) != len(rec.Seq) {
			return Record{}, fmt.Errorf("fastq line %d: record %q has %d bases but %d qualities",
				r.line, rec.ID, len(rec.Seq), len(rec.Qual))
		}
	default:
		return Record{}, fmt.Errorf("fasta line %d: expected '>' or '@' header, got %q", r.line, hdr[0])
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("fasta scan: %w", err)
	}
	return rec, nil
}

func parseHeader(hdr []byte) (id, comment string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
