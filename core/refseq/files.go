// core/refseq/files.go
package refseq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FormatError reports a malformed side-car file, naming the file, the
// 1-based line, and the field that failed.
type FormatError struct {
	File  string
	Line  int
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: bad %s: %v", e.File, e.Line, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Dump writes prefix.ann and prefix.amb.
func (r *Reference) Dump(prefix string) error {
	if err := writeText(prefix+".ann", r.writeAnn); err != nil {
		return err
	}
	return writeText(prefix+".amb", r.writeAmb)
}

func writeText(name string, fill func(w *bufio.Writer)) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	fill(bw)
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return fh.Close()
}

func (r *Reference) writeAnn(w *bufio.Writer) {
	fmt.Fprintf(w, "%d %d %d\n", r.LPac, r.NSeqs, r.Seed)
	for _, a := range r.Anns {
		anno := a.Anno
		if anno == "" {
			anno = "(null)"
		}
		fmt.Fprintf(w, "%d %s %s\n", a.GI, a.Name, anno)
		fmt.Fprintf(w, "%d %d %d\n", a.Offset, a.Len, a.NAmbs)
	}
}

func (r *Reference) writeAmb(w *bufio.Writer) {
	fmt.Fprintf(w, "%d %d %d\n", r.LPac, r.NSeqs, len(r.Ambs))
	for _, h := range r.Ambs {
		fmt.Fprintf(w, "%d %d %c\n", h.Offset, h.Len, h.Amb)
	}
}

// Restore loads prefix.ann, prefix.amb, prefix.pac and, when present,
// prefix.alt.
func Restore(prefix string) (*Reference, error) {
	r, err := RestoreCore(prefix+".ann", prefix+".amb", prefix+".pac")
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(prefix + ".alt")
	switch {
	case errors.Is(err, os.ErrNotExist):
		return r, nil
	case err != nil:
		_ = r.Close()
		return nil, err
	}
	defer fh.Close()
	if _, err := r.MarkAlt(fh); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("%s.alt: %w", prefix, err)
	}
	return r, nil
}

// RestoreCore loads the three mandatory files of a reference package.
func RestoreCore(annName, ambName, pacName string) (*Reference, error) {
	r := &Reference{}
	if err := readFile(annName, r.readAnn); err != nil {
		return nil, err
	}
	if err := readFile(ambName, r.readAmb); err != nil {
		return nil, err
	}
	if err := r.validate(annName, ambName); err != nil {
		return nil, err
	}
	pf, err := openPac(pacName)
	if err != nil {
		return nil, err
	}
	if pf.n != r.LPac {
		_ = pf.Close()
		return nil, &FormatError{File: pacName, Field: "base count",
			Err: fmt.Errorf("%w: %d bases for l_pac %d", ErrInconsistent, pf.n, r.LPac)}
	}
	r.Pac, r.PacLen, r.pacCloser = pf.body, pf.n, pf
	return r, nil
}

func readFile(name string, parse func(*lineReader) error) error {
	fh, err := os.Open(name)
	if err != nil {
		return err
	}
	defer fh.Close()
	return parse(newLineReader(name, fh))
}

// lineReader tracks file/line context for FormatErrors.
type lineReader struct {
	name string
	sc   *bufio.Scanner
	line int
}

func newLineReader(name string, rd io.Reader) *lineReader {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	return &lineReader{name: name, sc: sc}
}

func (l *lineReader) next(field string) (string, error) {
	if !l.sc.Scan() {
		err := l.sc.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return "", l.fail(field, err)
	}
	l.line++
	return strings.TrimRight(l.sc.Text(), "\r"), nil
}

func (l *lineReader) fail(field string, err error) error {
	return &FormatError{File: l.name, Line: l.line, Field: field, Err: err}
}

// fields reads one line and requires exactly len(names) fields.
func (l *lineReader) fields(names ...string) ([]string, error) {
	s, err := l.next(names[0])
	if err != nil {
		return nil, err
	}
	f := strings.Fields(s)
	if len(f) != len(names) {
		return nil, l.fail(strings.Join(names, "/"), fmt.Errorf("want %d fields, got %d", len(names), len(f)))
	}
	return f, nil
}

func (l *lineReader) int64(field, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, l.fail(field, err)
	}
	return v, nil
}

func (l *lineReader) int32(field, s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, l.fail(field, err)
	}
	return int32(v), nil
}

func (l *lineReader) uint32(field, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, l.fail(field, err)
	}
	return uint32(v), nil
}

func (r *Reference) readAnn(l *lineReader) error {
	f, err := l.fields("l_pac", "n_seqs", "seed")
	if err != nil {
		return err
	}
	if r.LPac, err = l.int64("l_pac", f[0]); err != nil {
		return err
	}
	if r.NSeqs, err = l.int32("n_seqs", f[1]); err != nil {
		return err
	}
	if r.Seed, err = l.uint32("seed", f[2]); err != nil {
		return err
	}
	if r.NSeqs < 0 {
		return l.fail("n_seqs", fmt.Errorf("negative count %d", r.NSeqs))
	}
	r.Anns = make([]Annotation, r.NSeqs)
	for i := range r.Anns {
		a := &r.Anns[i]
		s, err := l.next("name")
		if err != nil {
			return err
		}
		gi, rest, _ := strings.Cut(strings.TrimLeft(s, " \t"), " ")
		if a.GI, err = l.uint32("gi", gi); err != nil {
			return err
		}
		name, anno, _ := strings.Cut(strings.TrimLeft(rest, " \t"), " ")
		if name == "" {
			return l.fail("name", errors.New("missing sequence name"))
		}
		a.Name = name
		if anno != "(null)" {
			a.Anno = anno
		}
		f, err := l.fields("offset", "len", "n_ambs")
		if err != nil {
			return err
		}
		if a.Offset, err = l.int64("offset", f[0]); err != nil {
			return err
		}
		if a.Len, err = l.int32("len", f[1]); err != nil {
			return err
		}
		if a.NAmbs, err = l.int32("n_ambs", f[2]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reference) readAmb(l *lineReader) error {
	f, err := l.fields("l_pac", "n_seqs", "n_holes")
	if err != nil {
		return err
	}
	lPac, err := l.int64("l_pac", f[0])
	if err != nil {
		return err
	}
	nSeqs, err := l.int32("n_seqs", f[1])
	if err != nil {
		return err
	}
	nHoles, err := l.int32("n_holes", f[2])
	if err != nil {
		return err
	}
	if lPac != r.LPac || nSeqs != r.NSeqs {
		return l.fail("header", fmt.Errorf("%w: .amb says %d/%d, .ann says %d/%d",
			ErrInconsistent, lPac, nSeqs, r.LPac, r.NSeqs))
	}
	if nHoles < 0 {
		return l.fail("n_holes", fmt.Errorf("negative count %d", nHoles))
	}
	r.Ambs = make([]AmbRegion, nHoles)
	for i := range r.Ambs {
		h := &r.Ambs[i]
		f, err := l.fields("offset", "len", "amb")
		if err != nil {
			return err
		}
		if h.Offset, err = l.int64("offset", f[0]); err != nil {
			return err
		}
		if h.Len, err = l.int32("len", f[1]); err != nil {
			return err
		}
		h.Amb = f[2][0]
	}
	return nil
}

// validate checks that contigs tile [0, LPac) in order and that holes are
// sorted and disjoint.
func (r *Reference) validate(annName, ambName string) error {
	var next int64
	for i, a := range r.Anns {
		if a.Offset != next || a.Len < 0 {
			return &FormatError{File: annName, Line: 2 + 2*i, Field: "offset",
				Err: fmt.Errorf("%w: contig %s at %d, expected %d", ErrInconsistent, a.Name, a.Offset, next)}
		}
		next += int64(a.Len)
	}
	if next != r.LPac {
		return &FormatError{File: annName, Line: 1, Field: "l_pac",
			Err: fmt.Errorf("%w: contigs sum to %d, header says %d", ErrInconsistent, next, r.LPac)}
	}
	var end int64
	for i, h := range r.Ambs {
		if h.Offset < end || h.Len <= 0 {
			return &FormatError{File: ambName, Line: 2 + i, Field: "offset",
				Err: fmt.Errorf("%w: hole at %d overlaps previous end %d", ErrInconsistent, h.Offset, end)}
		}
		end = h.Offset + int64(h.Len)
	}
	return nil
}
