// Package refseq holds the reference package: per-contig annotations, the
// ambiguous-base ("hole") list, the packed bases, and the coordinate
// arithmetic that maps positions on the doubled forward+reverse axis back
// to contigs.
//
// A Reference is built once (Builder) or restored once (Restore) and is
// read-only afterwards; it is safe for concurrent readers.
package refseq

import (
	"errors"
	"io"
)

// Sentinel results of the position/interval lookups.
const (
	// OutOfRange is returned by PosToRID for positions past the forward strand.
	OutOfRange = -1
	// Ambiguous is returned by IntvToRID when the ends land on different contigs.
	Ambiguous = -1
	// CrossStrand is returned by IntvToRID when the interval bridges the
	// forward/reverse boundary.
	CrossStrand = -2
)

// DefaultSeed seeds the generator that substitutes ambiguous bases.
const DefaultSeed = 11

// MaxAltNameLen bounds contig names read from a .alt file.
const MaxAltNameLen = 1023

var (
	// ErrInconsistent marks side-car files that disagree with each other.
	ErrInconsistent = errors.New("inconsistent reference files")
	// ErrNameTooLong marks .alt names over MaxAltNameLen characters.
	ErrNameTooLong = errors.New("sequence name longer than 1023 characters")
)

// Annotation describes one contig.
type Annotation struct {
	Offset int64 // start on the forward axis
	Len    int32
	NAmbs  int32 // number of ambiguous runs inside the contig
	GI     uint32
	IsAlt  bool
	Name   string
	Anno   string // FASTA header comment, "" when absent
}

// AmbRegion is a run of one repeated non-ACGT symbol.
type AmbRegion struct {
	Offset int64
	Len    int32
	Amb    byte
}

// Reference is the aggregate reference package.
type Reference struct {
	LPac  int64 // forward length, before reverse-complement doubling
	NSeqs int32
	Seed  uint32
	Anns  []Annotation
	Ambs  []AmbRegion

	// Pac is the packed base storage. A restored reference holds the LPac
	// forward bases; a freshly built one may also carry the reverse half.
	Pac    []byte
	PacLen int64

	pacCloser io.Closer
}

// Close releases the packed-base file handle, if any.
func (r *Reference) Close() error {
	if r == nil || r.pacCloser == nil {
		return nil
	}
	c := r.pacCloser
	r.pacCloser = nil
	r.Pac = nil
	return c.Close()
}

