// core/refseq/builder.go
package refseq

import (
	"bufio"
	"fmt"
	"os"

	"bwaidx/core/packseq"
)

// Builder accumulates contigs into a packed reference.
type Builder struct {
	ref      Reference
	pac      *packseq.Array
	rng      *rand48
	finished bool
}

// NewBuilder starts an empty reference using the default seed.
func NewBuilder() *Builder {
	return NewBuilderSeed(DefaultSeed)
}

// NewBuilderSeed starts an empty reference with an explicit substitution seed.
func NewBuilderSeed(seed uint32) *Builder {
	return &Builder{
		ref: Reference{Seed: seed},
		pac: packseq.NewArray(0),
		rng: newRand48(seed),
	}
}

// Append packs one contig and returns the number of bases added.
// Non-ACGT symbols are substituted by a seeded pseudo-random base and
// recorded as ambiguous runs; a run only extends over identical symbols.
func (b *Builder) Append(name, comment string, seq []byte) int64 {
	if b.finished {
		panic("refseq: Append after Finalize")
	}
	r := &b.ref
	ann := Annotation{
		Offset: r.LPac,
		Len:    int32(len(seq)),
		Name:   name,
		Anno:   comment,
	}
	last := -1
	for i, s := range seq {
		c := packseq.NT4[s]
		if c >= packseq.CodeAmbig {
			if last == int(s) {
				r.Ambs[len(r.Ambs)-1].Len++
			} else {
				r.Ambs = append(r.Ambs, AmbRegion{Offset: ann.Offset + int64(i), Len: 1, Amb: s})
				ann.NAmbs++
			}
			c = byte(b.rng.Next() & 3)
		}
		last = int(s)
		b.pac.Append(c)
		r.LPac++
	}
	r.Anns = append(r.Anns, ann)
	r.NSeqs++
	return int64(len(seq))
}

// Finalize closes the builder. Unless forwardOnly is set, the reverse
// complement is appended to the packed store. It returns the number of
// bases in the packed store (2*LPac with the reverse strand, else LPac).
func (b *Builder) Finalize(forwardOnly bool) int64 {
	if !b.finished {
		if !forwardOnly {
			b.pac.AppendReverseComplement()
		}
		b.finished = true
		b.ref.Pac = b.pac.Bytes()
		b.ref.PacLen = b.pac.Len()
	}
	return b.ref.PacLen
}

// Reference returns the finalized in-memory reference.
func (b *Builder) Reference() *Reference {
	if !b.finished {
		panic("refseq: Reference before Finalize")
	}
	return &b.ref
}

// Packed exposes the packed store for index construction.
func (b *Builder) Packed() *packseq.Array { return b.pac }

// Write persists prefix.pac, prefix.ann and prefix.amb. The .pac holds the
// forward strand only; the reverse half stays in memory for index
// construction.
func (b *Builder) Write(prefix string) error {
	if !b.finished {
		return fmt.Errorf("refseq: write %s before Finalize", prefix)
	}
	if err := writePac(prefix+".pac", b.pac.Bytes(), b.ref.LPac); err != nil {
		return err
	}
	return b.ref.Dump(prefix)
}

func writePac(name string, pac []byte, n int64) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(fh, 1<<20)
	if err := packseq.WritePac(bw, pac, n); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return fh.Close()
}
