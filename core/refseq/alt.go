// core/refseq/alt.go
package refseq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// MarkAlt reads a .alt listing and flags every named contig as alternate.
// Only the first field of each line (up to a tab) is a name; lines that
// start with '@' are header lines and ignored. It returns the number of
// contigs flagged.
func (r *Reference) MarkAlt(rd io.Reader) (int, error) {
	byName := make(map[string]int, len(r.Anns))
	for i, a := range r.Anns {
		byName[a.Name] = i
	}
	br := bufio.NewReader(rd)
	var (
		name    []byte
		skip    bool // rest of the line after the first field
		flagged int
		line    = 1
	)
	mark := func() {
		if len(name) > 0 && name[0] != '@' {
			if i, ok := byName[string(name)]; ok && !r.Anns[i].IsAlt {
				r.Anns[i].IsAlt = true
				flagged++
			}
		}
		name = name[:0]
	}
	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			if !skip {
				mark()
			}
			return flagged, nil
		}
		if err != nil {
			return flagged, err
		}
		switch {
		case c == '\n':
			if !skip {
				mark()
			}
			skip = false
			line++
		case skip:
		case c == '\t' || c == '\r':
			mark()
			skip = true
		default:
			if len(name) >= MaxAltNameLen {
				return flagged, fmt.Errorf("line %d: %w", line, ErrNameTooLong)
			}
			name = append(name, c)
		}
	}
}
