// core/packseq/pacfile.go
package packseq

import (
	"errors"
	"fmt"
	"io"
)

// ErrPacTrailer is returned for .pac data whose trailer cannot describe
// the base count.
var ErrPacTrailer = errors.New("packseq: bad .pac trailer")

// WritePac writes the first n bases of pac in the .pac layout: ceil(n/4)
// packed bytes, a zero byte when n%4 == 0, then one byte holding n%4. The
// file size is therefore always n/4+2 and the base count is recoverable.
// Bits past base n in the last packed byte are written as zero.
func WritePac(w io.Writer, pac []byte, n int64) error {
	full := n / 4
	if _, err := w.Write(pac[:full]); err != nil {
		return fmt.Errorf("write pac: %w", err)
	}
	var tail []byte
	if r := n % 4; r != 0 {
		tail = append(tail, pac[full]&(0xff<<(8-2*r)))
	}
	if n%4 == 0 {
		tail = append(tail, 0)
	}
	tail = append(tail, byte(n%4))
	if _, err := w.Write(tail); err != nil {
		return fmt.Errorf("write pac trailer: %w", err)
	}
	return nil
}

// PacBases derives the base count from a complete .pac image.
func PacBases(data []byte) (int64, error) {
	size := int64(len(data))
	if size < 2 {
		return 0, fmt.Errorf("%w: %d bytes", ErrPacTrailer, size)
	}
	rem := data[size-1]
	if rem > 3 {
		return 0, fmt.Errorf("%w: remainder byte %d", ErrPacTrailer, rem)
	}
	return (size-2)*4 + int64(rem), nil
}

// ParsePac splits a .pac image into its packed body and base count.
func ParsePac(data []byte) ([]byte, int64, error) {
	n, err := PacBases(data)
	if err != nil {
		return nil, 0, err
	}
	return data[:(n+3)/4], n, nil
}

// GetSeq decodes [beg, end) from a doubled packed axis of 2*lPac bases.
// The second half is read as the reverse complement of the first. A range
// that bridges the forward/reverse boundary yields (nil, 0). Reversed
// bounds are swapped and the range is clamped to [0, 2*lPac).
func GetSeq(lPac int64, pac []byte, beg, end int64) ([]byte, int64) {
	if end < beg {
		beg, end = end, beg
	}
	if end > lPac<<1 {
		end = lPac << 1
	}
	if beg < 0 {
		beg = 0
	}
	if beg < lPac && end > lPac {
		return nil, 0
	}
	if end <= beg {
		return []byte{}, 0
	}
	seq := make([]byte, 0, end-beg)
	if beg >= lPac {
		begF := (lPac << 1) - 1 - end
		endF := (lPac << 1) - 1 - beg
		for k := endF; k > begF; k-- {
			seq = append(seq, Complement(Get(pac, k)))
		}
	} else {
		for k := beg; k < end; k++ {
			seq = append(seq, Get(pac, k))
		}
	}
	return seq, int64(len(seq))
}
