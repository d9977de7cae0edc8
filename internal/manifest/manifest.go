// Package manifest records the files of an index package together with
// their sizes and BLAKE3 digests, so a later run can tell whether any of
// them changed or went missing. The manifest is stored next to the index
// as <prefix>.manifest in deterministic CBOR.
package manifest

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"
)

// FormatVersion is bumped on incompatible schema changes.
const FormatVersion = 1

// Suffix is appended to the index prefix to name the manifest.
const Suffix = ".manifest"

// Packed lists the reference files every package carries.
var Packed = []string{".pac", ".ann", ".amb"}

// FM lists the FM-index files, absent from forward-only packages.
var FM = []string{".bwt", ".sa"}

// Required lists the index files of a full package.
var Required = append(slices.Clone(Packed), FM...)

// Optional lists index files recorded only when present.
var Optional = []string{".alt"}

// ErrVersion marks a manifest written by an incompatible release.
var ErrVersion = errors.New("unsupported manifest version")

// Digest is a BLAKE3-256 sum.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Entry describes one file of the package. Name is the suffix only, so
// a package can be moved or renamed as a whole.
type Entry struct {
	Suffix string `cbor:"1,keyasint"`
	Size   int64  `cbor:"2,keyasint"`
	Digest Digest `cbor:"3,keyasint"`
}

// Manifest is the package summary.
type Manifest struct {
	Version     int     `cbor:"1,keyasint"`
	Tool        string  `cbor:"2,keyasint"`
	LPac        int64   `cbor:"3,keyasint"`
	Contigs     int32   `cbor:"4,keyasint"`
	ForwardOnly bool    `cbor:"5,keyasint"`
	SAIntv      uint64  `cbor:"6,keyasint"`
	Files       []Entry `cbor:"7,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("manifest: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("manifest: CBOR decoder initialization failed: " + err.Error())
	}
}

// HashFile streams path through BLAKE3.
func HashFile(path string) (Digest, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, 0, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer f.Close()
	h := blake3.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Digest{}, 0, fmt.Errorf("hashing %s: %w", path, err)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, n, nil
}

// hashAll hashes prefix+suffix for every suffix, in parallel. Missing
// optional files are skipped.
func hashAll(ctx context.Context, prefix string, suffixes []string, optional map[string]bool) ([]Entry, error) {
	entries := make([]Entry, len(suffixes))
	found := make([]bool, len(suffixes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, suf := range suffixes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, n, err := HashFile(prefix + suf)
			if err != nil {
				if optional[suf] && errors.Is(err, os.ErrNotExist) {
					return nil
				}
				return err
			}
			entries[i] = Entry{Suffix: suf, Size: n, Digest: d}
			found[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := entries[:0]
	for i, e := range entries {
		if found[i] {
			out = append(out, e)
		}
	}
	return out, nil
}

// Build hashes the package files at prefix into m.Files. The other
// fields of m are kept as given; m.ForwardOnly drops the FM-index files.
func Build(ctx context.Context, prefix string, m Manifest) (*Manifest, error) {
	opt := map[string]bool{}
	for _, s := range Optional {
		opt[s] = true
	}
	want := slices.Clone(Required)
	if m.ForwardOnly {
		want = slices.Clone(Packed)
	}
	files, err := hashAll(ctx, prefix, append(want, Optional...), opt)
	if err != nil {
		return nil, err
	}
	m.Version = FormatVersion
	m.Files = files
	return &m, nil
}

// Write stores m as prefix.manifest.
func Write(prefix string, m *Manifest) error {
	data, err := encMode.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(prefix+Suffix, data, 0o644)
}

// Read loads prefix.manifest.
func Read(prefix string) (*Manifest, error) {
	data, err := os.ReadFile(prefix + Suffix)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := decMode.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", prefix+Suffix, err)
	}
	if m.Version != FormatVersion {
		return nil, fmt.Errorf("%s: version %d: %w", prefix+Suffix, m.Version, ErrVersion)
	}
	return &m, nil
}

// Problem is one file that no longer matches the manifest.
type Problem struct {
	File   string
	Reason string
}

func (p Problem) String() string { return p.File + ": " + p.Reason }

// Verify rehashes every file listed in prefix.manifest and reports the
// ones that are missing or differ. An empty result means the package is
// intact.
func Verify(ctx context.Context, prefix string) ([]Problem, error) {
	m, err := Read(prefix)
	if err != nil {
		return nil, err
	}
	want := make([]string, len(m.Files))
	for i, e := range m.Files {
		want[i] = e.Suffix
	}
	opt := map[string]bool{}
	for _, s := range want {
		opt[s] = true
	}
	got, err := hashAll(ctx, prefix, want, opt)
	if err != nil {
		return nil, err
	}
	have := map[string]Entry{}
	for _, e := range got {
		have[e.Suffix] = e
	}
	var probs []Problem
	for _, e := range m.Files {
		name := filepath.Base(prefix + e.Suffix)
		g, ok := have[e.Suffix]
		switch {
		case !ok:
			probs = append(probs, Problem{name, "missing"})
		case g.Size != e.Size:
			probs = append(probs, Problem{name, fmt.Sprintf("size %d, want %d", g.Size, e.Size)})
		case g.Digest != e.Digest:
			probs = append(probs, Problem{name, "digest mismatch"})
		}
	}
	return probs, nil
}
