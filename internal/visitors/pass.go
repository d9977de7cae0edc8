package visitors

import "bwaidx/internal/engine"

// PassThrough returns the hit unchanged.
type PassThrough struct{}

func (PassThrough) Visit(h engine.Hit) (keep bool, out engine.Hit, err error) {
	return true, h, nil
}

// Located drops hits whose occurrences all bridge two contigs (or the
// strand boundary) and therefore resolved to no location.
type Located struct{}

func (Located) Visit(h engine.Hit) (keep bool, out engine.Hit, err error) {
	return len(h.Locs) > 0, h, nil
}
