package visitors

import (
	"testing"

	"bwaidx/internal/engine"
)

func TestPassThroughKeepsEverything(t *testing.T) {
	h := engine.Hit{ReadID: "r", QEnd: 20, Count: 3}
	keep, out, err := PassThrough{}.Visit(h)
	if !keep || err != nil || out.ReadID != "r" || out.Count != 3 {
		t.Fatalf("keep=%v out=%+v err=%v", keep, out, err)
	}
}

func TestLocatedDropsUnresolvedHits(t *testing.T) {
	bridged := engine.Hit{ReadID: "b", QEnd: 40, Count: 1}
	if keep, _, _ := (Located{}).Visit(bridged); keep {
		t.Fatal("hit without locations was kept")
	}
	placed := engine.Hit{ReadID: "p", QEnd: 40, Count: 1,
		Locs: []engine.Loc{{Contig: "chr1", Pos: 5, Strand: '+'}}}
	if keep, out, _ := (Located{}).Visit(placed); !keep || out.ReadID != "p" {
		t.Fatalf("located hit dropped: %+v", out)
	}
}
