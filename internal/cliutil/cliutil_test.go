package cliutil

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fa")
	_ = os.WriteFile(a, []byte(">a\nA\n"), 0o644)
	_ = os.WriteFile(b, []byte(">b\nA\n"), 0o644)
	got, err := ExpandPositionals([]string{"-", filepath.Join(dir, "*.fa"), "plain.fq"})
	if err != nil || !slices.Equal(got, []string{"-", a, b, "plain.fq"}) {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if _, err := ExpandPositionals([]string{filepath.Join(dir, "*.fq")}); err == nil {
		t.Fatal("want error for unmatched glob")
	}
}

func TestParseInt64s(t *testing.T) {
	got, err := ParseInt64s([]string{"0", "1,000", "1_000_000", "-5"})
	if err != nil || !slices.Equal(got, []int64{0, 1000, 1000000, -5}) {
		t.Fatalf("got=%v err=%v", got, err)
	}
	if _, err := ParseInt64s([]string{"12a"}); err == nil {
		t.Fatal("want error")
	}
}
