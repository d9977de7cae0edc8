package appshell

import (
	"context"
	"io"
	"slices"
	"testing"
)

func TestExecDefaultsToHelp(t *testing.T) {
	var got []string
	code := Exec(func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, io.Discard, io.Discard)
	if code != 0 || !slices.Equal(got, []string{"-h"}) {
		t.Fatalf("code=%d argv=%v", code, got)
	}
}

func TestExecPassesCode(t *testing.T) {
	code := Exec(func(context.Context, []string, io.Writer, io.Writer) int { return 3 }, []string{"x"}, io.Discard, io.Discard)
	if code != 3 {
		t.Fatalf("code=%d", code)
	}
}
