// internal/cliutil/cliutil.go
package cliutil

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals.
// "-" (stdin) passes through unchanged.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == "-" || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}

var digitSep = strings.NewReplacer(",", "", "_", "")

// ParseInt64s parses decimal coordinates. Underscores and commas are
// accepted as digit separators ("1,000,000").
func ParseInt64s(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(digitSep.Replace(a), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q", a)
		}
		out[i] = v
	}
	return out, nil
}
