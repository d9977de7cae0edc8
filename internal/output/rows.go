// internal/output/rows.go
package output

import (
	"strconv"
	"strings"

	"bwaidx/internal/engine"
)

// LocsCSV renders locations as contig:pos:strand, comma separated.
func LocsCSV(locs []engine.Loc) string {
	if len(locs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, l := range locs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Contig)
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(l.Pos, 10))
		b.WriteByte(':')
		b.WriteByte(l.Strand)
	}
	return b.String()
}

// FormatRowTSV returns the TSVHeader columns for h (no trailing newline).
func FormatRowTSV(h engine.Hit) string {
	return strings.Join([]string{
		h.SourceFile, h.ReadID,
		strconv.Itoa(h.QBeg), strconv.Itoa(h.QEnd), strconv.Itoa(h.Len()),
		strconv.FormatUint(h.Count, 10),
		LocsCSV(h.Locs),
	}, "\t")
}
