package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bwaidx/internal/engine"
	"bwaidx/pkg/api"
)

var sample = engine.Hit{
	ReadID: "r1", QBeg: 3, QEnd: 25, Count: 3,
	Locs: []engine.Loc{
		{Contig: "chr1", RID: 0, Pos: 100, Strand: '+'},
		{Contig: "chr2", RID: 1, Pos: 7, Strand: '-'},
	},
	SourceFile: "reads.fq",
}

func TestFormatRowTSV(t *testing.T) {
	const want = "reads.fq\tr1\t3\t25\t22\t3\tchr1:100:+,chr2:7:-"
	if got := FormatRowTSV(sample); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	if got := LocsCSV(nil); got != "" {
		t.Fatalf("empty locs rendered %q", got)
	}
}

func TestWriteTSVHeader(t *testing.T) {
	var b bytes.Buffer
	if err := WriteTSV(&b, []engine.Hit{sample}, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 || lines[0] != TSVHeader {
		t.Fatalf("lines=%q", lines)
	}
	b.Reset()
	in := make(chan engine.Hit, 1)
	in <- sample
	close(in)
	if err := StreamTSV(&b, in, false); err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(b.String(), "source_file") {
		t.Fatalf("header written with header=false")
	}
}

func TestWriteJSONUsesWireSchema(t *testing.T) {
	var b bytes.Buffer
	if err := WriteJSON(&b, []engine.Hit{sample}); err != nil {
		t.Fatal(err)
	}
	var got []api.SMEMV1
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, b.String())
	}
	if len(got) != 1 || got[0].Length != 22 || got[0].Hits[1].Strand != "-" || got[0].Seq != "" {
		t.Fatalf("got %+v", got)
	}
	if strings.Contains(b.String(), `"seq"`) {
		t.Fatalf("empty seq not omitted")
	}
}
