package output

// Output formats accepted by --output.
const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSVHeader is the canonical header row for TSV output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "source_file\tread_id\tqstart\tqend\tlength\tcount\thits"

// LocateHeader heads the locate command's TSV.
const LocateHeader = "pos\trid\tcontig\toffset\tstrand"
