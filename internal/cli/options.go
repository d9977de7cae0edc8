// internal/cli/options.go
package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"bwaidx/core/fmindex"
	"bwaidx/internal/cliutil"
	"bwaidx/internal/engine"
	"bwaidx/internal/output"
	"bwaidx/internal/writers"
)

// IndexOptions configures `bwaidx index`.
type IndexOptions struct {
	Ref         string
	Prefix      string
	ForwardOnly bool
	SAInterval  uint64
	Alt         string // .alt file copied next to the index
	NoManifest  bool
}

// Register wires the index flags onto fs.
func (o *IndexOptions) Register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.ForwardOnly, "forward-only", false, "pack the forward strand only (no BWT/SA)")
	fs.Uint64Var(&o.SAInterval, "sa-interval", fmindex.DefaultSAIntv, "suffix-array sampling interval (power of two)")
	fs.StringVar(&o.Alt, "alt", "", "ALT contig list to install as <prefix>.alt")
	fs.BoolVar(&o.NoManifest, "no-manifest", false, "skip writing <prefix>.manifest")
}

// Finish takes the positionals: <ref.fa> [prefix].
func (o *IndexOptions) Finish(args []string) error {
	switch len(args) {
	case 1:
		o.Ref, o.Prefix = args[0], args[0]
	case 2:
		o.Ref, o.Prefix = args[0], args[1]
	default:
		return Usagef("index takes <ref.fa> [prefix], got %d arguments", len(args))
	}
	if o.Ref == "-" && len(args) == 1 {
		return Usagef("a prefix is required when reading the reference from stdin")
	}
	if o.SAInterval == 0 || o.SAInterval&(o.SAInterval-1) != 0 {
		return Usagef("--sa-interval %d is not a power of two", o.SAInterval)
	}
	return nil
}

// SMEMOptions configures `bwaidx smem`.
type SMEMOptions struct {
	Prefix string
	Reads  []string

	Threads    int
	BatchSize  int
	MinSeedLen int
	MinIntv    uint64
	MaxIntv    uint64
	MaxOcc     int
	MaxMemIntv uint64

	Output          string
	Seq             bool
	NoHeader        bool
	LocatedOnly     bool
	NoMatchExitCode int
	MetricsFile     string
}

// Register wires the smem flags onto fs.
func (o *SMEMOptions) Register(fs *pflag.FlagSet) {
	d := engine.DefaultConfig
	fs.IntVarP(&o.Threads, "threads", "t", 0, "seeding threads (0 = all CPUs)")
	fs.IntVar(&o.BatchSize, "batch-size", 10000, "reads per pipeline batch")
	fs.IntVarP(&o.MinSeedLen, "min-seed-len", "k", d.MinSeedLen, "shortest seed reported")
	fs.Uint64Var(&o.MinIntv, "min-intv", d.MinIntv, "stop extending seeds occurring fewer times")
	fs.Uint64Var(&o.MaxIntv, "max-intv", d.MaxIntv, "stop once a seed occurs fewer times (0 = off)")
	fs.IntVar(&o.MaxOcc, "max-occ", d.MaxOcc, "locations resolved per seed (0 = all)")
	fs.Uint64VarP(&o.MaxMemIntv, "max-mem-intv", "y", 0, "third seeding round: add seeds occurring fewer times than this (0 = off)")
	fs.StringVarP(&o.Output, "output", "o", output.FormatTSV, "output: "+strings.Join(writers.Formats(), " | "))
	fs.BoolVar(&o.Seq, "seq", false, "include matched bases")
	fs.BoolVar(&o.NoHeader, "no-header", false, "suppress the TSV header")
	fs.BoolVar(&o.LocatedOnly, "located-only", false, "drop seeds with no occurrence inside a single contig")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no read has a seed")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write pipeline metrics here (Prometheus text format)")
}

// Finish takes the positionals: <prefix> <reads>... (globs expanded).
func (o *SMEMOptions) Finish(args []string) error {
	if len(args) < 2 {
		return Usagef("smem takes <prefix> <reads.fq>...")
	}
	o.Prefix = args[0]
	reads, err := cliutil.ExpandPositionals(args[1:])
	if err != nil {
		return &UsageError{Err: err}
	}
	o.Reads = reads
	switch {
	case o.Threads < 0:
		return Usagef("--threads must be >= 0")
	case o.BatchSize < 1:
		return Usagef("--batch-size must be >= 1")
	case o.MinSeedLen < 1:
		return Usagef("--min-seed-len must be >= 1")
	case o.MaxOcc < 0:
		return Usagef("--max-occ must be >= 0")
	case o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255:
		return Usagef("--no-match-exit-code must be between 0 and 255")
	}
	if _, ok := writers.SMEMWriters[o.Output]; !ok {
		return Usagef("invalid --output %q", o.Output)
	}
	return nil
}

// EngineConfig maps the flags onto the seeding engine. Whether matched
// bases are kept is left to the writer.
func (o *SMEMOptions) EngineConfig() engine.Config {
	return engine.Config{
		MinSeedLen: o.MinSeedLen,
		MinIntv:    o.MinIntv,
		MaxIntv:    o.MaxIntv,
		MaxOcc:     o.MaxOcc,
		MaxMemIntv: o.MaxMemIntv,
	}
}

// MatchOptions configures `bwaidx match`.
type MatchOptions struct {
	Prefix   string
	Queries  []string
	MaxOcc   int
	Output   string
	NoHeader bool
}

// Register wires the match flags onto fs.
func (o *MatchOptions) Register(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxOcc, "max-occ", engine.DefaultConfig.MaxOcc, "locations resolved per query (0 = all)")
	fs.StringVarP(&o.Output, "output", "o", output.FormatTSV, "output: tsv | json")
	fs.BoolVar(&o.NoHeader, "no-header", false, "suppress the TSV header")
}

// Finish takes the positionals: <prefix> <seq>...
func (o *MatchOptions) Finish(args []string) error {
	if len(args) < 2 {
		return Usagef("match takes <prefix> <seq>...")
	}
	o.Prefix, o.Queries = args[0], args[1:]
	for _, q := range o.Queries {
		if q == "" {
			return Usagef("empty query sequence")
		}
	}
	switch {
	case o.MaxOcc < 0:
		return Usagef("--max-occ must be >= 0")
	case o.Output != output.FormatTSV && o.Output != output.FormatJSON:
		return Usagef("invalid --output %q", o.Output)
	}
	return nil
}

// LocateOptions configures `bwaidx locate`.
type LocateOptions struct {
	Prefix    string
	Positions []int64
	JSON      bool
	NoHeader  bool
}

// Register wires the locate flags onto fs.
func (o *LocateOptions) Register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.JSON, "json", false, "emit JSON lines")
	fs.BoolVar(&o.NoHeader, "no-header", false, "suppress the TSV header")
}

// Finish takes the positionals: <prefix> <pos>...
func (o *LocateOptions) Finish(args []string) error {
	if len(args) < 2 {
		return Usagef("locate takes <prefix> <pos>...")
	}
	o.Prefix = args[0]
	ps, err := cliutil.ParseInt64s(args[1:])
	if err != nil {
		return &UsageError{Err: err}
	}
	o.Positions = ps
	return nil
}

// FetchOptions configures `bwaidx fetch`.
type FetchOptions struct {
	Prefix          string
	Begin, Mid, End int64
	Width           int
}

// Register wires the fetch flags onto fs.
func (o *FetchOptions) Register(fs *pflag.FlagSet) {
	fs.IntVarP(&o.Width, "width", "w", 60, "FASTA line width (0 = one line)")
}

// Finish takes the positionals: <prefix> <begin> <mid> <end>.
func (o *FetchOptions) Finish(args []string) error {
	if len(args) != 4 {
		return Usagef("fetch takes <prefix> <begin> <mid> <end>")
	}
	o.Prefix = args[0]
	v, err := cliutil.ParseInt64s(args[1:])
	if err != nil {
		return &UsageError{Err: err}
	}
	o.Begin, o.Mid, o.End = v[0], v[1], v[2]
	if o.Width < 0 {
		return Usagef("--width must be >= 0")
	}
	return nil
}

// StatsOptions configures `bwaidx stats`.
type StatsOptions struct {
	Prefix  string
	JSON    bool
	Contigs bool
}

// Register wires the stats flags onto fs.
func (o *StatsOptions) Register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.JSON, "json", false, "emit JSON")
	fs.BoolVar(&o.Contigs, "contigs", false, "list every contig")
}

// Finish takes the positional <prefix>.
func (o *StatsOptions) Finish(args []string) error {
	if len(args) != 1 {
		return Usagef("stats takes <prefix>")
	}
	o.Prefix = args[0]
	return nil
}
