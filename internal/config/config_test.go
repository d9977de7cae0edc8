package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("t", pflag.ContinueOnError)
	fs.Int("threads", 0, "")
	fs.Uint64("sa-interval", 32, "")
	fs.Int("batch-size", 1000, "")
	fs.Bool("forward-only", false, "")
	fs.String("log-level", "info", "")
	return fs
}

func TestApplyFillsUnsetFlagsOnly(t *testing.T) {
	f, err := Parse([]byte("threads: 8\nsa_interval: 64\nforward_only: true\nlog_level: debug\nmax_occ: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	fs := flags()
	if err := fs.Parse([]string{"--threads", "2"}); err != nil {
		t.Fatal(err)
	}
	if err := f.Apply(fs); err != nil {
		t.Fatal(err)
	}
	if v, _ := fs.GetInt("threads"); v != 2 {
		t.Errorf("threads=%d, explicit flag must win", v)
	}
	if v, _ := fs.GetUint64("sa-interval"); v != 64 {
		t.Errorf("sa-interval=%d", v)
	}
	if v, _ := fs.GetBool("forward-only"); !v {
		t.Errorf("forward-only not applied")
	}
	if v, _ := fs.GetString("log-level"); v != "debug" {
		t.Errorf("log-level=%q", v)
	}
	if v, _ := fs.GetInt("batch-size"); v != 1000 {
		t.Errorf("batch-size=%d", v)
	}
}

func TestParseRejectsUnknownAndInvalid(t *testing.T) {
	for _, doc := range []string{"thread: 4\n", "sa_interval: 24\n", "batch_size: 0\n", "threads: -1\n"} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%q: want error", doc)
		}
	}
	if _, err := Parse(nil); err != nil {
		t.Fatalf("empty document: %v", err)
	}
}

func TestPathPrefersFlag(t *testing.T) {
	t.Setenv(EnvVar, "/from/env.yaml")
	if got := Path("/from/flag.yaml"); got != "/from/flag.yaml" {
		t.Fatalf("got %q", got)
	}
	if got := Path(""); got != "/from/env.yaml" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bwaidx.yaml")
	if err := os.WriteFile(p, []byte("metrics_file: /tmp/m.prom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.MetricsFile == nil || *f.MetricsFile != "/tmp/m.prom" {
		t.Fatalf("f=%+v", f)
	}
	if _, err := LoadFile(p + ".missing"); err == nil || !strings.Contains(err.Error(), "no such file") {
		t.Fatalf("err=%v", err)
	}
}
