// Package config loads optional YAML defaults for bwaidx commands.
//
// The file is named by --config or, failing that, the BWAIDX_CONFIG
// environment variable. There is no discovery and no fallback search.
// Values from the file fill in flags the user did not set explicitly;
// a flag given on the command line always wins.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvVar names the config file when --config is absent.
const EnvVar = "BWAIDX_CONFIG"

// File is the on-disk schema. Absent keys stay nil.
type File struct {
	Threads     *int    `yaml:"threads"`
	SAInterval  *uint64 `yaml:"sa_interval"`
	MinSeedLen  *int    `yaml:"min_seed_len"`
	MinIntv     *uint64 `yaml:"min_intv"`
	MaxIntv     *uint64 `yaml:"max_intv"`
	MaxOcc      *int    `yaml:"max_occ"`
	BatchSize   *int    `yaml:"batch_size"`
	ForwardOnly *bool   `yaml:"forward_only"`
	LogLevel    *string `yaml:"log_level"`
	MetricsFile *string `yaml:"metrics_file"`
}

// Path returns the config path to use: flagValue if set, else $BWAIDX_CONFIG.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvVar)
}

// LoadFile parses path. Unknown keys are an error.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a config document.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate rejects values no command accepts.
func (f *File) Validate() error {
	switch {
	case f.Threads != nil && *f.Threads < 0:
		return errors.New("config: threads must be >= 0")
	case f.SAInterval != nil && (*f.SAInterval == 0 || *f.SAInterval&(*f.SAInterval-1) != 0):
		return fmt.Errorf("config: sa_interval %d is not a power of two", *f.SAInterval)
	case f.BatchSize != nil && *f.BatchSize < 1:
		return errors.New("config: batch_size must be >= 1")
	case f.MinSeedLen != nil && *f.MinSeedLen < 1:
		return errors.New("config: min_seed_len must be >= 1")
	case f.MaxOcc != nil && *f.MaxOcc < 0:
		return errors.New("config: max_occ must be >= 0")
	}
	return nil
}

// values maps flag names to the file's settings.
func (f *File) values() map[string]string {
	m := map[string]string{}
	if f.Threads != nil {
		m["threads"] = strconv.Itoa(*f.Threads)
	}
	if f.SAInterval != nil {
		m["sa-interval"] = strconv.FormatUint(*f.SAInterval, 10)
	}
	if f.MinSeedLen != nil {
		m["min-seed-len"] = strconv.Itoa(*f.MinSeedLen)
	}
	if f.MinIntv != nil {
		m["min-intv"] = strconv.FormatUint(*f.MinIntv, 10)
	}
	if f.MaxIntv != nil {
		m["max-intv"] = strconv.FormatUint(*f.MaxIntv, 10)
	}
	if f.MaxOcc != nil {
		m["max-occ"] = strconv.Itoa(*f.MaxOcc)
	}
	if f.BatchSize != nil {
		m["batch-size"] = strconv.Itoa(*f.BatchSize)
	}
	if f.ForwardOnly != nil {
		m["forward-only"] = strconv.FormatBool(*f.ForwardOnly)
	}
	if f.LogLevel != nil {
		m["log-level"] = *f.LogLevel
	}
	if f.MetricsFile != nil {
		m["metrics-file"] = *f.MetricsFile
	}
	return m
}

// Apply sets every flag in fs that the file configures and the user did
// not pass. Keys without a matching flag in fs are ignored, so one file
// can serve every subcommand.
func (f *File) Apply(fs *pflag.FlagSet) error {
	for name, v := range f.values() {
		fl := fs.Lookup(name)
		if fl == nil || fl.Changed {
			continue
		}
		if err := fl.Value.Set(v); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}
