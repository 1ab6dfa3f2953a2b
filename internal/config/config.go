// Package config holds process-wide compiler knobs: mode flags set once
// at startup, and a YAML options file describing which primitives are
// enabled, the synthetic-name prefix, and dispatch verbosity.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// IsTestMode indicates the process is running under a test harness,
// set once at startup.
var IsTestMode = false

// IsDebugTrace records the --debug-trace flag. No dispatch or inlining
// code reads it, so it does not change any output.
var IsDebugTrace = false

// Options is the compiler-options file format loaded by Load.
type Options struct {
	// DisabledPrimitives names catalog entries by name. NewPrelude does
	// not read it: every catalog entry is installed regardless.
	DisabledPrimitives []string `yaml:"disabled_primitives,omitempty"`

	// SynthPrefix is the synthetic-name prefix, "_" when unset.
	// NewSynthName does not read it: synthetic names always start with "_".
	SynthPrefix string `yaml:"synth_prefix,omitempty"`

	// DispatchVerbose is parsed from the file but not read by dispatch:
	// dispatch error messages always enumerate the candidates.
	DispatchVerbose bool `yaml:"dispatch_verbose,omitempty"`
}

// Load reads and parses a compiler-options YAML file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.SynthPrefix == "" {
		opts.SynthPrefix = "_"
	}
	return &opts, nil
}

// LoadDotEnv loads .env-style overrides for local development, mirroring
// the pack's use of godotenv for CLI tooling. A missing file is not an
// error; other read failures are returned.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
