// Package runconfig loads the optional TOML configuration file the
// command-line front-ends accept, following the config-file convention
// used elsewhere in RISC-family emulator tooling: a single struct with
// unset fields falling back to documented defaults, never to silent
// zero values.
package runconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"rv32i/pkg/core"
)

// Config is the front-end run configuration. Fields left unset in a
// parsed TOML file keep their Default* value.
type Config struct {
	// MemorySize is the memory image size in bytes.
	MemorySize uint32 `toml:"memory_size"`
	// MemoryStart is the architectural base address, encoded as a
	// "0x"-prefixed hex string so config files stay readable.
	MemoryStart string `toml:"memory_start"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`
	// Trace enables per-step disassembly tracing.
	Trace bool `toml:"trace"`
	// Step enables single-step (pause between instructions) mode.
	Step bool `toml:"step"`
}

// Default returns the Config used when no file is supplied.
func Default() Config {
	return Config{
		MemorySize:  core.DefaultMemorySize,
		MemoryStart: fmt.Sprintf("0x%x", core.DefaultMemoryStart),
		LogLevel:    "info",
		Trace:       false,
		Step:        false,
	}
}

// Load parses the TOML file at path into a Config seeded with Default
// values, so any field the file omits keeps its default rather than
// becoming zero. A file that does not exist or cannot be parsed is
// reported as an error; callers that have no config file to read (e.g.
// no -config flag was provided) use Default instead of calling Load.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("runconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Base parses MemoryStart as a hex-or-decimal integer (accepting a
// "0x" prefix per Go's strconv.ParseUint with base 0).
func (c Config) Base() (uint32, error) {
	s := strings.TrimSpace(c.MemoryStart)
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("runconfig: invalid memory_start %q: %w", c.MemoryStart, err)
	}
	return uint32(v), nil
}
