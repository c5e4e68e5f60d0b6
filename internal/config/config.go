// Package config loads tool configuration from an optional YAML file and
// validates it against an embedded CUE schema. Fields left unset take the
// schema's defaults, so a missing config file yields a fully usable
// Config.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

// Config is the validated tool configuration.
type Config struct {
	Selection SelectionConfig `json:"selection"`
	Storage   StorageConfig   `json:"storage"`
	Logging   LoggingConfig   `json:"logging"`
}

// SelectionConfig bounds the selection working set and its persistence.
type SelectionConfig struct {
	MaxSize    int `json:"max_size"`
	DebounceMS int `json:"debounce_ms"`
}

// DebounceWindow returns the debounce setting as a duration.
func (c SelectionConfig) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// StorageConfig names the persistence backends.
type StorageConfig struct {
	Database      string `json:"database"`
	SelectionFile string `json:"selection_file"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `json:"level"`
}

// Default returns the configuration with every field at its schema
// default.
func Default() (*Config, error) {
	return parse(nil, "<defaults>")
}

// Load reads path as YAML, validates it against the schema, and returns
// the resulting configuration. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default()
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data, path)
}

// parse unifies the YAML document with the schema and decodes the result.
// A nil document decodes the bare schema, which is concrete thanks to the
// defaults.
func parse(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	value := schema
	if len(data) > 0 {
		file, err := cueyaml.Extract(filename, data)
		if err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		doc := ctx.BuildFile(file)
		if err := doc.Err(); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		value = schema.Unify(doc)
	}

	if err := value.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
