// Package config loads the walktrap command configuration from YAML.
//
// Every field has a default (see Default); a file only needs the keys it
// changes. Unknown keys are rejected so that typos do not pass silently.
//
//	solver:
//	  binary: /usr/local/bin/walktrap
//	  parameters:
//	    random_walk_length: 4
//	    memory_limit: 512
//	pipeline:
//	  workers: 8
//	  rounds: 2
//	  chooser: relevant
//	  put_lonely_in_unclustered: true
//	log:
//	  level: debug
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/muffato/pywaltrap/solver"
)

// ErrInvalidConfig wraps every load and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Chooser names.
const (
	ChooserPrompt   = "prompt"
	ChooserFirst    = "first"
	ChooserRelevant = "relevant"
)

// Config is the full command configuration.
type Config struct {
	Solver   SolverConfig   `yaml:"solver"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Log      LogConfig      `yaml:"log"`
	Render   RenderConfig   `yaml:"render"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SolverConfig selects the walktrap executable and its parameters.
type SolverConfig struct {
	Binary     string            `yaml:"binary" validate:"required"`
	ExtraArgs  []string          `yaml:"extra_args"`
	Parameters solver.Parameters `yaml:"parameters"`
}

// PipelineConfig drives ApplyMultipleRounds.
type PipelineConfig struct {
	// Workers bounds parallel solver calls; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0"`

	// Rounds is the number of identical passes applied to every group.
	Rounds int `yaml:"rounds" validate:"gte=1"`

	Chooser                string `yaml:"chooser" validate:"oneof=prompt first relevant"`
	PutLonelyInUnclustered bool   `yaml:"put_lonely_in_unclustered"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// RenderConfig enables dendrogram drawings, one file per component.
type RenderConfig struct {
	// Dir receives the drawings; empty disables rendering.
	Dir    string `yaml:"dir"`
	Format string `yaml:"format" validate:"oneof=dot svg png"`
}

// MetricsConfig enables a Prometheus text-format dump at exit.
type MetricsConfig struct {
	// Textfile is written at exit; empty disables metrics.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Binary:     solver.DefaultBinary,
			Parameters: solver.DefaultParameters(),
		},
		Pipeline: PipelineConfig{
			Rounds:                 1,
			Chooser:                ChooserPrompt,
			PutLonelyInUnclustered: true,
		},
		Log:    LogConfig{Level: "info"},
		Render: RenderConfig{Format: "dot"},
	}
}

var validate = validator.New()

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Parse reads YAML over the defaults and validates the result.
// Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads the file at path; an empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return Parse(data)
}
