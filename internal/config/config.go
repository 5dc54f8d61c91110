// Package config handles loading and validation of reckless.yaml project files.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/fs"
)

// ConfigFileName is the project config file looked up in the invoking directory.
const ConfigFileName = "reckless.yaml"

// Config represents the parsed and validated reckless.yaml configuration.
type Config struct {
	Version int     `yaml:"version"`
	Project string  `yaml:"project"`
	Root    string  `yaml:"root"`
	Builder Builder `yaml:"builder"`
	Assets  Assets  `yaml:"assets"`
}

// Builder names the external build tool and how long to wait for it.
type Builder struct {
	Command        string `yaml:"command"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Assets names external prerequisite assets that are referenced, not generated.
type Assets struct {
	HUDFont string `yaml:"hud_font"`
}

// Defaults applied during validation for optional fields.
const (
	DefaultRoot            = "game"
	DefaultBuildTimeoutSec = 120
)

// Load reads and parses reckless.yaml from dir.
// Returns E_NO_CONFIG if the file does not exist.
// Returns E_INVALID_CONFIG if the YAML is malformed or has unknown fields.
// Does NOT perform semantic validation; call Validate for that.
func Load(filesystem fs.FS, dir string) (Config, error) {
	path := filepath.Join(dir, ConfigFileName)

	data, err := filesystem.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ENoConfig, "reckless.yaml not found; run 'reckless init' to create it")
		}
		return Config{}, errors.Wrap(errors.ENoConfig, "failed to read reckless.yaml", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.New(errors.EInvalidConfig, "invalid yaml: "+err.Error())
	}

	return cfg, nil
}

// Validate checks semantics and fills defaults for optional fields.
// Returns E_INVALID_CONFIG for schema/required-field errors.
// Returns E_BUILDER_NOT_CONFIGURED if no builder command is set.
func Validate(cfg Config) (Config, error) {
	if cfg.Version != 1 {
		return cfg, errors.New(errors.EInvalidConfig, "version must be 1")
	}
	if cfg.Project == "" {
		return cfg, errors.New(errors.EInvalidConfig, "missing required field project")
	}
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Builder.Command == "" {
		return cfg, errors.New(errors.EBuilderNotConfigured, "missing required field builder.command")
	}
	if containsWhitespace(cfg.Builder.Command) {
		return cfg, errors.New(errors.EInvalidConfig, "builder.command must be a single executable (no args); use a wrapper script")
	}
	if cfg.Builder.TimeoutSeconds < 0 {
		return cfg, errors.New(errors.EInvalidConfig, "builder.timeout_seconds must not be negative")
	}
	if cfg.Builder.TimeoutSeconds == 0 {
		cfg.Builder.TimeoutSeconds = DefaultBuildTimeoutSec
	}
	return cfg, nil
}

// Template is the exact reckless.yaml written by `reckless init`.
const Template = `version: 1
project: untitled
root: game
builder:
  command: reckless-build
  timeout_seconds: 120
assets:
  hud_font: assets/fonts/hud.ttf
`

func containsWhitespace(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '\t' {
			return true
		}
	}
	return false
}
