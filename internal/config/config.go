// Package config loads the optional phonebook configuration file.
//
// The file is YAML:
//
//	file: contacts.json
//	backend: json      # json | sqlite
//	verbose: false
//
// Every field is optional. Decoded values are checked against the CUE
// schema in schema.cue before they are used, so a typo in the backend name
// is reported when the file is read rather than when the store is opened.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/phonebook/internal/store"
)

//go:embed schema.cue
var schemaSource string

// Config holds the settings a config file may provide.
type Config struct {
	File    string `yaml:"file" json:"file"`
	Backend string `yaml:"backend" json:"backend"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{Backend: store.BackendJSON}
}

// Load reads and validates the config file at path. Fields the file omits
// keep their Default values. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	value := ctx.Encode(c)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DataPath returns File, or the default file for Backend when File is empty.
func (c Config) DataPath() string {
	if c.File != "" {
		return c.File
	}
	return store.DefaultPath(c.Backend)
}
