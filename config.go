package jsscope

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jsscope/jsscope/js"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = ".jsscope.yaml"

// ErrNotFound is returned by FindConfig when no configuration file exists
// in the directory or any of its parents.
var ErrNotFound = errors.New("configuration file not found")

// Config is the content of a project configuration file:
//
//	level: strict
//	fail-at: warning
//	ignore:
//	  - use-of-undeclared-*
//	overrides:
//	  redeclaration-of-variable: error
//	globals: [jQuery, $]
//	node: true
type Config struct {
	js.DiagnosticConfig `yaml:",inline"`

	// Globals are extra writable global names.
	Globals []string `yaml:"globals"`
	// Node enables the Node.js globals.
	Node bool `yaml:"node"`

	// Path is the file the configuration was loaded from.
	Path string `yaml:"-"`
}

// DefaultProjectConfig returns the configuration used when a project has
// no configuration file.
func DefaultProjectConfig() *Config {
	return &Config{DiagnosticConfig: js.DefaultConfig()}
}

// Options returns the options that apply the configuration.
func (c *Config) Options() []Option {
	opts := []Option{WithDiagnosticConfig(c.DiagnosticConfig)}
	if len(c.Globals) > 0 {
		opts = append(opts, WithGlobals(c.Globals...))
	}
	if c.Node {
		opts = append(opts, WithNodeGlobals())
	}
	return opts
}

// FindConfig looks for ConfigFileName in dir and then in each parent
// directory, returning the first path found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// LoadConfig reads a configuration file. Keys that are absent keep the
// values of DefaultProjectConfig; unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// ParseConfig decodes configuration file content.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultProjectConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
