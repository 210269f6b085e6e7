// Package config loads nestmlc settings from a YAML file.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file read from the working directory
// when no path is given.
const DefaultFile = ".nestmlc.yaml"

// Config holds the checker settings.
type Config struct {
	Werror    bool     `yaml:"werror"`     // treat warnings as errors
	Parallel  int      `yaml:"parallel"`   // models checked concurrently
	Disable   []string `yaml:"disable"`    // context conditions to skip
	MaxErrors int      `yaml:"max-errors"` // stop printing after N errors; 0 means no limit
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{Parallel: 1}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads and validates the configuration at path.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: empty path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// LoadOptional is like Load but returns the defaults if path does not exist.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Decode reads a configuration document from r. An empty document yields
// the defaults.
func Decode(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := Default()
	if err := dec.Decode(cfg); err != nil && errors.Cause(err) != io.EOF {
		return nil, errors.Wrap(err, "parse")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting in one *ValidationError.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.Parallel < 1 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("parallel must be at least 1, got %d", c.Parallel))
	}
	if c.MaxErrors < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max-errors must not be negative, got %d", c.MaxErrors))
	}
	seen := make(map[string]bool, len(c.Disable))
	for i, name := range c.Disable {
		switch {
		case strings.TrimSpace(name) == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("disable[%d] must be a non-empty rule name", i))
		case seen[name]:
			errs.Issues = append(errs.Issues, fmt.Sprintf("disable lists %q more than once", name))
		}
		seen[name] = true
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
