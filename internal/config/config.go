package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"flatfish/internal/expand"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".flatfish.yaml"

// InPlace as the output rewrites each input file.
const InPlace = "-"

// SupportedVersions is the range of file versions this build understands.
const SupportedVersions = "^1"

var supported = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}

	return c
}()

// Config is the project file.
type Config struct {
	Version string   `yaml:"version"`
	Macros  []string `yaml:"macros,omitempty"`
	Output  string   `yaml:"output,omitempty"`
	Suffix  string   `yaml:"suffix,omitempty"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	if len(c.Macros) == 0 {
		c.Macros = append([]string(nil), expand.DefaultMacros...)
	}
}

// Validate checks the version range and the macro paths.
func (c *Config) Validate() error {
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("invalid config version %q: %w", c.Version, err)
	}

	if !supported.Check(v) {
		return fmt.Errorf("unsupported config version %q (supported: %s)", c.Version, SupportedVersions)
	}

	for _, m := range c.Macros {
		if err := validateMacro(m); err != nil {
			return err
		}
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes a Config to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

func validateMacro(path string) error {
	for part := range strings.SplitSeq(path, "::") {
		if !isValidIdent(part) {
			return fmt.Errorf("invalid macro path %q: invalid identifier %q", path, part)
		}
	}

	return nil
}

// isValidIdent checks if a string is a plain identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
