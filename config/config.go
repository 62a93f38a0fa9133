// Package config holds the generator configuration: which headers to read,
// how to name what is found in them and which functions block.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all ffigen configuration
type Config struct {
	// Module is the name of the generated binding module.
	Module string `yaml:"module"`
	// Library is the shared library the bindings load.
	Library string `yaml:"library"`
	// Headers are parsed and also select declarations by file name suffix.
	Headers []string `yaml:"headers"`
	// HeaderPatterns select further included files by regular expression.
	HeaderPatterns []string `yaml:"header_patterns"`
	CFlags         []string `yaml:"cflags"`
	// Prefixes are stripped from identifiers before they are split into words.
	Prefixes []string `yaml:"prefixes"`
	// Blocking lists raw function names that may block the calling thread.
	Blocking      []string     `yaml:"blocking"`
	ReservedWords []string     `yaml:"reserved_words"`
	Output        OutputConfig `yaml:"output"`

	patterns []*regexp.Regexp
}

// OutputConfig holds configuration for the dump output
type OutputConfig struct {
	Format string `yaml:"format"`
	Query  string `yaml:"query"`
}

// ValidFormats lists the dump formats.
var ValidFormats = []string{"yaml", "json"}

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	loaded, err := Load(path)
	if err != nil {
		return nil, err
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Load reads and decodes a config file without applying defaults or
// validating it, so callers can layer more settings on top first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config without applying defaults or validating it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that config values are valid and compiles the header
// patterns.
func Validate(cfg *Config) error {
	if len(cfg.Headers) == 0 {
		return fmt.Errorf("%w: no headers given", ErrInvalidConfig)
	}

	if !IsValidFormat(cfg.Output.Format) {
		return fmt.Errorf("%w: output format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.Format)
	}

	patterns := make([]*regexp.Regexp, 0, len(cfg.HeaderPatterns))
	for _, p := range cfg.HeaderPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("%w: header pattern %q: %v", ErrInvalidConfig, p, err)
		}
		patterns = append(patterns, re)
	}
	cfg.patterns = patterns

	return nil
}

func IsValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Matches reports whether declarations from filename belong to the
// configured headers. Declarations without a file (builtins) never match.
func (c *Config) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	for _, h := range c.Headers {
		if strings.HasSuffix(filename, h) {
			return true
		}
	}
	if c.patterns == nil && len(c.HeaderPatterns) > 0 {
		for _, p := range c.HeaderPatterns {
			if re, err := regexp.Compile(p); err == nil {
				c.patterns = append(c.patterns, re)
			}
		}
	}
	for _, re := range c.patterns {
		if re.MatchString(filename) {
			return true
		}
	}
	return false
}

// IsBlocking reports whether the function named raw is configured as blocking.
func (c *Config) IsBlocking(raw string) bool {
	for _, b := range c.Blocking {
		if b == raw {
			return true
		}
	}
	return false
}
