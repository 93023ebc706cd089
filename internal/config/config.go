// Package config holds the sigil.yaml project configuration: checker
// strictness switches and declaration-emission settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level sigil.yaml configuration.
type Config struct {
	// Check holds the checker strictness switches.
	Check CheckOptions `yaml:"check,omitempty"`

	// Declarations controls .d.sg declaration emission.
	Declarations DeclOptions `yaml:"declarations,omitempty"`
}

// CheckOptions are the strictness switches of the checker.
type CheckOptions struct {
	// NoImplicitAny reports uses that silently fall back to any:
	// unannotated parameters, unknown names and destructured bindings
	// without a usable element type.
	NoImplicitAny bool `yaml:"no_implicit_any,omitempty"`

	// Suppress lists diagnostic codes (e.g. "TS2451") that are
	// dropped from the output. Fatal checking behavior is unaffected;
	// only reporting is filtered.
	Suppress []string `yaml:"suppress,omitempty"`
}

// Suppressed reports whether a diagnostic code is filtered out.
func (c CheckOptions) Suppressed(code string) bool {
	for _, s := range c.Suppress {
		if s == code {
			return true
		}
	}
	return false
}

// DeclOptions controls declaration emission and its cache.
type DeclOptions struct {
	// Emit enables writing a .d.sg declaration file next to each
	// checked source file.
	Emit bool `yaml:"emit,omitempty"`

	// Cache configures the on-disk declaration cache.
	Cache CacheOptions `yaml:"cache,omitempty"`
}

// CacheOptions configures the sqlite-backed declaration cache.
type CacheOptions struct {
	// Enabled turns the cache on. When off every emission is
	// recomputed.
	Enabled bool `yaml:"enabled,omitempty"`

	// Path is the cache database file. Defaults to .sigil-cache.db in
	// the directory of the config file, or the working directory when
	// no config file exists.
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no sigil.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults("")
	return cfg
}

// LoadConfig reads and parses a sigil.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses sigil.yaml content from bytes. The path argument
// is used only for error messages and default resolution.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults(filepath.Dir(path))
	return &cfg, nil
}

// FindConfig searches for sigil.yaml starting from dir and walking up
// to parent directories. Returns the path when found, or an empty
// string and nil error when no config file exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) setDefaults(baseDir string) {
	if c.Declarations.Cache.Path == "" {
		c.Declarations.Cache.Path = filepath.Join(baseDir, ".sigil-cache.db")
	}
}
