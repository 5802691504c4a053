// Package config loads the checker policy from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"toycheck/internal/checker"
	"toycheck/internal/lexer"
)

// DefaultPath is looked up in the working directory when no --config flag is
// given.
const DefaultPath = ".toycheck.yaml"

// Redeclare modes.
const (
	RedeclareOverwrite = "overwrite"
	RedeclareError     = "error"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvPrintRequiresDeclaration = "TOYCHECK_PRINT_REQUIRES_DECLARATION"
	EnvRedeclare                = "TOYCHECK_REDECLARE"
	EnvSkipUnknown              = "TOYCHECK_SKIP_UNKNOWN"
	EnvTrace                    = "TOYCHECK_TRACE"
)

// Config mirrors .toycheck.yaml.
type Config struct {
	Policy PolicyConfig `yaml:"policy"`
	Lexer  LexerConfig  `yaml:"lexer"`
	Trace  bool         `yaml:"trace"`
}

type PolicyConfig struct {
	PrintRequiresDeclaration bool   `yaml:"print_requires_declaration"`
	Redeclare                string `yaml:"redeclare"`
}

type LexerConfig struct {
	SkipUnknown bool `yaml:"skip_unknown"`
}

// Default returns the permissive configuration.
func Default() *Config {
	return &Config{
		Policy: PolicyConfig{Redeclare: RedeclareOverwrite},
	}
}

// Load reads and validates a configuration file. Keys not listed in Config
// are rejected. An empty file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overlays any TOYCHECK_* variables that are set.
func ApplyEnv(cfg *Config) error {
	// env caches the environment; pick up anything set since startup.
	env.Load()

	if env.Has(EnvPrintRequiresDeclaration) {
		cfg.Policy.PrintRequiresDeclaration = env.Bool(EnvPrintRequiresDeclaration)
	}
	if env.Has(EnvRedeclare) {
		cfg.Policy.Redeclare = env.Str(EnvRedeclare)
	}
	if env.Has(EnvSkipUnknown) {
		cfg.Lexer.SkipUnknown = env.Bool(EnvSkipUnknown)
	}
	if env.Has(EnvTrace) {
		cfg.Trace = env.Bool(EnvTrace)
	}
	return cfg.Validate()
}

// Validate rejects values the checker has no meaning for.
func (c *Config) Validate() error {
	switch c.Policy.Redeclare {
	case RedeclareOverwrite, RedeclareError:
		return nil
	case "":
		c.Policy.Redeclare = RedeclareOverwrite
		return nil
	}
	return fmt.Errorf("policy.redeclare must be %q or %q, got %q", RedeclareOverwrite, RedeclareError, c.Policy.Redeclare)
}

// CheckerOptions maps the configuration onto a checker session.
func (c *Config) CheckerOptions() checker.Options {
	return checker.Options{
		Lexer: lexer.Options{SkipUnknown: c.Lexer.SkipUnknown},
		Policy: checker.Policy{
			PrintRequiresDeclaration: c.Policy.PrintRequiresDeclaration,
			RedeclareIsError:         c.Policy.Redeclare == RedeclareError,
		},
	}
}
