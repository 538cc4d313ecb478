package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// RunConfig holds the full TOML-driven conversion configuration.
type RunConfig struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
	Preset string `toml:"preset"`
	Input  string `toml:"input"` // optional SQL file; stdin when empty

	Options      OptionsConfig      `toml:"options"`
	Rules        RuleConfig         `toml:"rules"`
	Validator    ValidatorConfig    `toml:"validator"`
	SessionStore SessionStoreConfig `toml:"session_store"`

	// Resolved dialects, populated by loadConfig.
	sourceDialect Dialect
	targetDialect Dialect
}

// OptionsConfig mirrors ConversionOptions for TOML decoding.
type OptionsConfig struct {
	StrictMode                  bool `toml:"strict_mode"`
	EnableComments              bool `toml:"enable_comments"`
	FormatSQL                   bool `toml:"format_sql"`
	ReplaceUnsupportedFunctions bool `toml:"replace_unsupported_functions"`
}

// ValidatorConfig enables the pre-conversion syntax check against a
// live target engine. Empty DSN disables validation.
type ValidatorConfig struct {
	DSN string `toml:"dsn"`
}

// SessionStoreConfig selects the session rule store backend. Empty
// path keeps the in-memory store.
type SessionStoreConfig struct {
	Path string `toml:"path"` // SQLite file for persistent sessions
}

// loadConfig reads a TOML config file, seeds the rule tree from the
// selected preset, and applies any per-rule overrides on top.
func loadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(string(data))
}

func parseConfig(data string) (*RunConfig, error) {
	// The preset decides the rule defaults, so it has to be known
	// before the full decode seeds cfg.Rules.
	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(data, &head); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if head.Preset == "" {
		head.Preset = "default"
	}
	rules, err := ParsePreset(head.Preset)
	if err != nil {
		return nil, err
	}

	cfg := RunConfig{
		Preset: head.Preset,
		Options: OptionsConfig{
			EnableComments: true,
			FormatSQL:      true,
		},
		Rules: rules,
	}
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if cfg.Source == "" {
		return nil, fmt.Errorf("source is required (must be oracle, mysql or postgresql)")
	}
	if cfg.Target == "" {
		return nil, fmt.Errorf("target is required (must be oracle, mysql or postgresql)")
	}
	cfg.sourceDialect, err = ParseDialect(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	cfg.targetDialect, err = ParseDialect(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if cfg.sourceDialect == cfg.targetDialect {
		return nil, fmt.Errorf("source and target dialects must differ")
	}

	if cfg.Rules.Warnings.MaxInClauseSize < 0 {
		return nil, fmt.Errorf("rules.warnings.max_in_clause_size must not be negative")
	}

	return &cfg, nil
}

// ConversionOptions converts the TOML option block to engine options.
func (c *RunConfig) ConversionOptions() ConversionOptions {
	return ConversionOptions{
		StrictMode:                  c.Options.StrictMode,
		EnableComments:              c.Options.EnableComments,
		FormatSQL:                   c.Options.FormatSQL,
		ReplaceUnsupportedFunctions: c.Options.ReplaceUnsupportedFunctions,
	}
}
