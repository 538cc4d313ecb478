package main

import (
	"strings"
	"testing"
)

func TestParseConfigMinimalFile(t *testing.T) {
	cfg, err := parseConfig(`
source = "oracle"
target = "postgresql"
`)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.sourceDialect != Oracle || cfg.targetDialect != PostgreSQL {
		t.Errorf("dialects = %s -> %s", cfg.sourceDialect, cfg.targetDialect)
	}
	if cfg.Preset != "default" || cfg.Rules != DefaultRules() {
		t.Errorf("preset = %q, rules should be the default preset", cfg.Preset)
	}
	if !cfg.Options.EnableComments || !cfg.Options.FormatSQL {
		t.Errorf("option defaults = %+v", cfg.Options)
	}
}

func TestParseConfigPresetSeedsRules(t *testing.T) {
	cfg, err := parseConfig(`
source = "oracle"
target = "mysql"
preset = "minimal"
`)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.Rules != MinimalRules() {
		t.Errorf("rules = %+v, want the minimal preset", cfg.Rules)
	}
}

func TestParseConfigRuleOverrides(t *testing.T) {
	// Per-rule keys override the preset they were seeded from.
	cfg, err := parseConfig(`
source = "oracle"
target = "postgresql"
preset = "minimal"

[rules.data_types]
convert_date = true

[rules.warnings]
max_in_clause_size = 250
`)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if !cfg.Rules.DataTypes.ConvertDate {
		t.Error("override should enable DATE conversion on top of minimal")
	}
	if cfg.Rules.Warnings.MaxInClauseSize != 250 {
		t.Errorf("MaxInClauseSize = %d, want 250", cfg.Rules.Warnings.MaxInClauseSize)
	}
	// Untouched minimal settings survive the override decode.
	if cfg.Rules.Functions.ConvertNvl {
		t.Error("minimal preset keeps NVL conversion off")
	}
	if !cfg.Rules.DataTypes.ConvertVarchar2 {
		t.Error("minimal preset keeps VARCHAR2 conversion on")
	}
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := parseConfig(`
source = "oracle"
target = "postgresql"
tarket = "mysql"
`)
	if err == nil || !strings.Contains(err.Error(), "unknown config keys") {
		t.Errorf("want unknown-key error, got %v", err)
	}
}

func TestParseConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing source",
			data: `target = "mysql"`,
			want: "source is required",
		},
		{
			name: "missing target",
			data: `source = "oracle"`,
			want: "target is required",
		},
		{
			name: "bad dialect",
			data: "source = \"oracle\"\ntarget = \"sqlite\"",
			want: "unknown dialect",
		},
		{
			name: "same dialects",
			data: "source = \"oracle\"\ntarget = \"oracle\"",
			want: "must differ",
		},
		{
			name: "bad preset",
			data: "source = \"oracle\"\ntarget = \"mysql\"\npreset = \"lenient\"",
			want: "preset",
		},
		{
			name: "negative in-clause threshold",
			data: "source = \"oracle\"\ntarget = \"mysql\"\n[rules.warnings]\nmax_in_clause_size = -1",
			want: "must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.data)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunConfigConversionOptions(t *testing.T) {
	cfg, err := parseConfig(`
source = "oracle"
target = "mysql"

[options]
strict_mode = true
enable_comments = false
replace_unsupported_functions = true
`)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	opts := cfg.ConversionOptions()
	if !opts.StrictMode || opts.EnableComments || !opts.ReplaceUnsupportedFunctions {
		t.Errorf("options = %+v", opts)
	}
	if !opts.FormatSQL {
		t.Error("format_sql should default on")
	}
}
