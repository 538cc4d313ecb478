package main

import "fmt"

// DataTypeRules toggles per-type conversion of Oracle column types.
type DataTypeRules struct {
	ConvertVarchar2  bool `toml:"convert_varchar2"`
	ConvertNvarchar2 bool `toml:"convert_nvarchar2"`
	ConvertNumber    bool `toml:"convert_number"`
	ConvertDate      bool `toml:"convert_date"`
	ConvertClob      bool `toml:"convert_clob"`
	ConvertBlob      bool `toml:"convert_blob"`
}

// FunctionRules toggles Oracle function rewriting and detection.
type FunctionRules struct {
	ConvertNvl           bool `toml:"convert_nvl"`
	ConvertNvl2          bool `toml:"convert_nvl2"`
	ConvertDecode        bool `toml:"convert_decode"`
	ConvertSysdate       bool `toml:"convert_sysdate"`
	ConvertSysGuid       bool `toml:"convert_sys_guid"`
	ConvertDateFunctions bool `toml:"convert_date_functions"` // TO_DATE / TO_CHAR advisories
	ConvertSubstr        bool `toml:"convert_substr"`
}

// DdlRules toggles removal or rewriting of Oracle-specific DDL clauses.
type DdlRules struct {
	RemoveTablespace       bool `toml:"remove_tablespace"`
	RemoveStorageClauses   bool `toml:"remove_storage_clauses"`
	RemoveUsingIndex       bool `toml:"remove_using_index"`
	RemoveConstraintStates bool `toml:"remove_constraint_states"`
	ConvertComments        bool `toml:"convert_comments"` // standalone COMMENT ON statements
	ConvertDefaults        bool `toml:"convert_defaults"` // function calls in DEFAULT clauses
	ConvertTriggers        bool `toml:"convert_triggers"` // CREATE TRIGGER detection
	DetectPartitions       bool `toml:"detect_partitions"`
}

// SyntaxRules toggles statement-level Oracle syntax handling.
type SyntaxRules struct {
	ConvertJoinSyntax     bool `toml:"convert_join_syntax"` // legacy (+) outer joins
	ConvertPivot          bool `toml:"convert_pivot"`       // PIVOT / UNPIVOT
	StripSchemaQualifiers bool `toml:"strip_schema_qualifiers"`
	UnquoteIdentifiers    bool `toml:"unquote_identifiers"`
	ConvertDual           bool `toml:"convert_dual"` // FROM DUAL
}

// WarningSettings controls which warning classes are emitted and the
// numeric thresholds the detectors use.
type WarningSettings struct {
	EnableSyntaxWarnings       bool `toml:"enable_syntax_warnings"`
	EnableFunctionWarnings     bool `toml:"enable_function_warnings"`
	EnablePerformanceWarnings  bool `toml:"enable_performance_warnings"`
	EnableDataTypeWarnings     bool `toml:"enable_data_type_warnings"`
	EnableManualReviewWarnings bool `toml:"enable_manual_review_warnings"`
	// EnableInfoAdvisories makes the silent clause strippers attach an
	// info-severity note describing what was removed. Off by default,
	// on under the strict preset.
	EnableInfoAdvisories bool `toml:"enable_info_advisories"`
	// MaxInClauseSize is the IN-list element count above which a
	// performance warning fires.
	MaxInClauseSize int `toml:"max_in_clause_size"`
}

// RuleConfig is the full, closed rule catalogue for one conversion.
// Presets are total assignments: every toggle has a documented value
// under every preset.
type RuleConfig struct {
	DataTypes DataTypeRules   `toml:"data_types"`
	Functions FunctionRules   `toml:"functions"`
	DDL       DdlRules        `toml:"ddl"`
	Syntax    SyntaxRules     `toml:"syntax"`
	Warnings  WarningSettings `toml:"warnings"`
}

// DefaultRules returns the default preset: every rule on, warning
// classes on, IN-clause threshold 1000, no info advisories.
func DefaultRules() RuleConfig {
	return RuleConfig{
		DataTypes: DataTypeRules{
			ConvertVarchar2:  true,
			ConvertNvarchar2: true,
			ConvertNumber:    true,
			ConvertDate:      true,
			ConvertClob:      true,
			ConvertBlob:      true,
		},
		Functions: FunctionRules{
			ConvertNvl:           true,
			ConvertNvl2:          true,
			ConvertDecode:        true,
			ConvertSysdate:       true,
			ConvertSysGuid:       true,
			ConvertDateFunctions: true,
			ConvertSubstr:        true,
		},
		DDL: DdlRules{
			RemoveTablespace:       true,
			RemoveStorageClauses:   true,
			RemoveUsingIndex:       true,
			RemoveConstraintStates: true,
			ConvertComments:        true,
			ConvertDefaults:        true,
			ConvertTriggers:        true,
			DetectPartitions:       true,
		},
		Syntax: SyntaxRules{
			ConvertJoinSyntax:     true,
			ConvertPivot:          true,
			StripSchemaQualifiers: true,
			UnquoteIdentifiers:    true,
			ConvertDual:           true,
		},
		Warnings: WarningSettings{
			EnableSyntaxWarnings:       true,
			EnableFunctionWarnings:     true,
			EnablePerformanceWarnings:  true,
			EnableDataTypeWarnings:     true,
			EnableManualReviewWarnings: true,
			EnableInfoAdvisories:       false,
			MaxInClauseSize:            1000,
		},
	}
}

// MinimalRules returns the minimal preset: only structurally necessary
// rules on (type conversion except DATE, clause removal the target
// cannot parse around), all advisory detection and warning classes off.
func MinimalRules() RuleConfig {
	return RuleConfig{
		DataTypes: DataTypeRules{
			ConvertVarchar2:  true,
			ConvertNvarchar2: true,
			ConvertNumber:    true,
			ConvertDate:      false,
			ConvertClob:      true,
			ConvertBlob:      true,
		},
		Functions: FunctionRules{
			ConvertNvl:           false,
			ConvertNvl2:          false,
			ConvertDecode:        false,
			ConvertSysdate:       false,
			ConvertSysGuid:       false,
			ConvertDateFunctions: false,
			ConvertSubstr:        false,
		},
		DDL: DdlRules{
			RemoveTablespace:       true,
			RemoveStorageClauses:   true,
			RemoveUsingIndex:       true,
			RemoveConstraintStates: true,
			ConvertComments:        true,
			ConvertDefaults:        true,
			ConvertTriggers:        false,
			DetectPartitions:       false,
		},
		Syntax: SyntaxRules{
			ConvertJoinSyntax:     false,
			ConvertPivot:          false,
			StripSchemaQualifiers: false,
			UnquoteIdentifiers:    true,
			ConvertDual:           true,
		},
		Warnings: WarningSettings{
			EnableSyntaxWarnings:       false,
			EnableFunctionWarnings:     false,
			EnablePerformanceWarnings:  false,
			EnableDataTypeWarnings:     false,
			EnableManualReviewWarnings: false,
			EnableInfoAdvisories:       false,
			MaxInClauseSize:            1000,
		},
	}
}

// StrictRules returns the strict preset: everything in default, plus
// info advisories on every strip and a lowered IN-clause threshold.
func StrictRules() RuleConfig {
	cfg := DefaultRules()
	cfg.Warnings.EnableInfoAdvisories = true
	cfg.Warnings.MaxInClauseSize = 100
	return cfg
}

// ParsePreset resolves a preset by name.
func ParsePreset(name string) (RuleConfig, error) {
	switch name {
	case "default":
		return DefaultRules(), nil
	case "minimal":
		return MinimalRules(), nil
	case "strict":
		return StrictRules(), nil
	default:
		return RuleConfig{}, fmt.Errorf("unknown rule preset %q (must be one of: default, minimal, strict)", name)
	}
}

// RuleCategory groups rule identifiers by concern.
type RuleCategory int

const (
	CategoryDataTypes RuleCategory = iota
	CategoryFunctions
	CategoryDDL
	CategorySyntax
	CategoryWarnings
)

func (c RuleCategory) String() string {
	switch c {
	case CategoryDataTypes:
		return "data_types"
	case CategoryFunctions:
		return "functions"
	case CategoryDDL:
		return "ddl"
	case CategorySyntax:
		return "syntax"
	case CategoryWarnings:
		return "warnings"
	default:
		return fmt.Sprintf("RuleCategory(%d)", int(c))
	}
}

// RuleID names one toggle in the closed rule catalogue.
type RuleID int

const (
	RuleConvertVarchar2 RuleID = iota
	RuleConvertNvarchar2
	RuleConvertNumber
	RuleConvertDate
	RuleConvertClob
	RuleConvertBlob

	RuleConvertNvl
	RuleConvertNvl2
	RuleConvertDecode
	RuleConvertSysdate
	RuleConvertSysGuid
	RuleConvertDateFunctions
	RuleConvertSubstr

	RuleRemoveTablespace
	RuleRemoveStorageClauses
	RuleRemoveUsingIndex
	RuleRemoveConstraintStates
	RuleConvertComments
	RuleConvertDefaults
	RuleConvertTriggers
	RuleDetectPartitions

	RuleConvertJoinSyntax
	RuleConvertPivot
	RuleStripSchemaQualifiers
	RuleUnquoteIdentifiers
	RuleConvertDual

	RuleSyntaxWarnings
	RuleFunctionWarnings
	RulePerformanceWarnings
	RuleDataTypeWarnings
	RuleManualReviewWarnings
	RuleInfoAdvisories
)

// IsEnabled reports whether the given rule is on under this config.
// The catalogue is closed and compiled in: an id outside the given
// category, or an unknown id, is a programming error and panics.
func (c RuleConfig) IsEnabled(cat RuleCategory, id RuleID) bool {
	var got RuleCategory
	var on bool

	switch id {
	case RuleConvertVarchar2:
		got, on = CategoryDataTypes, c.DataTypes.ConvertVarchar2
	case RuleConvertNvarchar2:
		got, on = CategoryDataTypes, c.DataTypes.ConvertNvarchar2
	case RuleConvertNumber:
		got, on = CategoryDataTypes, c.DataTypes.ConvertNumber
	case RuleConvertDate:
		got, on = CategoryDataTypes, c.DataTypes.ConvertDate
	case RuleConvertClob:
		got, on = CategoryDataTypes, c.DataTypes.ConvertClob
	case RuleConvertBlob:
		got, on = CategoryDataTypes, c.DataTypes.ConvertBlob
	case RuleConvertNvl:
		got, on = CategoryFunctions, c.Functions.ConvertNvl
	case RuleConvertNvl2:
		got, on = CategoryFunctions, c.Functions.ConvertNvl2
	case RuleConvertDecode:
		got, on = CategoryFunctions, c.Functions.ConvertDecode
	case RuleConvertSysdate:
		got, on = CategoryFunctions, c.Functions.ConvertSysdate
	case RuleConvertSysGuid:
		got, on = CategoryFunctions, c.Functions.ConvertSysGuid
	case RuleConvertDateFunctions:
		got, on = CategoryFunctions, c.Functions.ConvertDateFunctions
	case RuleConvertSubstr:
		got, on = CategoryFunctions, c.Functions.ConvertSubstr
	case RuleRemoveTablespace:
		got, on = CategoryDDL, c.DDL.RemoveTablespace
	case RuleRemoveStorageClauses:
		got, on = CategoryDDL, c.DDL.RemoveStorageClauses
	case RuleRemoveUsingIndex:
		got, on = CategoryDDL, c.DDL.RemoveUsingIndex
	case RuleRemoveConstraintStates:
		got, on = CategoryDDL, c.DDL.RemoveConstraintStates
	case RuleConvertComments:
		got, on = CategoryDDL, c.DDL.ConvertComments
	case RuleConvertDefaults:
		got, on = CategoryDDL, c.DDL.ConvertDefaults
	case RuleConvertTriggers:
		got, on = CategoryDDL, c.DDL.ConvertTriggers
	case RuleDetectPartitions:
		got, on = CategoryDDL, c.DDL.DetectPartitions
	case RuleConvertJoinSyntax:
		got, on = CategorySyntax, c.Syntax.ConvertJoinSyntax
	case RuleConvertPivot:
		got, on = CategorySyntax, c.Syntax.ConvertPivot
	case RuleStripSchemaQualifiers:
		got, on = CategorySyntax, c.Syntax.StripSchemaQualifiers
	case RuleUnquoteIdentifiers:
		got, on = CategorySyntax, c.Syntax.UnquoteIdentifiers
	case RuleConvertDual:
		got, on = CategorySyntax, c.Syntax.ConvertDual
	case RuleSyntaxWarnings:
		got, on = CategoryWarnings, c.Warnings.EnableSyntaxWarnings
	case RuleFunctionWarnings:
		got, on = CategoryWarnings, c.Warnings.EnableFunctionWarnings
	case RulePerformanceWarnings:
		got, on = CategoryWarnings, c.Warnings.EnablePerformanceWarnings
	case RuleDataTypeWarnings:
		got, on = CategoryWarnings, c.Warnings.EnableDataTypeWarnings
	case RuleManualReviewWarnings:
		got, on = CategoryWarnings, c.Warnings.EnableManualReviewWarnings
	case RuleInfoAdvisories:
		got, on = CategoryWarnings, c.Warnings.EnableInfoAdvisories
	default:
		panic(fmt.Sprintf("unknown rule id %d", int(id)))
	}

	if got != cat {
		panic(fmt.Sprintf("rule id %d belongs to category %s, not %s", int(id), got, cat))
	}
	return on
}

// RuleOption customizes one category block when building a RuleConfig.
type RuleOption func(*RuleConfig)

// WithDataTypeRules replaces the data type category.
func WithDataTypeRules(r DataTypeRules) RuleOption {
	return func(c *RuleConfig) { c.DataTypes = r }
}

// WithFunctionRules replaces the function category.
func WithFunctionRules(r FunctionRules) RuleOption {
	return func(c *RuleConfig) { c.Functions = r }
}

// WithDdlRules replaces the DDL category.
func WithDdlRules(r DdlRules) RuleOption {
	return func(c *RuleConfig) { c.DDL = r }
}

// WithSyntaxRules replaces the syntax category.
func WithSyntaxRules(r SyntaxRules) RuleOption {
	return func(c *RuleConfig) { c.Syntax = r }
}

// WithWarningSettings replaces the warning settings.
func WithWarningSettings(w WarningSettings) RuleOption {
	return func(c *RuleConfig) { c.Warnings = w }
}

// NewRuleConfig builds a config from the default preset with the given
// category blocks replaced. Composing options is equivalent to direct
// field-by-field construction; there are no hidden defaults beyond
// DefaultRules.
func NewRuleConfig(opts ...RuleOption) RuleConfig {
	cfg := DefaultRules()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
