package main

import "regexp"

// Oracle column type conversion for generic DDL/DML statements. Each
// type has its own processor so a firing conversion records its own
// applied rule, and so presets can disable individual types. All of
// these are no-ops when Oracle itself is the target.
//
// Package routine parameter/return types take a different MySQL
// mapping (see package_convert.go): generic DDL keeps declared
// precision where the target supports it.

var (
	reVarchar2Sized  = regexp.MustCompile(`(?i)\bVARCHAR2\s*\(\s*(\d+)(?:\s+(?:BYTE|CHAR))?\s*\)`)
	reVarchar2Bare   = regexp.MustCompile(`(?i)\bVARCHAR2\b`)
	reNvarchar2Sized = regexp.MustCompile(`(?i)\bNVARCHAR2\s*\(\s*(\d+)\s*\)`)
	reNvarchar2Bare  = regexp.MustCompile(`(?i)\bNVARCHAR2\b`)
	reNumberSized    = regexp.MustCompile(`(?i)\bNUMBER\s*(\(\s*\d+\s*(,\s*\d+\s*)?\))`)
	reNumberBare     = regexp.MustCompile(`(?i)\bNUMBER\b`)
	reDateType       = regexp.MustCompile(`(?i)\bDATE\b`)
	reClobType       = regexp.MustCompile(`(?i)\b(N?CLOB)\b`)
	reBlobType       = regexp.MustCompile(`(?i)\bBLOB\b`)
)

func dataTypeProcessors() []processor {
	return []processor{
		{
			rule: "Convert VARCHAR2 type",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DataTypes.ConvertVarchar2 || !reVarchar2Bare.MatchString(sqlText) {
					return sqlText, nil, false
				}
				out := reVarchar2Sized.ReplaceAllString(sqlText, "VARCHAR($1)")
				out = reVarchar2Bare.ReplaceAllString(out, "VARCHAR")
				return out, nil, true
			},
		},
		{
			rule: "Convert NVARCHAR2 type",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DataTypes.ConvertNvarchar2 || !reNvarchar2Bare.MatchString(sqlText) {
					return sqlText, nil, false
				}
				out := reNvarchar2Sized.ReplaceAllString(sqlText, "VARCHAR($1)")
				out = reNvarchar2Bare.ReplaceAllString(out, "VARCHAR")
				var w *ConversionWarning
				if cfg.Warnings.EnableDataTypeWarnings {
					w = &ConversionWarning{
						Type:       WarnDataTypeMismatch,
						Message:    "NVARCHAR2 mapped to VARCHAR; national character semantics depend on column charset",
						Severity:   SeverityInfo,
						Suggestion: "verify the target column character set covers the source data",
					}
				}
				return out, w, true
			},
		},
		{
			rule: "Convert NUMBER type",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DataTypes.ConvertNumber || !reNumberBare.MatchString(sqlText) {
					return sqlText, nil, false
				}
				name := "NUMERIC"
				if target == MySQL {
					name = "DECIMAL"
				}
				out := reNumberSized.ReplaceAllString(sqlText, name+"$1")
				out = reNumberBare.ReplaceAllString(out, name)
				return out, nil, true
			},
		},
		{
			rule: "Convert DATE type",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DataTypes.ConvertDate || !reDateType.MatchString(sqlText) {
					return sqlText, nil, false
				}
				// Oracle DATE carries a time component, so a plain
				// target DATE would silently truncate.
				repl := "TIMESTAMP"
				if target == MySQL {
					repl = "DATETIME"
				}
				out := reDateType.ReplaceAllString(sqlText, repl)
				var w *ConversionWarning
				if cfg.Warnings.EnableDataTypeWarnings {
					w = &ConversionWarning{
						Type:     WarnDataTypeMismatch,
						Message:  "Oracle DATE includes a time component and was mapped to " + repl,
						Severity: SeverityInfo,
					}
				}
				return out, w, true
			},
		},
		{
			rule: "Convert CLOB type",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DataTypes.ConvertClob || !reClobType.MatchString(sqlText) {
					return sqlText, nil, false
				}
				repl := "TEXT"
				if target == MySQL {
					repl = "LONGTEXT"
				}
				return reClobType.ReplaceAllString(sqlText, repl), nil, true
			},
		},
		{
			rule: "Convert BLOB type",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DataTypes.ConvertBlob || !reBlobType.MatchString(sqlText) {
					return sqlText, nil, false
				}
				repl := "BYTEA"
				if target == MySQL {
					repl = "LONGBLOB"
				}
				return reBlobType.ReplaceAllString(sqlText, repl), nil, true
			},
		},
	}
}
