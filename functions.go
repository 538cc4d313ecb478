package main

import "regexp"

// Oracle function handling for generic statements. Name-level rewrites
// only; functions whose arguments would need re-parsing (DECODE, NVL2)
// are detected and warned about instead of rewritten.

var (
	reNvlCall     = regexp.MustCompile(`(?i)\bNVL\s*\(`)
	reNvl2Call    = regexp.MustCompile(`(?i)\bNVL2\s*\(`)
	reDecodeCall  = regexp.MustCompile(`(?i)\bDECODE\s*\(`)
	reSysdate     = regexp.MustCompile(`(?i)\bSYSDATE\b`)
	reSysGuidCall = regexp.MustCompile(`(?i)\bSYS_GUID\s*\(\s*\)`)
	reToDateCall  = regexp.MustCompile(`(?i)\bTO_DATE\s*\(`)
	reToCharCall  = regexp.MustCompile(`(?i)\bTO_CHAR\s*\(`)
	reSubstrNeg   = regexp.MustCompile(`(?i)\bSUBSTR\s*\([^,()]+,\s*-\d`)
)

func functionProcessors() []processor {
	return []processor{
		{
			rule: "Convert NVL function",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Functions.ConvertNvl || !reNvlCall.MatchString(sqlText) {
					return sqlText, nil, false
				}
				repl := "COALESCE("
				if target == MySQL {
					repl = "IFNULL("
				}
				return reNvlCall.ReplaceAllString(sqlText, repl), nil, true
			},
		},
		{
			rule: "Detect NVL2 function",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Functions.ConvertNvl2 || !cfg.Warnings.EnableFunctionWarnings {
					return sqlText, nil, false
				}
				if !reNvl2Call.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return sqlText, &ConversionWarning{
					Type:       WarnUnsupportedFunction,
					Message:    "NVL2 has no direct equivalent in the target dialect",
					Severity:   SeverityWarning,
					Suggestion: "rewrite as CASE WHEN expr IS NOT NULL THEN value1 ELSE value2 END",
				}, true
			},
		},
		{
			rule: "Detect DECODE function",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Functions.ConvertDecode || !cfg.Warnings.EnableFunctionWarnings {
					return sqlText, nil, false
				}
				if !reDecodeCall.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return sqlText, &ConversionWarning{
					Type:       WarnUnsupportedFunction,
					Message:    "DECODE has no direct equivalent in the target dialect",
					Severity:   SeverityWarning,
					Suggestion: "rewrite as a searched CASE expression",
				}, true
			},
		},
		{
			rule: "Convert SYSDATE function",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Functions.ConvertSysdate || !reSysdate.MatchString(sqlText) {
					return sqlText, nil, false
				}
				repl := "CURRENT_TIMESTAMP"
				if target == MySQL {
					repl = "NOW()"
				}
				return reSysdate.ReplaceAllString(sqlText, repl), nil, true
			},
		},
		{
			rule: "Convert SYS_GUID function",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Functions.ConvertSysGuid || !reSysGuidCall.MatchString(sqlText) {
					return sqlText, nil, false
				}
				repl := "gen_random_uuid()"
				if target == MySQL {
					repl = "UUID()"
				}
				return reSysGuidCall.ReplaceAllString(sqlText, repl), nil, true
			},
		},
		{
			// TO_DATE/TO_CHAR format models differ between engines.
			// Under replaceUnsupportedFunctions the MySQL path renames
			// the calls; the format string still needs manual work, so
			// a warning fires either way.
			rule: "Convert date functions",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, opts ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Functions.ConvertDateFunctions {
					return sqlText, nil, false
				}
				if !reToDateCall.MatchString(sqlText) && !reToCharCall.MatchString(sqlText) {
					return sqlText, nil, false
				}
				out := sqlText
				if target == MySQL && opts.ReplaceUnsupportedFunctions {
					out = reToDateCall.ReplaceAllString(out, "STR_TO_DATE(")
					out = reToCharCall.ReplaceAllString(out, "DATE_FORMAT(")
				}
				var w *ConversionWarning
				if cfg.Warnings.EnableFunctionWarnings {
					w = &ConversionWarning{
						Type:       WarnPartialSupport,
						Message:    "TO_DATE/TO_CHAR format models are Oracle-specific",
						Severity:   SeverityWarning,
						Suggestion: "translate the format string to the target dialect's format specifiers",
					}
				}
				if out == sqlText && w == nil {
					// Nothing rewritten and nothing to report.
					return sqlText, nil, false
				}
				return out, w, true
			},
		},
		{
			// RAISE_APPLICATION_ERROR appearing outside a package body
			// (anonymous blocks, standalone routines) gets the same
			// treatment as the package path: RAISE EXCEPTION on
			// PostgreSQL, SIGNAL on MySQL for literal messages.
			rule: "Convert RAISE_APPLICATION_ERROR",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !reRaiseAppErr.MatchString(sqlText) {
					return sqlText, nil, false
				}
				var out string
				var w *ConversionWarning
				switch target {
				case PostgreSQL:
					// The numeric error code has no RAISE equivalent
					// and is dropped; the message expression is kept.
					out = reRaiseAppErr.ReplaceAllString(sqlText, "RAISE EXCEPTION $1;")
				case MySQL:
					out = reRaiseLiteral.ReplaceAllString(sqlText, "SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = $1;")
					if reRaiseAppErr.MatchString(out) && cfg.Warnings.EnableFunctionWarnings {
						w = &ConversionWarning{
							Type:       WarnPartialSupport,
							Message:    "RAISE_APPLICATION_ERROR with a non-literal message cannot become SIGNAL directly",
							Severity:   SeverityWarning,
							Suggestion: "assign the message to a variable and SIGNAL with SET MESSAGE_TEXT = @msg",
						}
					}
				}
				if out == sqlText && w == nil {
					return sqlText, nil, false
				}
				return out, w, true
			},
		},
		{
			rule: "Detect SUBSTR negative position",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Functions.ConvertSubstr || !cfg.Warnings.EnableFunctionWarnings {
					return sqlText, nil, false
				}
				if !reSubstrNeg.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return sqlText, &ConversionWarning{
					Type:       WarnPartialSupport,
					Message:    "SUBSTR with a negative position counts from the end in Oracle; target semantics differ",
					Severity:   SeverityWarning,
					Suggestion: "verify the negative-offset behavior or rewrite using length arithmetic",
				}, true
			},
		},
	}
}
