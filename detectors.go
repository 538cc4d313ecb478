package main

import (
	"fmt"
	"regexp"
	"strings"
)

// Detection-only stages plus the FROM DUAL rewrite. The partition
// detector intentionally re-fires as long as the partition clause
// remains in the text; it never rewrites, only flags.

var (
	reFromDual      = regexp.MustCompile(`(?i)\s+FROM\s+DUAL\b`)
	rePartitionBy   = regexp.MustCompile(`(?i)\bPARTITION\s+BY\s+(RANGE|LIST|HASH)\b`)
	rePivot         = regexp.MustCompile(`(?i)\b(UNPIVOT|PIVOT)\s*\(`)
	reOracleJoin    = regexp.MustCompile(`\(\s*\+\s*\)`)
	reCreateTrigger = regexp.MustCompile(`(?i)\bCREATE\s+(OR\s+REPLACE\s+)?TRIGGER\b`)
	reInList        = regexp.MustCompile(`(?i)\bIN\s*\(([^()]+)\)`)
)

func detectorProcessors() []processor {
	return []processor{
		{
			rule: "Remove FROM DUAL",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Syntax.ConvertDual || !reFromDual.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return reFromDual.ReplaceAllString(sqlText, ""), nil, true
			},
		},
		{
			rule: "Detect partition syntax",
			apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if !cfg.DDL.DetectPartitions || !cfg.Warnings.EnableManualReviewWarnings {
					return sqlText, nil, false
				}
				m := rePartitionBy.FindStringSubmatch(sqlText)
				if m == nil {
					return sqlText, nil, false
				}
				return sqlText, &ConversionWarning{
					Type:       WarnManualReviewNeeded,
					Message:    fmt.Sprintf("PARTITION BY %s clause detected; partitioning DDL differs per engine", strings.ToUpper(m[1])),
					Severity:   SeverityWarning,
					Suggestion: "recreate the partitioning scheme with the target dialect's partition DDL",
				}, true
			},
		},
		{
			rule: "Detect PIVOT syntax",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Syntax.ConvertPivot || !cfg.Warnings.EnableSyntaxWarnings {
					return sqlText, nil, false
				}
				m := rePivot.FindStringSubmatch(sqlText)
				if m == nil {
					return sqlText, nil, false
				}
				suggestion := "rewrite using conditional aggregation (CASE inside aggregate functions)"
				if target == PostgreSQL {
					suggestion = "rewrite using conditional aggregation or the crosstab() function from tablefunc"
				}
				return sqlText, &ConversionWarning{
					Type:       WarnUnsupportedStatement,
					Message:    strings.ToUpper(m[1]) + " is not supported by the target dialect",
					Severity:   SeverityWarning,
					Suggestion: suggestion,
				}, true
			},
		},
		{
			rule: "Detect Oracle join syntax",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.Syntax.ConvertJoinSyntax || !cfg.Warnings.EnableSyntaxWarnings {
					return sqlText, nil, false
				}
				if !reOracleJoin.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return sqlText, &ConversionWarning{
					Type:       WarnSyntaxDifference,
					Message:    "legacy Oracle (+) outer join syntax detected",
					Severity:   SeverityWarning,
					Suggestion: "rewrite using ANSI LEFT JOIN / RIGHT JOIN",
				}, true
			},
		},
		{
			rule: "Detect trigger definition",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DDL.ConvertTriggers || !cfg.Warnings.EnableManualReviewWarnings {
					return sqlText, nil, false
				}
				if !reCreateTrigger.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return sqlText, &ConversionWarning{
					Type:       WarnManualReviewNeeded,
					Message:    "Oracle trigger definition detected; trigger body and :NEW/:OLD references need manual conversion",
					Severity:   SeverityWarning,
					Suggestion: "port the trigger body to the target dialect's trigger syntax",
				}, true
			},
		},
		{
			rule: "Detect oversized IN clause",
			apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if !cfg.Warnings.EnablePerformanceWarnings || cfg.Warnings.MaxInClauseSize <= 0 {
					return sqlText, nil, false
				}
				limit := cfg.Warnings.MaxInClauseSize
				for _, m := range reInList.FindAllStringSubmatch(sqlText, -1) {
					if n := strings.Count(m[1], ",") + 1; n > limit {
						return sqlText, &ConversionWarning{
							Type:       WarnPerformance,
							Message:    fmt.Sprintf("IN clause with %d elements exceeds the configured threshold of %d", n, limit),
							Severity:   SeverityWarning,
							Suggestion: "load the values into a temporary table and join against it",
						}, true
					}
				}
				return sqlText, nil, false
			},
		},
	}
}
