package main

import "regexp"

// Config- and dialect-gated removal of Oracle DDL clauses. USING INDEX
// runs before the bare TABLESPACE stripper so that an inline
// "USING INDEX idx TABLESPACE ts" is removed as one unit, leaving the
// constraint clause itself valid.

var (
	// The nameless form "USING INDEX TABLESPACE ts" is matched by the
	// first alternative so the index-name group cannot eat TABLESPACE.
	reUsingIndex      = regexp.MustCompile(`(?i)\s*\bUSING\s+INDEX(\s+TABLESPACE\s+[A-Za-z_][\w$#]*|(\s+[A-Za-z_][\w$#]*)?(\s*\([^)]*\))?(\s+TABLESPACE\s+[A-Za-z_][\w$#]*)?)`)
	reTablespace      = regexp.MustCompile(`(?i)\s*\bTABLESPACE\s+"?[A-Za-z_][\w$#]*"?`)
	reStorageClause   = regexp.MustCompile(`(?i)\s*\bSTORAGE\s*\([^)]*\)`)
	reStorageAttrs    = regexp.MustCompile(`(?i)\s*\b(PCTFREE|PCTUSED|INITRANS|MAXTRANS)\s+\d+\b`)
	reConstraintState = regexp.MustCompile(`(?i)\s*\b(ENABLE|DISABLE)(\s+(VALIDATE|NOVALIDATE))?\b`)
	reCommentOn       = regexp.MustCompile(`(?i)\s*\bCOMMENT\s+ON\s+(TABLE|COLUMN)\s+[^;]+;?`)
	reDefaultSysdate  = regexp.MustCompile(`(?i)\bDEFAULT\s+SYSDATE\b`)
	reDefaultSysGuid  = regexp.MustCompile(`(?i)\bDEFAULT\s+SYS_GUID\s*\(\s*\)`)
)

func ddlClauseProcessors() []processor {
	return []processor{
		{
			rule: "Remove USING INDEX clause",
			apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if !cfg.DDL.RemoveUsingIndex || !reUsingIndex.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return reUsingIndex.ReplaceAllString(sqlText, ""), nil, true
			},
		},
		{
			rule: "Remove TABLESPACE clause",
			apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if !cfg.DDL.RemoveTablespace || !reTablespace.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return reTablespace.ReplaceAllString(sqlText, ""), nil, true
			},
		},
		{
			rule: "Remove storage clauses",
			apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if !cfg.DDL.RemoveStorageClauses {
					return sqlText, nil, false
				}
				if !reStorageClause.MatchString(sqlText) && !reStorageAttrs.MatchString(sqlText) {
					return sqlText, nil, false
				}
				out := reStorageClause.ReplaceAllString(sqlText, "")
				out = reStorageAttrs.ReplaceAllString(out, "")
				return out, nil, true
			},
		},
		{
			// Constraint state clauses only make sense on Oracle, so
			// this stage is skipped when Oracle is the target.
			rule: "Remove constraint state clause",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DDL.RemoveConstraintStates || !reConstraintState.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return reConstraintState.ReplaceAllString(sqlText, ""), nil, true
			},
		},
		{
			// MySQL has no standalone COMMENT ON statement; the comment
			// has to move inline onto the column or table definition.
			rule: "Remove COMMENT ON statement",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target != MySQL || !cfg.DDL.ConvertComments || !reCommentOn.MatchString(sqlText) {
					return sqlText, nil, false
				}
				out := reCommentOn.ReplaceAllString(sqlText, "")
				var w *ConversionWarning
				if cfg.Warnings.EnableSyntaxWarnings {
					w = &ConversionWarning{
						Type:       WarnSyntaxDifference,
						Message:    "MySQL has no standalone COMMENT ON statement; the comment was removed",
						Severity:   SeverityWarning,
						Suggestion: "attach the comment inline with COMMENT '...' on the column or table definition",
					}
				}
				return out, w, true
			},
		},
		{
			rule: "Convert default value functions",
			apply: func(sqlText string, target Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if target == Oracle || !cfg.DDL.ConvertDefaults {
					return sqlText, nil, false
				}
				if !reDefaultSysdate.MatchString(sqlText) && !reDefaultSysGuid.MatchString(sqlText) {
					return sqlText, nil, false
				}
				out := reDefaultSysdate.ReplaceAllString(sqlText, "DEFAULT CURRENT_TIMESTAMP")
				switch target {
				case PostgreSQL:
					out = reDefaultSysGuid.ReplaceAllString(out, "DEFAULT gen_random_uuid()")
				case MySQL:
					out = reDefaultSysGuid.ReplaceAllString(out, "DEFAULT (UUID())")
				}
				return out, nil, true
			},
		},
	}
}
