package main

import "regexp"

// Identifier normalization. Quoted-identifier folding runs before the
// schema-qualifier strip so that "HR"."EMPLOYEES" first becomes
// HR.EMPLOYEES and is then unqualified the same way an unquoted
// reference would be.

var (
	reQuotedIdent = regexp.MustCompile(`"([A-Za-z_][\w$#]*)"`)
	// Matches any word.word token pair. This is deliberately broad and
	// can touch dotted expressions that are not schema-qualified
	// references; see the matching-scope note in DESIGN.md.
	reSchemaQualifier = regexp.MustCompile(`\b([A-Za-z_][\w$#]*)\.([A-Za-z_][\w$#]*)\b`)
)

func identifierProcessors() []processor {
	return []processor{
		{
			rule: "Unquote identifiers",
			apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if !cfg.Syntax.UnquoteIdentifiers || !reQuotedIdent.MatchString(sqlText) {
					return sqlText, nil, false
				}
				return reQuotedIdent.ReplaceAllString(sqlText, "$1"), nil, true
			},
		},
		{
			rule: "Strip schema qualifiers",
			apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
				if !cfg.Syntax.StripSchemaQualifiers || !reSchemaQualifier.MatchString(sqlText) {
					return sqlText, nil, false
				}
				// Iterate to a fixed point so multi-part dotted names
				// (a.b.c) collapse fully in a single pass.
				out := sqlText
				for {
					next := reSchemaQualifier.ReplaceAllString(out, "$2")
					if next == out {
						break
					}
					out = next
				}
				return out, nil, true
			},
		},
	}
}
