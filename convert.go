package main

import (
	"context"
	"fmt"
	"time"
)

// Converter sequences a conversion call: resolve rules, classify the
// statement, run either the package path or the generic processor
// pipeline, accumulate warnings and applied rules, and emit the result
// envelope. The session store is the only shared mutable state; the
// pipeline itself is pure.
type Converter struct {
	store     SessionStore
	validator StatementValidator
}

// ConverterOption configures a Converter at construction.
type ConverterOption func(*Converter)

// WithSessionStore injects the session rule store. Defaults to an
// in-memory store.
func WithSessionStore(s SessionStore) ConverterOption {
	return func(c *Converter) { c.store = s }
}

// WithValidator injects an external statement validator consulted
// before any rewrite. Without one, conversion proceeds unvalidated.
func WithValidator(v StatementValidator) ConverterOption {
	return func(c *Converter) { c.validator = v }
}

// NewConverter returns a ready Converter.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{store: NewMemorySessionStore()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetConfigForSession returns the session's rule config, falling back
// to the default preset for unknown sessions.
func (c *Converter) GetConfigForSession(sessionID string) RuleConfig {
	return c.store.Resolve(sessionID)
}

// SetConfigForSession replaces the session's rule config.
func (c *Converter) SetConfigForSession(sessionID string, cfg RuleConfig) {
	c.store.Set(sessionID, cfg)
}

// ClearSessionConfig removes the session entry; later lookups revert
// to the default preset.
func (c *Converter) ClearSessionConfig(sessionID string) {
	c.store.Clear(sessionID)
}

// ConvertForSession converts using the rule config stored for the
// given session.
func (c *Converter) ConvertForSession(ctx context.Context, sessionID, sqlText string, source, target Dialect, opts ConversionOptions) ConversionResult {
	return c.Convert(ctx, sqlText, source, target, opts, c.store.Resolve(sessionID))
}

// Convert runs one conversion call. It never raises: any unexpected
// panic downstream is caught here and reported as a failed result that
// echoes the original SQL.
func (c *Converter) Convert(ctx context.Context, sqlText string, source, target Dialect, opts ConversionOptions, rules RuleConfig) (result ConversionResult) {
	start := time.Now()

	result = ConversionResult{
		OriginalSQL:   sqlText,
		ConvertedSQL:  sqlText,
		SourceDialect: source,
		TargetDialect: target,
		Success:       true,
	}

	defer func() {
		if r := recover(); r != nil {
			result = ConversionResult{
				OriginalSQL:   sqlText,
				ConvertedSQL:  sqlText,
				SourceDialect: source,
				TargetDialect: target,
				Success:       false,
				Error:         fmt.Sprintf("conversion failed: %v", r),
			}
		}
		result.ElapsedMillis = time.Since(start).Milliseconds()
	}()

	// Syntax pre-check through the external validator, when present.
	// A parse failure short-circuits conversion: the original SQL is
	// returned unchanged with a warning, no rewrite is attempted on
	// unparseable input.
	if c.validator != nil {
		report, err := c.validator.Validate(ctx, sqlText, source)
		if err != nil {
			result.Warnings = append(result.Warnings, ConversionWarning{
				Type:     WarnManualReviewNeeded,
				Message:  "statement validator unavailable: " + err.Error(),
				Severity: SeverityInfo,
			})
		} else if !report.Valid {
			result.Warnings = append(result.Warnings, ConversionWarning{
				Type:       WarnUnsupportedStatement,
				Message:    "statement failed syntax validation: " + report.Message,
				Severity:   SeverityError,
				Suggestion: "fix the statement syntax before converting",
			})
			return result
		}
	}

	if isPackageBody(sqlText) {
		converted, warnings, applied := convertPackageBody(sqlText, target, rules, opts)
		result.ConvertedSQL = converted
		result.Warnings = append(result.Warnings, warnings...)
		result.AppliedRules = append(result.AppliedRules, applied...)
	} else {
		out := sqlText
		for _, p := range processors {
			next, warning, fired := p.apply(out, target, rules, opts)
			if !fired {
				continue
			}
			out = next
			result.AppliedRules = append(result.AppliedRules, p.rule)
			if warning != nil {
				result.Warnings = append(result.Warnings, *warning)
			}
		}
		result.ConvertedSQL = out
	}

	if opts.StrictMode {
		for i := range result.Warnings {
			if result.Warnings[i].Type == WarnManualReviewNeeded {
				result.Warnings[i].Severity = SeverityError
			}
		}
	}

	return result
}
