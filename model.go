package main

import (
	"fmt"
	"strings"
)

// Dialect identifies a supported SQL engine, as conversion source or target.
type Dialect int

const (
	MySQL Dialect = iota
	PostgreSQL
	Oracle
)

// String returns the canonical uppercase name of the dialect.
func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "MYSQL"
	case PostgreSQL:
		return "POSTGRESQL"
	case Oracle:
		return "ORACLE"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect resolves a dialect from its name, case-insensitively.
// Accepts common short forms ("pg", "postgres").
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql":
		return MySQL, nil
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "oracle":
		return Oracle, nil
	default:
		return 0, fmt.Errorf("unknown dialect %q (must be one of: mysql, postgresql, oracle)", s)
	}
}

// WarningType classifies a conversion warning.
type WarningType int

const (
	WarnSyntaxDifference WarningType = iota
	WarnUnsupportedFunction
	WarnUnsupportedStatement
	WarnPartialSupport
	WarnManualReviewNeeded
	WarnPerformance
	WarnDataTypeMismatch
)

func (t WarningType) String() string {
	switch t {
	case WarnSyntaxDifference:
		return "syntax-difference"
	case WarnUnsupportedFunction:
		return "unsupported-function"
	case WarnUnsupportedStatement:
		return "unsupported-statement"
	case WarnPartialSupport:
		return "partial-support"
	case WarnManualReviewNeeded:
		return "manual-review-needed"
	case WarnPerformance:
		return "performance-warning"
	case WarnDataTypeMismatch:
		return "data-type-mismatch"
	default:
		return fmt.Sprintf("WarningType(%d)", int(t))
	}
}

// Severity grades how urgent a warning is for the migrating developer.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ConversionWarning is an immutable advisory attached to a conversion result.
// Warnings never abort a conversion.
type ConversionWarning struct {
	Type       WarningType
	Message    string
	Severity   Severity
	Suggestion string // optional follow-up action, empty when none applies
}

// ConversionOptions carries per-call behavior switches.
type ConversionOptions struct {
	// StrictMode escalates manual-review warnings to error severity.
	// Reserved for stricter validation; it never blocks a conversion.
	StrictMode bool
	// EnableComments controls whether explanatory "-- " comments are
	// emitted into converted output (package passthroughs, markers).
	EnableComments bool
	// FormatSQL defers output to an external pretty-printer. The engine
	// records the intent; formatting itself is a collaborator concern.
	FormatSQL bool
	// ReplaceUnsupportedFunctions attempts best-effort substitution for
	// functions with no direct target equivalent instead of passing
	// them through with a warning.
	ReplaceUnsupportedFunctions bool
}

// DefaultOptions returns the documented option defaults.
func DefaultOptions() ConversionOptions {
	return ConversionOptions{
		StrictMode:                  false,
		EnableComments:              true,
		FormatSQL:                   true,
		ReplaceUnsupportedFunctions: false,
	}
}

// ExtractedRoutine is the intermediate form of one PROCEDURE or FUNCTION
// pulled out of an Oracle package body. Raw fields keep the source text
// untouched; translation happens at assembly time.
type ExtractedRoutine struct {
	Name       string
	Params     string // raw parameter-list text, without the surrounding parens
	Body       string // raw body text between IS/AS and the closing END
	ReturnType string // raw RETURN type text, empty for procedures
	IsFunction bool
}

// ConversionResult is the envelope returned for every conversion call.
// The engine retains no history; the caller owns the result.
type ConversionResult struct {
	OriginalSQL   string
	ConvertedSQL  string
	SourceDialect Dialect
	TargetDialect Dialect
	Warnings      []ConversionWarning
	AppliedRules  []string
	ElapsedMillis int64
	Success       bool
	Error         string // empty unless Success is false
}
