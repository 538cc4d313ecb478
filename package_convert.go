package main

import (
	"fmt"
	"regexp"
	"strings"
)

// Oracle PACKAGE BODY conversion: extract every nested PROCEDURE and
// FUNCTION and re-emit each as a standalone routine in the target
// dialect. Extraction is structural (name, parameter list, optional
// RETURN type, BEGIN/END-delimited body), not grammar-complete.

var (
	rePackageBodyHeader = regexp.MustCompile(`(?is)\bCREATE\s+(?:OR\s+REPLACE\s+)?PACKAGE\s+BODY\s+("?[A-Za-z_][\w$#]*"?(?:\s*\.\s*"?[A-Za-z_][\w$#]*"?)?)\s+(?:IS|AS)\b`)
	reRoutineHeader     = regexp.MustCompile(`(?i)\b(PROCEDURE|FUNCTION)\s+([A-Za-z_][\w$#]*)`)
	reFunctionReturn    = regexp.MustCompile(`(?is)^\s*RETURN\s+(.*?)\s*\b(?:IS|AS)\b`)
	reRoutineIsAs       = regexp.MustCompile(`(?is)^\s*(?:IS|AS)\b`)
	reBlockToken        = regexp.MustCompile(`[A-Za-z_][\w$#]*|;`)

	reInOutParam   = regexp.MustCompile(`(?i)\bIN\s+OUT\b`)
	reBooleanType  = regexp.MustCompile(`(?i)\bBOOLEAN\b`)
	reDbmsOutput   = regexp.MustCompile(`(?is)DBMS_OUTPUT\s*\.\s*PUT_LINE\s*\(\s*(.*?)\)\s*;`)
	reRaiseAppErr  = regexp.MustCompile(`(?is)RAISE_APPLICATION_ERROR\s*\(\s*-?\d+\s*,\s*(.*?)\)\s*;?`)
	reRaiseLiteral = regexp.MustCompile(`(?is)RAISE_APPLICATION_ERROR\s*\(\s*-?\d+\s*,\s*('(?:[^']|'')*')\s*\)\s*;?`)
	reAssignment   = regexp.MustCompile(`(?m)^(\s*)([A-Za-z_][\w$#]*)\s*:=\s*`)
	reParamMode    = regexp.MustCompile(`(?i)(^|,)(\s*)([A-Za-z_][\w$#]*)\s+(INOUT|OUT|IN)\b`)
	reReturnStmt   = regexp.MustCompile(`(?i)\bRETURN\b`)
	reLeadDeclare  = regexp.MustCompile(`(?is)^\s*DECLARE\b`)
	reFinalEnd     = regexp.MustCompile(`(?i)\bEND\s*$`)
)

// isPackageBody reports whether the statement defines an Oracle
// package body, which takes the dedicated conversion path.
func isPackageBody(sqlText string) bool {
	return rePackageBodyHeader.MatchString(sqlText)
}

// packageNameOf returns the unquoted, unqualified package name from
// the package body header, or "" when the header does not match.
func packageNameOf(sqlText string) string {
	m := rePackageBodyHeader.FindStringSubmatch(sqlText)
	if m == nil {
		return ""
	}
	name := m[1]
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.Trim(strings.TrimSpace(name), `"`)
}

// extractRoutines scans a package body for nested PROCEDURE and
// FUNCTION definitions. Text the scanner cannot delimit is skipped
// rather than guessed at.
func extractRoutines(body string) []ExtractedRoutine {
	var routines []ExtractedRoutine
	pos := 0

	for pos < len(body) {
		loc := reRoutineHeader.FindStringSubmatchIndex(body[pos:])
		if loc == nil {
			break
		}
		kind := strings.ToUpper(body[pos+loc[2] : pos+loc[3]])
		name := body[pos+loc[4] : pos+loc[5]]
		i := pos + loc[1]

		// Optional parenthesized parameter list.
		params := ""
		j := skipSpace(body, i)
		if j < len(body) && body[j] == '(' {
			inside, after, ok := scanParens(body, j)
			if !ok {
				pos = i
				continue
			}
			params = strings.TrimSpace(inside)
			j = after
		}

		// Functions carry a RETURN type between the parameter list
		// and the IS/AS keyword.
		returnType := ""
		rest := body[j:]
		var headLen int
		if kind == "FUNCTION" {
			m := reFunctionReturn.FindStringSubmatch(rest)
			if m == nil {
				pos = i
				continue
			}
			returnType = strings.TrimSpace(m[1])
			headLen = len(reFunctionReturn.FindString(rest))
		} else {
			m := reRoutineIsAs.FindString(rest)
			if m == "" {
				pos = i
				continue
			}
			headLen = len(m)
		}

		routineBody, after, ok := scanBlock(body, j+headLen)
		if !ok {
			pos = i
			continue
		}

		routines = append(routines, ExtractedRoutine{
			Name:       name,
			Params:     params,
			Body:       strings.TrimSpace(routineBody),
			ReturnType: returnType,
			IsFunction: kind == "FUNCTION",
		})
		pos = after
	}

	return routines
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// scanParens returns the text inside a balanced parenthesis group
// starting at s[i] == '(' and the index just past the closing paren.
func scanParens(s string, i int) (inside string, after int, ok bool) {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[i+1 : j], j + 1, true
			}
		}
	}
	return "", 0, false
}

// scanBlock captures a routine body starting at the declarations after
// IS/AS, through the END that closes the outermost BEGIN. The returned
// body ends with that END keyword (any trailing routine-name label and
// the semicolon are dropped). BEGIN and CASE open blocks that a bare
// END closes: a CASE expression ends with a bare END while the CASE
// statement ends with END CASE, so both tokens go on the opener stack.
// END IF and END LOOP close their own constructs and are not tracked.
func scanBlock(s string, start int) (body string, after int, ok bool) {
	tokens := reBlockToken.FindAllStringIndex(s[start:], -1)
	var stack []string
	began := false
	prev := ""

	for k, tok := range tokens {
		word := strings.ToUpper(s[start+tok[0] : start+tok[1]])
		switch word {
		case "BEGIN":
			stack = append(stack, word)
			began = true
		case "CASE":
			// END CASE closes a CASE statement; the CASE token after
			// that END is not a new opener.
			if prev != "END" {
				stack = append(stack, word)
			}
		case "END":
			next := ""
			if k+1 < len(tokens) {
				next = strings.ToUpper(s[start+tokens[k+1][0] : start+tokens[k+1][1]])
			}
			if next == "IF" || next == "LOOP" {
				break
			}
			if len(stack) == 0 {
				return "", 0, false
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top == "CASE" {
				break
			}
			if began && len(stack) == 0 {
				end := start + tok[1]
				after = end
				// Consume a trailing name label and the terminator.
				if k+1 < len(tokens) && next != ";" && next != "" {
					after = start + tokens[k+1][1]
				}
				if semi := strings.IndexByte(s[after:], ';'); semi >= 0 {
					after += semi + 1
				}
				return s[start:end], after, true
			}
		}
		prev = word
	}
	return "", 0, false
}

// convertPackageBody drives extraction and per-target assembly.
func convertPackageBody(sqlText string, target Dialect, cfg RuleConfig, opts ConversionOptions) (string, []ConversionWarning, []string) {
	pkg := packageNameOf(sqlText)
	headerLoc := rePackageBodyHeader.FindStringIndex(sqlText)
	if headerLoc == nil {
		return packagePassthrough(sqlText, target), nil, []string{"Extract package routines"}
	}
	inner := sqlText[headerLoc[1]:]

	routines := extractRoutines(inner)
	applied := []string{"Extract package routines"}
	var warnings []ConversionWarning

	if len(routines) == 0 {
		return packagePassthrough(sqlText, target), warnings, applied
	}

	var parts []string
	for _, r := range routines {
		var text string
		var ws []ConversionWarning
		switch target {
		case MySQL:
			text, ws = assembleMySQLRoutine(pkg, r, opts)
		default:
			text, ws = assemblePostgresRoutine(pkg, r, opts)
		}
		parts = append(parts, text)
		warnings = append(warnings, ws...)
	}

	switch target {
	case MySQL:
		applied = append(applied, "Assemble MySQL routines")
	default:
		applied = append(applied, "Assemble PostgreSQL routines")
	}

	if cfg.Warnings.EnableManualReviewWarnings {
		warnings = append(warnings, ConversionWarning{
			Type:       WarnPartialSupport,
			Message:    fmt.Sprintf("package %s decomposed into %d standalone routines; package-level variables and initialization blocks do not carry over", pkg, len(routines)),
			Severity:   SeverityWarning,
			Suggestion: "review cross-routine state and replace package variables with tables or session settings",
		})
	}

	out := strings.Join(parts, "\n\n")
	if target == MySQL {
		out = "DELIMITER //\n\n" + out + "\n\nDELIMITER ;"
	}
	return out, warnings, applied
}

// packagePassthrough preserves a body with no extractable routines:
// a note plus the original text as a block comment, so nothing is
// silently dropped. The MySQL variant keeps the DELIMITER bracketing
// so the output stays self-consistent for the target.
func packagePassthrough(original string, target Dialect) string {
	var b strings.Builder
	if target == MySQL {
		b.WriteString("DELIMITER //\n\n")
	}
	b.WriteString("-- No procedures or functions found in package body; original preserved below.\n")
	b.WriteString("/*\n")
	b.WriteString(original)
	b.WriteString("\n*/")
	if target == MySQL {
		b.WriteString("\n\nDELIMITER ;")
	}
	return b.String()
}

// --- PostgreSQL assembly ---

func translateTypesPostgres(s string) string {
	out := reVarchar2Sized.ReplaceAllString(s, "VARCHAR($1)")
	out = reVarchar2Bare.ReplaceAllString(out, "VARCHAR")
	out = reNvarchar2Sized.ReplaceAllString(out, "VARCHAR($1)")
	out = reNvarchar2Bare.ReplaceAllString(out, "VARCHAR")
	out = reNumberSized.ReplaceAllString(out, "NUMERIC$1")
	out = reNumberBare.ReplaceAllString(out, "NUMERIC")
	out = reDateType.ReplaceAllString(out, "TIMESTAMP")
	out = reClobType.ReplaceAllString(out, "TEXT")
	out = reBlobType.ReplaceAllString(out, "BYTEA")
	return out
}

func assemblePostgresRoutine(pkg string, r ExtractedRoutine, opts ConversionOptions) (string, []ConversionWarning) {
	var warnings []ConversionWarning

	params := reInOutParam.ReplaceAllString(r.Params, "INOUT")
	params = translateTypesPostgres(params)

	body := translateTypesPostgres(r.Body)
	body = reNvlCall.ReplaceAllString(body, "COALESCE(")
	body = reSysdate.ReplaceAllString(body, "CURRENT_TIMESTAMP")
	body = reDbmsOutput.ReplaceAllString(body, "RAISE NOTICE '%', $1;")
	body = reRaiseAppErr.ReplaceAllString(body, "RAISE EXCEPTION $1;")

	if !reLeadDeclare.MatchString(body) && !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(body)), "BEGIN") {
		body = "DECLARE\n" + body
	}

	if r.IsFunction && !reReturnStmt.MatchString(body) {
		// The source defines a function without an inferable return
		// value; fall back to RETURN NULL rather than drop the gap.
		marker := "RETURN NULL;"
		if opts.EnableComments {
			marker = "RETURN NULL; -- review: source function body has no RETURN"
		}
		body = reFinalEnd.ReplaceAllString(body, marker+"\nEND")
		warnings = append(warnings, ConversionWarning{
			Type:       WarnManualReviewNeeded,
			Message:    fmt.Sprintf("function %s.%s has no RETURN statement; RETURN NULL was appended", pkg, r.Name),
			Severity:   SeverityWarning,
			Suggestion: "determine the intended return value and replace RETURN NULL",
		})
	}

	kind := "PROCEDURE"
	returns := ""
	if r.IsFunction {
		kind = "FUNCTION"
		returns = "\nRETURNS " + translateTypesPostgres(r.ReturnType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE %s %s.%s(%s)%s\nLANGUAGE plpgsql\nAS $$\n%s;\n$$;", kind, pkg, r.Name, params, returns, body)
	return b.String(), warnings
}

// --- MySQL assembly ---

func translateTypesMySQL(s string) string {
	out := reNumberSized.ReplaceAllString(s, "DECIMAL(38,10)")
	out = reNumberBare.ReplaceAllString(out, "DECIMAL(38,10)")
	out = reVarchar2Sized.ReplaceAllString(out, "VARCHAR($1)")
	out = reVarchar2Bare.ReplaceAllString(out, "VARCHAR(4000)")
	out = reNvarchar2Sized.ReplaceAllString(out, "VARCHAR($1)")
	out = reNvarchar2Bare.ReplaceAllString(out, "VARCHAR(4000)")
	out = reClobType.ReplaceAllString(out, "LONGTEXT")
	out = reBlobType.ReplaceAllString(out, "LONGBLOB")
	out = reDateType.ReplaceAllString(out, "DATETIME")
	out = reBooleanType.ReplaceAllString(out, "TINYINT(1)")
	return out
}

func assembleMySQLRoutine(pkg string, r ExtractedRoutine, opts ConversionOptions) (string, []ConversionWarning) {
	var warnings []ConversionWarning

	// MySQL has no routine namespacing equivalent to a package, so the
	// package name becomes a prefix.
	name := pkg + "_" + r.Name

	// Oracle writes the parameter mode after the name; MySQL wants it
	// before the name in procedures and forbids it in functions.
	params := reInOutParam.ReplaceAllString(r.Params, "INOUT")
	if r.IsFunction {
		params = reParamMode.ReplaceAllString(params, "$1$2$3")
	} else {
		params = reParamMode.ReplaceAllString(params, "$1$2$4 $3")
	}
	params = translateTypesMySQL(params)

	body := strings.TrimSpace(reLeadDeclare.ReplaceAllString(r.Body, ""))
	body = translateTypesMySQL(body)
	body = reNvlCall.ReplaceAllString(body, "IFNULL(")
	body = reSysdate.ReplaceAllString(body, "NOW()")

	if reDbmsOutput.MatchString(body) {
		marker := ""
		if opts.EnableComments {
			marker = "-- DBMS_OUTPUT.PUT_LINE removed (no MySQL equivalent)"
		}
		body = reDbmsOutput.ReplaceAllString(body, marker)
	}

	body = reRaiseLiteral.ReplaceAllString(body, "SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = $1;")
	if reRaiseAppErr.MatchString(body) {
		warnings = append(warnings, ConversionWarning{
			Type:       WarnPartialSupport,
			Message:    fmt.Sprintf("routine %s raises an error with a non-literal message; SIGNAL requires a literal MESSAGE_TEXT", name),
			Severity:   SeverityWarning,
			Suggestion: "assign the message to a variable and SIGNAL with SET MESSAGE_TEXT = @msg",
		})
	}
	body = reAssignment.ReplaceAllString(body, "${1}SET $2 = ")

	if !strings.HasPrefix(strings.ToUpper(body), "BEGIN") {
		warnings = append(warnings, ConversionWarning{
			Type:       WarnManualReviewNeeded,
			Message:    fmt.Sprintf("routine %s has declarations before BEGIN; MySQL requires DECLARE statements inside the block", name),
			Severity:   SeverityWarning,
			Suggestion: "move the declarations inside BEGIN as DECLARE statements",
		})
	}

	var b strings.Builder
	if r.IsFunction {
		returns := translateTypesMySQL(r.ReturnType)
		fmt.Fprintf(&b, "CREATE FUNCTION %s(%s) RETURNS %s\nDETERMINISTIC\n%s//", name, params, returns, body)
	} else {
		fmt.Fprintf(&b, "CREATE PROCEDURE %s(%s)\n%s//", name, params, body)
	}
	return b.String(), warnings
}
