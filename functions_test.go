package main

import (
	"strings"
	"testing"
)

func TestConvertNvl(t *testing.T) {
	p := findProcessor(t, "Convert NVL function")

	out, _, fired := p.apply("SELECT NVL(bonus, 0) FROM emp", PostgreSQL, DefaultRules(), DefaultOptions())
	if !fired || out != "SELECT COALESCE(bonus, 0) FROM emp" {
		t.Errorf("PostgreSQL: fired=%v out=%q", fired, out)
	}

	out, _, fired = p.apply("SELECT NVL(bonus, 0) FROM emp", MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != "SELECT IFNULL(bonus, 0) FROM emp" {
		t.Errorf("MySQL: fired=%v out=%q", fired, out)
	}

	// NVL2 must not be caught by the NVL rewrite.
	in := "SELECT NVL2(bonus, 1, 0) FROM emp"
	out, _, fired = p.apply(in, PostgreSQL, DefaultRules(), DefaultOptions())
	if fired || out != in {
		t.Errorf("NVL2 input: fired=%v out=%q", fired, out)
	}
}

func TestDetectNvl2(t *testing.T) {
	p := findProcessor(t, "Detect NVL2 function")
	in := "SELECT NVL2(bonus, 1, 0) FROM emp"

	out, warning, fired := p.apply(in, PostgreSQL, DefaultRules(), DefaultOptions())
	if !fired {
		t.Fatal("processor did not fire")
	}
	if out != in {
		t.Errorf("detection must not rewrite, got %q", out)
	}
	if warning == nil || warning.Type != WarnUnsupportedFunction {
		t.Errorf("want unsupported-function warning, got %+v", warning)
	}
	if warning != nil && !strings.Contains(warning.Suggestion, "CASE") {
		t.Errorf("suggestion should point at a CASE rewrite, got %q", warning.Suggestion)
	}
}

func TestDetectDecode(t *testing.T) {
	p := findProcessor(t, "Detect DECODE function")
	in := "SELECT DECODE(status, 'A', 'active', 'inactive') FROM emp"

	out, warning, fired := p.apply(in, MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != in {
		t.Errorf("fired=%v out=%q", fired, out)
	}
	if warning == nil || warning.Type != WarnUnsupportedFunction {
		t.Errorf("want unsupported-function warning, got %+v", warning)
	}

	// Detection is silent when function warnings are off; firing with
	// no text change and no warning would be invisible to the caller.
	cfg := DefaultRules()
	cfg.Warnings.EnableFunctionWarnings = false
	_, warning, fired = p.apply(in, MySQL, cfg, DefaultOptions())
	if fired || warning != nil {
		t.Errorf("warnings off: fired=%v warning=%+v", fired, warning)
	}
}

func TestConvertSysdate(t *testing.T) {
	p := findProcessor(t, "Convert SYSDATE function")

	out, _, fired := p.apply("INSERT INTO log VALUES (SYSDATE)", PostgreSQL, DefaultRules(), DefaultOptions())
	if !fired || out != "INSERT INTO log VALUES (CURRENT_TIMESTAMP)" {
		t.Errorf("PostgreSQL: fired=%v out=%q", fired, out)
	}

	out, _, fired = p.apply("INSERT INTO log VALUES (SYSDATE)", MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != "INSERT INTO log VALUES (NOW())" {
		t.Errorf("MySQL: fired=%v out=%q", fired, out)
	}
}

func TestConvertSysGuid(t *testing.T) {
	p := findProcessor(t, "Convert SYS_GUID function")

	out, _, fired := p.apply("INSERT INTO t VALUES (SYS_GUID())", PostgreSQL, DefaultRules(), DefaultOptions())
	if !fired || out != "INSERT INTO t VALUES (gen_random_uuid())" {
		t.Errorf("PostgreSQL: fired=%v out=%q", fired, out)
	}

	out, _, fired = p.apply("INSERT INTO t VALUES (SYS_GUID())", MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != "INSERT INTO t VALUES (UUID())" {
		t.Errorf("MySQL: fired=%v out=%q", fired, out)
	}
}

func TestConvertDateFunctions(t *testing.T) {
	p := findProcessor(t, "Convert date functions")
	in := "SELECT TO_CHAR(hired, 'YYYY-MM-DD'), TO_DATE('2020-01-01', 'YYYY-MM-DD') FROM emp"

	// Default options keep the calls and warn about the format model.
	out, warning, fired := p.apply(in, MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != in {
		t.Errorf("default options: fired=%v out=%q", fired, out)
	}
	if warning == nil || warning.Type != WarnPartialSupport {
		t.Errorf("want partial-support warning, got %+v", warning)
	}

	// replaceUnsupportedFunctions renames the calls on the MySQL path.
	opts := DefaultOptions()
	opts.ReplaceUnsupportedFunctions = true
	out, warning, fired = p.apply(in, MySQL, DefaultRules(), opts)
	if !fired {
		t.Fatal("processor did not fire")
	}
	want := "SELECT DATE_FORMAT(hired, 'YYYY-MM-DD'), STR_TO_DATE('2020-01-01', 'YYYY-MM-DD') FROM emp"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
	if warning == nil {
		t.Error("format model still needs manual work; the warning must stay")
	}

	// With warnings off and no rewrite possible, the stage must not
	// report a fire it cannot explain.
	cfg := DefaultRules()
	cfg.Warnings.EnableFunctionWarnings = false
	out, warning, fired = p.apply(in, PostgreSQL, cfg, DefaultOptions())
	if fired || warning != nil || out != in {
		t.Errorf("silent case: fired=%v warning=%+v out=%q", fired, warning, out)
	}
}

func TestConvertRaiseApplicationError(t *testing.T) {
	p := findProcessor(t, "Convert RAISE_APPLICATION_ERROR")

	in := "RAISE_APPLICATION_ERROR(-20001, 'bad input')"
	out, _, fired := p.apply(in, PostgreSQL, DefaultRules(), DefaultOptions())
	if !fired || out != "RAISE EXCEPTION 'bad input';" {
		t.Errorf("PostgreSQL: fired=%v out=%q", fired, out)
	}

	out, _, fired = p.apply(in, MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != "SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'bad input';" {
		t.Errorf("MySQL: fired=%v out=%q", fired, out)
	}

	// A non-literal message cannot become SIGNAL; the MySQL path keeps
	// the call and warns instead.
	in = "RAISE_APPLICATION_ERROR(-20001, v_msg);"
	out, warning, fired := p.apply(in, MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != in {
		t.Errorf("non-literal MySQL: fired=%v out=%q", fired, out)
	}
	if warning == nil || warning.Type != WarnPartialSupport {
		t.Errorf("want partial-support warning, got %+v", warning)
	}

	// PostgreSQL RAISE takes any expression; the non-literal case
	// rewrites cleanly.
	out, _, fired = p.apply(in, PostgreSQL, DefaultRules(), DefaultOptions())
	if !fired || out != "RAISE EXCEPTION v_msg;" {
		t.Errorf("non-literal PostgreSQL: fired=%v out=%q", fired, out)
	}
}

func TestDetectSubstrNegativePosition(t *testing.T) {
	p := findProcessor(t, "Detect SUBSTR negative position")

	in := "SELECT SUBSTR(name, -3) FROM emp"
	out, warning, fired := p.apply(in, MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != in {
		t.Errorf("fired=%v out=%q", fired, out)
	}
	if warning == nil || warning.Type != WarnPartialSupport {
		t.Errorf("want partial-support warning, got %+v", warning)
	}

	// Positive positions behave identically everywhere.
	in = "SELECT SUBSTR(name, 3) FROM emp"
	_, warning, fired = p.apply(in, MySQL, DefaultRules(), DefaultOptions())
	if fired || warning != nil {
		t.Errorf("positive position: fired=%v warning=%+v", fired, warning)
	}
}
