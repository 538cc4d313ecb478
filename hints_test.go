package main

import "testing"

func TestHintStrippers(t *testing.T) {
	tests := []struct {
		name string
		rule string
		in   string
		want string
	}{
		{
			name: "segment creation immediate",
			rule: "Remove SEGMENT CREATION clause",
			in:   "CREATE TABLE t (id INT) SEGMENT CREATION IMMEDIATE",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "segment creation deferred",
			rule: "Remove SEGMENT CREATION clause",
			in:   "CREATE TABLE t (id INT) SEGMENT CREATION DEFERRED",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "nologging",
			rule: "Remove LOGGING/NOLOGGING hint",
			in:   "CREATE TABLE t (id INT) NOLOGGING",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "logging",
			rule: "Remove LOGGING/NOLOGGING hint",
			in:   "CREATE TABLE t (id INT) LOGGING",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "parallel with degree",
			rule: "Remove PARALLEL hint",
			in:   "CREATE TABLE t (id INT) PARALLEL 4",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "noparallel",
			rule: "Remove PARALLEL hint",
			in:   "CREATE TABLE t (id INT) NOPARALLEL",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "nocache",
			rule: "Remove CACHE hint",
			in:   "CREATE TABLE t (id INT) NOCACHE",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "result cache with mode",
			rule: "Remove RESULT_CACHE hint",
			in:   "CREATE TABLE t (id INT) RESULT_CACHE (MODE DEFAULT)",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "rowdependencies",
			rule: "Remove ROWDEPENDENCIES flag",
			in:   "CREATE TABLE t (id INT) ROWDEPENDENCIES",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "monitoring",
			rule: "Remove MONITORING flag",
			in:   "CREATE TABLE t (id INT) MONITORING",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "flashback archive with name",
			rule: "Remove FLASHBACK ARCHIVE clause",
			in:   "CREATE TABLE t (id INT) FLASHBACK ARCHIVE fda_main",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "no flashback archive",
			rule: "Remove FLASHBACK ARCHIVE clause",
			in:   "CREATE TABLE t (id INT) NO FLASHBACK ARCHIVE",
			want: "CREATE TABLE t (id INT)",
		},
		{
			name: "enable row movement",
			rule: "Remove ROW MOVEMENT clause",
			in:   "CREATE TABLE t (id INT) ENABLE ROW MOVEMENT",
			want: "CREATE TABLE t (id INT)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := findProcessor(t, tt.rule)
			out, warning, fired := p.apply(tt.in, PostgreSQL, DefaultRules(), DefaultOptions())
			if !fired {
				t.Fatal("processor did not fire")
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
			if warning != nil {
				t.Errorf("default preset should strip silently, got warning %+v", *warning)
			}
		})
	}
}

func TestHintStrippersFireForAnyTarget(t *testing.T) {
	// Physical storage clauses mean nothing outside Oracle's engine, so
	// stripping is not gated on the target dialect.
	p := findProcessor(t, "Remove PARALLEL hint")
	for _, target := range []Dialect{MySQL, PostgreSQL, Oracle} {
		out, _, fired := p.apply("CREATE TABLE t (id INT) PARALLEL 8", target, DefaultRules(), DefaultOptions())
		if !fired || out != "CREATE TABLE t (id INT)" {
			t.Errorf("target %s: fired=%v out=%q", target, fired, out)
		}
	}
}

func TestFlashbackArchiveKeepsFollowingKeyword(t *testing.T) {
	// Without an archive name the next clause's keyword must not be
	// consumed as the name.
	p := findProcessor(t, "Remove FLASHBACK ARCHIVE clause")

	out, _, fired := p.apply("CREATE TABLE t (id INT) FLASHBACK ARCHIVE ENABLE ROW MOVEMENT", MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != "CREATE TABLE t (id INT) ENABLE ROW MOVEMENT" {
		t.Errorf("fired=%v out=%q", fired, out)
	}

	// The preserved clause is then removed by the ROW MOVEMENT stage.
	rm := findProcessor(t, "Remove ROW MOVEMENT clause")
	out, _, fired = rm.apply(out, MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != "CREATE TABLE t (id INT)" {
		t.Errorf("row movement pass: fired=%v out=%q", fired, out)
	}

	out, _, fired = p.apply("CREATE TABLE t (id INT) FLASHBACK ARCHIVE DISABLE ROW MOVEMENT", MySQL, DefaultRules(), DefaultOptions())
	if !fired || out != "CREATE TABLE t (id INT) DISABLE ROW MOVEMENT" {
		t.Errorf("disable keyword: fired=%v out=%q", fired, out)
	}
}

func TestHintStrippersAdvisoryUnderStrict(t *testing.T) {
	p := findProcessor(t, "Remove SEGMENT CREATION clause")
	_, warning, fired := p.apply("CREATE TABLE t (id INT) SEGMENT CREATION IMMEDIATE", PostgreSQL, StrictRules(), DefaultOptions())
	if !fired {
		t.Fatal("processor did not fire")
	}
	if warning == nil {
		t.Fatal("strict preset should emit an info advisory per strip")
	}
	if warning.Severity != SeverityInfo {
		t.Errorf("advisory severity = %s, want info", warning.Severity)
	}
	if warning.Type != WarnSyntaxDifference {
		t.Errorf("advisory type = %s, want %s", warning.Type, WarnSyntaxDifference)
	}
}
