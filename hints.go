package main

import (
	"regexp"
	"strings"
)

// Unconditional strippers for Oracle physical-storage and optimizer
// clauses that have no meaning outside Oracle. They fire regardless of
// target dialect and remove the clause outright; under the strict
// preset each strip also leaves an info advisory.

var (
	reSegmentCreation = regexp.MustCompile(`(?i)\s*\bSEGMENT\s+CREATION\s+(IMMEDIATE|DEFERRED)\b`)
	reLogging         = regexp.MustCompile(`(?i)\s*\b(NOLOGGING|LOGGING)\b`)
	reParallel        = regexp.MustCompile(`(?i)\s*\b(NOPARALLEL|PARALLEL(\s+\d+)?)\b`)
	reCache           = regexp.MustCompile(`(?i)\s*\b(NOCACHE|CACHE)\b`)
	reResultCache     = regexp.MustCompile(`(?i)\s*\bRESULT_CACHE\s*(\(\s*MODE\s+\w+\s*\))?`)
	reRowDependencies = regexp.MustCompile(`(?i)\s*\b(NOROWDEPENDENCIES|ROWDEPENDENCIES)\b`)
	reMonitoring      = regexp.MustCompile(`(?i)\s*\b(NOMONITORING|MONITORING)\b`)
	reFlashbackArch   = regexp.MustCompile(`(?i)\s*\b(NO\s+)?FLASHBACK\s+ARCHIVE((\s+)([A-Za-z_][\w$#]*))?`)
	reRowMovement     = regexp.MustCompile(`(?i)\s*\b(ENABLE|DISABLE)\s+ROW\s+MOVEMENT\b`)
)

// stripProcessor builds a processor that deletes every occurrence of a
// clause pattern. Removal is idempotent: the pattern cannot match its
// own output.
func stripProcessor(rule string, re *regexp.Regexp, note string) processor {
	return processor{
		rule: rule,
		apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
			if !re.MatchString(sqlText) {
				return sqlText, nil, false
			}
			out := re.ReplaceAllString(sqlText, "")
			var w *ConversionWarning
			if cfg.Warnings.EnableInfoAdvisories {
				w = &ConversionWarning{
					Type:     WarnSyntaxDifference,
					Message:  note,
					Severity: SeverityInfo,
				}
			}
			return out, w, true
		},
	}
}

// flashbackArchiveProcessor strips the FLASHBACK ARCHIVE clause with
// its optional archive name. An ENABLE or DISABLE word after the
// clause belongs to the next clause (ENABLE ROW MOVEMENT), so it is
// put back rather than consumed as an archive name.
func flashbackArchiveProcessor() processor {
	return processor{
		rule: "Remove FLASHBACK ARCHIVE clause",
		apply: func(sqlText string, _ Dialect, cfg RuleConfig, _ ConversionOptions) (string, *ConversionWarning, bool) {
			if !reFlashbackArch.MatchString(sqlText) {
				return sqlText, nil, false
			}
			out := reFlashbackArch.ReplaceAllStringFunc(sqlText, func(m string) string {
				sub := reFlashbackArch.FindStringSubmatch(m)
				switch strings.ToUpper(sub[4]) {
				case "ENABLE", "DISABLE":
					return sub[2]
				}
				return ""
			})
			var w *ConversionWarning
			if cfg.Warnings.EnableInfoAdvisories {
				w = &ConversionWarning{
					Type:     WarnSyntaxDifference,
					Message:  "removed FLASHBACK ARCHIVE clause (Oracle flashback data archive)",
					Severity: SeverityInfo,
				}
			}
			return out, w, true
		},
	}
}

func hintProcessors() []processor {
	return []processor{
		stripProcessor("Remove SEGMENT CREATION clause", reSegmentCreation,
			"removed SEGMENT CREATION clause (Oracle physical storage attribute)"),
		stripProcessor("Remove LOGGING/NOLOGGING hint", reLogging,
			"removed LOGGING/NOLOGGING hint (Oracle redo logging attribute)"),
		stripProcessor("Remove PARALLEL hint", reParallel,
			"removed PARALLEL/NOPARALLEL hint (Oracle parallel execution attribute)"),
		stripProcessor("Remove CACHE hint", reCache,
			"removed CACHE/NOCACHE hint (Oracle buffer cache attribute)"),
		stripProcessor("Remove RESULT_CACHE hint", reResultCache,
			"removed RESULT_CACHE hint (Oracle result cache attribute)"),
		stripProcessor("Remove ROWDEPENDENCIES flag", reRowDependencies,
			"removed ROWDEPENDENCIES flag (Oracle row-level dependency tracking)"),
		stripProcessor("Remove MONITORING flag", reMonitoring,
			"removed MONITORING flag (deprecated Oracle statistics attribute)"),
		flashbackArchiveProcessor(),
		stripProcessor("Remove ROW MOVEMENT clause", reRowMovement,
			"removed ENABLE/DISABLE ROW MOVEMENT clause (Oracle partitioned table attribute)"),
	}
}
