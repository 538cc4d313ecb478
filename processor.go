package main

// processorFunc rewrites or inspects one Oracle construct. It must be a
// pure function of its inputs: when the trigger pattern is absent it
// returns the input unchanged with fired=false and no warning.
type processorFunc func(sqlText string, target Dialect, cfg RuleConfig, opts ConversionOptions) (out string, warning *ConversionWarning, fired bool)

// processor is one stage of the generic syntax pipeline. Processors do
// not know about each other; the orchestrator owns their order.
type processor struct {
	rule  string // human-readable applied-rule name
	apply processorFunc
}

// processors is the process-wide pipeline, built once. Every stage is
// a pure function over its inputs, so the shared slice is safe for
// concurrent conversions.
var processors = pipeline()

// pipeline returns the fixed, significant processor order:
// hint/option strippers first, then DDL clause removal, then identifier
// normalization, then data type mapping, then function rewrites, then
// detection-only stages. Later stages rely on earlier ones having
// removed the decorations they would otherwise have to re-parse.
func pipeline() []processor {
	var ps []processor
	ps = append(ps, hintProcessors()...)
	ps = append(ps, ddlClauseProcessors()...)
	ps = append(ps, identifierProcessors()...)
	ps = append(ps, dataTypeProcessors()...)
	ps = append(ps, functionProcessors()...)
	ps = append(ps, detectorProcessors()...)
	return ps
}
