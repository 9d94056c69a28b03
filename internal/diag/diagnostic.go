package diag

import (
	"github.com/terror/pyproject/internal/source"
)

// Finding is a single analysis result produced by one rule. It carries no
// severity: severity is resolved from configuration when findings are
// aggregated into diagnostics.
type Finding struct {
	Rule       string
	Span       source.Span
	Message    string
	Suggestion string // optional "did you mean" replacement
}

// NewFinding constructs a finding for the given rule identifier.
func NewFinding(rule string, span source.Span, msg string) Finding {
	return Finding{Rule: rule, Span: span, Message: msg}
}

// WithSuggestion attaches a replacement suggestion to the finding.
func (f Finding) WithSuggestion(s string) Finding {
	f.Suggestion = s
	return f
}

// Diagnostic is a finding combined with its resolved severity; the externally
// visible unit of the pipeline.
type Diagnostic struct {
	Rule       string
	Severity   Severity
	Span       source.Span
	Message    string
	Suggestion string
}
