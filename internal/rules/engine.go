package rules

import (
	"golang.org/x/sync/errgroup"

	"github.com/terror/pyproject/internal/diag"
)

// Resolver maps a rule identifier and its default severity to the severity
// in effect for this run.
type Resolver func(id string, def diag.Severity) diag.Severity

// Evaluate runs every registered rule whose resolved severity is not Off and
// returns the findings paired with their severities. Rules run concurrently
// but the result order is fixed by rule identifier, so repeated runs over
// the same document produce identical output.
func Evaluate(ctx *Context, resolve Resolver) []diag.Diagnostic {
	all := All()
	results := make([][]diag.Diagnostic, len(all))

	var g errgroup.Group
	for i, r := range all {
		i, r := i, r
		sev := resolve(r.ID(), r.DefaultSeverity())
		if sev == diag.SevOff {
			continue
		}
		g.Go(func() error {
			findings := r.Check(ctx)
			if len(findings) == 0 {
				return nil
			}
			out := make([]diag.Diagnostic, len(findings))
			for j, f := range findings {
				out[j] = diag.Diagnostic{
					Rule:       f.Rule,
					Severity:   sev,
					Span:       f.Span,
					Message:    f.Message,
					Suggestion: f.Suggestion,
				}
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait() // rules never return errors

	var flat []diag.Diagnostic
	for _, batch := range results {
		flat = append(flat, batch...)
	}
	return flat
}
