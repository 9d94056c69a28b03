// Package analysis wires the stages of a manifest check together: read the
// manifest's own configuration, run the rules under the resolved
// severities, and aggregate the results into a stable order.
package analysis

import (
	"github.com/terror/pyproject/internal/config"
	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/rules"
	"github.com/terror/pyproject/internal/toml"
)

// Result is the outcome of analyzing one document version.
type Result struct {
	Doc         *toml.Document
	Diagnostics []diag.Diagnostic
}

// Version returns the document version the result was computed for.
func (r *Result) Version() int32 {
	return r.Doc.Version
}

// HasErrors reports whether any diagnostic carries Error severity.
func (r *Result) HasErrors() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity == diag.SevError {
			return true
		}
	}
	return false
}

// Analyze parses text and runs the full pipeline against it.
func Analyze(text string, version int32) *Result {
	return AnalyzeDocument(toml.Parse(text, version))
}

// AnalyzeDocument runs the pipeline over an already-parsed document. The
// same document always yields the same diagnostics in the same order.
func AnalyzeDocument(doc *toml.Document) *Result {
	cfg := config.Load(doc)

	bag := diag.NewBag()
	ctx := rules.NewContext(doc)
	for _, d := range rules.Evaluate(ctx, cfg.Resolve) {
		bag.Add(d)
	}

	// Configuration problems surface under the `config` identifier and
	// honor its severity override like any rule output.
	cfgSev := cfg.Resolve("config", diag.SevWarning)
	if cfgSev != diag.SevOff {
		for _, f := range cfg.Findings {
			bag.Add(diag.Diagnostic{
				Rule:       f.Rule,
				Severity:   cfgSev,
				Span:       f.Span,
				Message:    f.Message,
				Suggestion: f.Suggestion,
			})
		}
	}

	bag.Sort()
	bag.Dedup()
	return &Result{Doc: doc, Diagnostics: bag.Items()}
}
