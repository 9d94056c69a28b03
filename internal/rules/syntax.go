package rules

import (
	"fmt"

	"github.com/terror/pyproject/internal/diag"
)

func init() {
	register(syntaxErrors{})
	register(semanticErrors{})
}

// syntaxErrors surfaces the parse errors recovered while building the
// document tree.
type syntaxErrors struct{}

func (syntaxErrors) ID() string                     { return "syntax-errors" }
func (syntaxErrors) Description() string            { return "TOML syntax errors" }
func (syntaxErrors) DefaultSeverity() diag.Severity { return diag.SevError }

func (r syntaxErrors) Check(ctx *Context) []diag.Finding {
	var out []diag.Finding
	for _, e := range ctx.Doc.Errors {
		out = append(out, diag.NewFinding(r.ID(), e.Span, e.Msg))
	}
	return out
}

// semanticErrors surfaces structural conflicts: keys or tables defined more
// than once at the same level.
type semanticErrors struct{}

func (semanticErrors) ID() string                     { return "semantic-errors" }
func (semanticErrors) Description() string            { return "duplicate keys and table redefinitions" }
func (semanticErrors) DefaultSeverity() diag.Severity { return diag.SevError }

func (r semanticErrors) Check(ctx *Context) []diag.Finding {
	var out []diag.Finding
	for _, c := range ctx.Doc.Conflicts {
		first := ctx.Doc.File.LineColAt(c.First.Start)
		msg := fmt.Sprintf("`%s` is already defined at line %d, column %d", c.Key, first.Line, first.Col)
		out = append(out, diag.NewFinding(r.ID(), c.Second, msg))
	}
	return out
}
