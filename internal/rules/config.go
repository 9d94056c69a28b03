package rules

import (
	"github.com/terror/pyproject/internal/diag"
)

func init() {
	register(configRule{})
}

// configRule reserves the `config` identifier for findings produced while
// reading `[tool.pyproject]` itself. The findings are attached by the
// pipeline rather than emitted here, so the identifier participates in
// severity overrides like any other rule.
type configRule struct{}

func (configRule) ID() string                     { return "config" }
func (configRule) Description() string            { return "problems in [tool.pyproject] configuration" }
func (configRule) DefaultSeverity() diag.Severity { return diag.SevWarning }

func (configRule) Check(*Context) []diag.Finding { return nil }
