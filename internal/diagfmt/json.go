package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/source"
)

// LocationJSON is a span with optional line/col coordinates.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON is one diagnostic in machine-readable form.
type DiagnosticJSON struct {
	Severity   string       `json:"severity"`
	Rule       string       `json:"rule"`
	Message    string       `json:"message"`
	Suggestion string       `json:"suggestion,omitempty"`
	Location   LocationJSON `json:"location"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(file *source.File, span source.Span, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      file.Path,
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		start, end := file.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// BuildDiagnosticsOutput shapes the diagnostics for serialization.
func BuildDiagnosticsOutput(file *source.File, items []diag.Diagnostic, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Count:       len(items),
	}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity:   d.Severity.String(),
			Rule:       d.Rule,
			Message:    d.Message,
			Suggestion: d.Suggestion,
			Location:   makeLocation(file, d.Span, opts.IncludePositions),
		})
	}
	return out
}

// WriteJSON serializes the diagnostics with indentation.
func WriteJSON(w io.Writer, file *source.File, items []diag.Diagnostic, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(file, items, opts))
}
