package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgBlue, color.Bold)
	hintColor = color.New(color.FgCyan, color.Bold)
	dimColor  = color.New(color.Faint)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	case diag.SevInformation:
		return infoColor
	default:
		return hintColor
	}
}

// Pretty prints each diagnostic as
//
//	<path>:<line>:<col>: severity[rule-id]: message
//
// followed, when ShowSource is set, by the offending line and a caret
// underline covering the span. Expects the diagnostics already sorted.
func Pretty(w io.Writer, file *source.File, items []diag.Diagnostic, opts PrettyOpts) {
	restore := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = restore }()

	for _, d := range items {
		start, end := file.Resolve(d.Span)
		head := severityColor(d.Severity).Sprintf("%s[%s]", d.Severity, d.Rule)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", file.Path, start.Line, start.Col, head, d.Message)
		if opts.ShowSource {
			writeSourceLine(w, file, d, start, end)
		}
		if d.Suggestion != "" {
			fmt.Fprintf(w, "  %s `%s`\n", dimColor.Sprint("suggestion:"), d.Suggestion)
		}
	}
}

func writeSourceLine(w io.Writer, file *source.File, d diag.Diagnostic, start, end source.LineCol) {
	line := file.GetLine(start.Line)
	if line == "" && d.Span.Empty() {
		return
	}
	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(line, "\t", " "))

	// Underline within the first line only; multi-line spans run to the
	// end of the line.
	from := int(start.Col) - 1
	to := len(line)
	if end.Line == start.Line {
		to = int(end.Col) - 1
	}
	if from > len(line) {
		from = len(line)
	}
	if to > len(line) {
		to = len(line)
	}
	if to <= from {
		to = from + 1
	}
	pad := runewidth.StringWidth(line[:from])
	width := runewidth.StringWidth(line[from:min(to, len(line))])
	if width == 0 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), severityColor(d.Severity).Sprint(marker))
}
