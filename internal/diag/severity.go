package diag

import "fmt"

// Severity defines the user-visible importance of a diagnostic.
// The numeric values follow the LSP DiagnosticSeverity encoding so they can
// be published over the session protocol without translation; SevOff is an
// internal marker that suppresses a finding entirely.
type Severity uint8

const (
	SevError       Severity = 1
	SevWarning     Severity = 2
	SevInformation Severity = 3
	SevHint        Severity = 4
	SevOff         Severity = 5
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevInformation:
		return "information"
	case SevHint:
		return "hint"
	case SevOff:
		return "off"
	}
	return "unknown"
}

// ParseSeverity parses a configuration severity literal.
// `info` is accepted as an alias for `information`.
func ParseSeverity(literal string) (Severity, error) {
	switch literal {
	case "error":
		return SevError, nil
	case "warning":
		return SevWarning, nil
	case "information", "info":
		return SevInformation, nil
	case "hint":
		return SevHint, nil
	case "off":
		return SevOff, nil
	}
	return 0, fmt.Errorf("unknown severity %q", literal)
}
