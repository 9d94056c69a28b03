// Package diagfmt renders diagnostics for humans and for tools.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color      bool
	ShowSource bool // print the offending line with an underline
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to locations
}
