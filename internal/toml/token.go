package toml

import (
	"github.com/terror/pyproject/internal/source"
)

// Kind identifies a lexical token class.
type Kind uint8

const (
	EOF Kind = iota
	Newline
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Equals   // =
	Comma    // ,
	Dot      // .
	Atom     // bare key or (in value position) scalar run
	String   // quoted string, Text holds the decoded value
	Invalid  // unrecognized input, Text holds the error message
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case Newline:
		return "newline"
	case LBracket:
		return "`[`"
	case RBracket:
		return "`]`"
	case LBrace:
		return "`{`"
	case RBrace:
		return "`}`"
	case Equals:
		return "`=`"
	case Comma:
		return "`,`"
	case Dot:
		return "`.`"
	case Atom:
		return "bare text"
	case String:
		return "string"
	case Invalid:
		return "invalid token"
	}
	return "unknown token"
}

// Token is a single lexical unit with its exact byte span.
type Token struct {
	Kind      Kind
	Span      source.Span
	Text      string // decoded payload for Atom/String, error message for Invalid
	Multiline bool   // set for """ and ''' strings
}
