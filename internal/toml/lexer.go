package toml

import (
	"strings"
	"unicode/utf8"

	"github.com/terror/pyproject/internal/source"
)

// lexer produces tokens on demand. TOML is context-sensitive: the same run of
// bytes is a dotted key in key position and a single scalar (date, float) in
// value position, so the parser selects between next and nextValue instead of
// the lexer guessing.
type lexer struct {
	cursor cursor
	look   *Token // one-token lookahead buffer
}

func newLexer(f *source.File) *lexer {
	return &lexer{cursor: newCursor(f)}
}

// next returns the next token in key/structural position.
func (lx *lexer) next() Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	lx.skipBlanksAndComments()
	if lx.cursor.eof() {
		return Token{Kind: EOF, Span: lx.emptySpan()}
	}

	m := lx.cursor.mark()
	ch := lx.cursor.peek()
	switch {
	case ch == '\n':
		lx.cursor.bump()
		return Token{Kind: Newline, Span: lx.cursor.spanFrom(m)}
	case ch == '"' || ch == '\'':
		return lx.scanString()
	case isBareKeyByte(ch):
		for isBareKeyByte(lx.cursor.peek()) {
			lx.cursor.bump()
		}
		span := lx.cursor.spanFrom(m)
		return Token{Kind: Atom, Span: span, Text: lx.slice(span)}
	default:
		return lx.scanPunct()
	}
}

// nextValue returns the next token in value position: scalar runs are scanned
// greedily so that floats, signed numbers and datetimes stay one token.
func (lx *lexer) nextValue() Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	lx.skipBlanksAndComments()
	if lx.cursor.eof() {
		return Token{Kind: EOF, Span: lx.emptySpan()}
	}

	m := lx.cursor.mark()
	ch := lx.cursor.peek()
	switch {
	case ch == '\n':
		lx.cursor.bump()
		return Token{Kind: Newline, Span: lx.cursor.spanFrom(m)}
	case ch == '"' || ch == '\'':
		return lx.scanString()
	case isScalarByte(ch):
		for isScalarByte(lx.cursor.peek()) {
			lx.cursor.bump()
		}
		span := lx.cursor.spanFrom(m)
		return Token{Kind: Atom, Span: span, Text: lx.slice(span)}
	default:
		return lx.scanPunct()
	}
}

// peek returns the next key-position token without consuming it.
func (lx *lexer) peek() Token {
	t := lx.next()
	lx.look = &t
	return t
}

// unread pushes tok back so the next call returns it again.
func (lx *lexer) unread(tok Token) {
	lx.look = &tok
}

// syncToNewline consumes input up to (not including) the next newline and
// returns the span of the skipped stretch. Used for error recovery.
func (lx *lexer) syncToNewline() source.Span {
	lx.look = nil
	m := lx.cursor.mark()
	for !lx.cursor.eof() && lx.cursor.peek() != '\n' {
		lx.cursor.bump()
	}
	return lx.cursor.spanFrom(m)
}

func (lx *lexer) scanPunct() Token {
	m := lx.cursor.mark()
	ch := lx.cursor.bump()
	kind := Invalid
	switch ch {
	case '[':
		kind = LBracket
	case ']':
		kind = RBracket
	case '{':
		kind = LBrace
	case '}':
		kind = RBrace
	case '=':
		kind = Equals
	case ',':
		kind = Comma
	case '.':
		kind = Dot
	}
	span := lx.cursor.spanFrom(m)
	if kind == Invalid {
		// Consume the full rune so multi-byte garbage is one token.
		for !lx.cursor.eof() && lx.cursor.peek()&0xC0 == 0x80 {
			lx.cursor.bump()
		}
		span = lx.cursor.spanFrom(m)
		return Token{Kind: Invalid, Span: span, Text: "unexpected character " + quoteByte(lx.slice(span))}
	}
	return Token{Kind: kind, Span: span}
}

func (lx *lexer) scanString() Token {
	m := lx.cursor.mark()
	quote := lx.cursor.bump()
	triple := lx.cursor.peek() == quote && lx.cursor.peekAt(1) == quote
	if triple {
		lx.cursor.bump()
		lx.cursor.bump()
		return lx.scanMultiline(m, quote)
	}

	var sb strings.Builder
	for {
		if lx.cursor.eof() || lx.cursor.peek() == '\n' {
			span := lx.cursor.spanFrom(m)
			return Token{Kind: Invalid, Span: span, Text: "unterminated string"}
		}
		ch := lx.cursor.bump()
		switch {
		case ch == quote:
			span := lx.cursor.spanFrom(m)
			return Token{Kind: String, Span: span, Text: sb.String()}
		case ch == '\\' && quote == '"':
			if bad := lx.scanEscape(&sb); bad != "" {
				// Keep scanning to the closing quote so the rest of the
				// line still parses; report the bad escape.
				rest := lx.finishBasicString(&sb, quote)
				span := lx.cursor.spanFrom(m)
				if !rest {
					return Token{Kind: Invalid, Span: span, Text: "unterminated string"}
				}
				return Token{Kind: Invalid, Span: span, Text: bad}
			}
		default:
			sb.WriteByte(ch)
		}
	}
}

// finishBasicString consumes the remainder of a basic string after an escape
// error, returning false if the string never closes on this line.
func (lx *lexer) finishBasicString(sb *strings.Builder, quote byte) bool {
	for {
		if lx.cursor.eof() || lx.cursor.peek() == '\n' {
			return false
		}
		ch := lx.cursor.bump()
		if ch == quote {
			return true
		}
		if ch == '\\' {
			lx.cursor.bump()
			continue
		}
		sb.WriteByte(ch)
	}
}

func (lx *lexer) scanMultiline(m mark, quote byte) Token {
	var sb strings.Builder
	// A newline immediately after the opening delimiter is trimmed.
	if lx.cursor.peek() == '\n' {
		lx.cursor.bump()
	}
	for {
		if lx.cursor.eof() {
			span := lx.cursor.spanFrom(m)
			return Token{Kind: Invalid, Span: span, Text: "unterminated multi-line string", Multiline: true}
		}
		if lx.cursor.peek() == quote && lx.cursor.peekAt(1) == quote && lx.cursor.peekAt(2) == quote {
			lx.cursor.bump()
			lx.cursor.bump()
			lx.cursor.bump()
			span := lx.cursor.spanFrom(m)
			return Token{Kind: String, Span: span, Text: sb.String(), Multiline: true}
		}
		ch := lx.cursor.bump()
		if ch == '\\' && quote == '"' {
			// Line-ending backslash swallows the newline and leading blanks.
			if lx.cursor.peek() == '\n' {
				lx.cursor.bump()
				for lx.cursor.peek() == ' ' || lx.cursor.peek() == '\t' || lx.cursor.peek() == '\n' {
					lx.cursor.bump()
				}
				continue
			}
			if bad := lx.scanEscape(&sb); bad != "" {
				sb.WriteString("�")
			}
			continue
		}
		sb.WriteByte(ch)
	}
}

// scanEscape decodes one escape sequence after a backslash has been consumed.
// It returns a non-empty message on malformed input.
func (lx *lexer) scanEscape(sb *strings.Builder) string {
	ch := lx.cursor.bump()
	switch ch {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case 'u':
		return lx.scanUnicodeEscape(sb, 4)
	case 'U':
		return lx.scanUnicodeEscape(sb, 8)
	default:
		return "invalid escape sequence `\\" + string(ch) + "`"
	}
	return ""
}

func (lx *lexer) scanUnicodeEscape(sb *strings.Builder, digits int) string {
	var r rune
	for i := 0; i < digits; i++ {
		ch := lx.cursor.peek()
		var v rune
		switch {
		case ch >= '0' && ch <= '9':
			v = rune(ch - '0')
		case ch >= 'a' && ch <= 'f':
			v = rune(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			v = rune(ch-'A') + 10
		default:
			return "invalid unicode escape"
		}
		lx.cursor.bump()
		r = r<<4 | v
	}
	if !utf8.ValidRune(r) {
		return "invalid unicode escape"
	}
	sb.WriteRune(r)
	return ""
}

func (lx *lexer) skipBlanksAndComments() {
	for {
		ch := lx.cursor.peek()
		switch {
		case ch == ' ' || ch == '\t':
			lx.cursor.bump()
		case ch == '#':
			for !lx.cursor.eof() && lx.cursor.peek() != '\n' {
				lx.cursor.bump()
			}
		default:
			return
		}
	}
}

func (lx *lexer) emptySpan() source.Span {
	return source.Span{Start: lx.cursor.off, End: lx.cursor.off}
}

func (lx *lexer) slice(span source.Span) string {
	return lx.cursor.file.Slice(span)
}

func isBareKeyByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '_' || ch == '-'
}

// isScalarByte reports bytes that may continue a value-position scalar:
// numbers (1_000, 0x2A, 3.14, 1e-5), booleans, and RFC 3339 datetimes.
func isScalarByte(ch byte) bool {
	return isBareKeyByte(ch) || ch == '+' || ch == ':' || ch == '.'
}

func quoteByte(s string) string {
	if s == "" {
		return "`?`"
	}
	return "`" + s + "`"
}
