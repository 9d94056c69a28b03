package toml

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/terror/pyproject/internal/source"
)

// parser builds the node tree line by line. Errors are recorded and the
// parser resynchronizes at the next newline, so a broken stretch never takes
// down the rest of the document.
type parser struct {
	lx        *lexer
	file      *source.File
	root      *Node
	current   *Node // table receiving key/value lines
	errors    []ParseError
	conflicts []KeyConflict
}

func newParser(f *source.File) *parser {
	root := &Node{Kind: KindTable, Implicit: true}
	return &parser{
		lx:      newLexer(f),
		file:    f,
		root:    root,
		current: root,
	}
}

func (p *parser) run() {
	for {
		tok := p.lx.next()
		switch tok.Kind {
		case EOF:
			p.root.Span = source.Span{Start: 0, End: p.file.Len()}
			return
		case Newline:
			continue
		case LBracket:
			p.parseHeader(tok)
		case Atom, String:
			if p.parseKeyValue(tok, p.current) {
				p.expectLineEnd("value")
			}
		case Invalid:
			p.errorAt(tok.Span, tok.Text)
			p.sync()
		default:
			p.errorAt(tok.Span, fmt.Sprintf("expected key, found %s", tok.Kind))
			p.sync()
		}
	}
}

// parseHeader handles `[table]` and `[[array-of-tables]]` lines.
func (p *parser) parseHeader(open Token) {
	array := false
	if next := p.lx.peek(); next.Kind == LBracket && next.Span.Start == open.Span.End {
		p.lx.next()
		array = true
	}

	path, ok := p.parseKeyPath()
	if !ok {
		p.sync()
		return
	}

	if close := p.lx.next(); close.Kind != RBracket {
		p.errorAt(close.Span, fmt.Sprintf("expected `]` to close table header, found %s", close.Kind))
		p.sync()
		return
	}
	if array {
		if close := p.lx.next(); close.Kind != RBracket {
			p.errorAt(close.Span, fmt.Sprintf("expected `]]` to close array of tables header, found %s", close.Kind))
			p.sync()
			return
		}
	}

	headerSpan := open.Span.Cover(path[len(path)-1].Span)
	if array {
		p.current = p.defineTableArray(path, headerSpan)
	} else {
		p.current = p.defineTable(path, headerSpan)
	}
	p.expectLineEnd("table header")
}

// defineTable registers a `[a.b.c]` header and returns the table to receive
// the following key/value lines.
func (p *parser) defineTable(path []Key, header source.Span) *Node {
	table := p.descend(p.root, path[:len(path)-1])
	last := path[len(path)-1]

	if existing := table.Entry(last.Text); existing != nil {
		node := existing.Value
		if node.IsTable() && node.Implicit {
			// Promoted from an implicit table introduced by a deeper
			// header or dotted key.
			node.Implicit = false
			node.Span = node.Span.Cover(header)
			return node
		}
		p.conflict(last, existing.Key.Span)
		return p.orphanTable(header)
	}

	node := &Node{Kind: KindTable, Span: header}
	p.insert(table, last, node)
	return node
}

// defineTableArray registers a `[[a.b]]` header, appending a fresh table to
// the array at that path.
func (p *parser) defineTableArray(path []Key, header source.Span) *Node {
	table := p.descend(p.root, path[:len(path)-1])
	last := path[len(path)-1]

	elem := &Node{Kind: KindTable, Span: header}
	if existing := table.Entry(last.Text); existing != nil {
		node := existing.Value
		if node.IsArray() && node.Implicit {
			node.Items = append(node.Items, elem)
			node.Span = node.Span.Cover(header)
			return elem
		}
		p.conflict(last, existing.Key.Span)
		return p.orphanTable(header)
	}

	arr := &Node{Kind: KindArray, Span: header, Implicit: true, Items: []*Node{elem}}
	p.insert(table, last, arr)
	return elem
}

// orphanTable keeps parsing a conflicting section without attaching its
// contents to the tree.
func (p *parser) orphanTable(span source.Span) *Node {
	return &Node{Kind: KindTable, Span: span}
}

// descend walks (or creates implicit) intermediate tables for a dotted path.
func (p *parser) descend(table *Node, path []Key) *Node {
	for _, key := range path {
		if existing := table.Entry(key.Text); existing != nil {
			if existing.Value.IsTable() {
				table = existing.Value
				continue
			}
			p.conflict(key, existing.Key.Span)
			return p.orphanTable(key.Span)
		}
		child := &Node{Kind: KindTable, Span: key.Span, Implicit: true}
		p.insert(table, key, child)
		table = child
	}
	return table
}

// parseKeyPath reads a dotted key: `a.b."c d"`.
func (p *parser) parseKeyPath() ([]Key, bool) {
	var path []Key
	for {
		tok := p.lx.next()
		switch tok.Kind {
		case Atom, String:
			path = append(path, Key{Text: tok.Text, Span: tok.Span})
		default:
			p.errorAt(tok.Span, fmt.Sprintf("expected key, found %s", tok.Kind))
			return nil, false
		}
		if p.lx.peek().Kind != Dot {
			return path, true
		}
		p.lx.next()
	}
}

// parseKeyValue handles one `key = value` line inside table. Returns false
// when recovery already consumed the rest of the line.
func (p *parser) parseKeyValue(first Token, table *Node) bool {
	p.lx.unread(first)
	path, ok := p.parseKeyPath()
	if !ok {
		p.sync()
		return false
	}

	if eq := p.lx.next(); eq.Kind != Equals {
		p.errorAt(eq.Span, fmt.Sprintf("expected `=` after key, found %s", eq.Kind))
		p.sync()
		return false
	}

	value, ok := p.parseValue()
	if !ok {
		p.sync()
		return false
	}

	target := p.descend(table, path[:len(path)-1])
	last := path[len(path)-1]
	if existing := target.Entry(last.Text); existing != nil {
		p.conflict(last, existing.Key.Span)
		return true
	}
	p.insert(target, last, value)
	return true
}

func (p *parser) parseValue() (*Node, bool) {
	return p.parseValueToken(p.lx.nextValue())
}

func (p *parser) parseValueToken(tok Token) (*Node, bool) {
	switch tok.Kind {
	case String:
		return &Node{Kind: KindString, Span: tok.Span, Str: tok.Text}, true
	case Atom:
		return p.classifyScalar(tok)
	case LBracket:
		return p.parseArray(tok)
	case LBrace:
		return p.parseInlineTable(tok)
	case Newline, EOF:
		p.errorAt(tok.Span, "missing value")
		p.lx.unread(tok)
		return nil, false
	case Invalid:
		p.errorAt(tok.Span, tok.Text)
		return nil, false
	default:
		p.errorAt(tok.Span, fmt.Sprintf("expected value, found %s", tok.Kind))
		return nil, false
	}
}

func (p *parser) parseArray(open Token) (*Node, bool) {
	arr := &Node{Kind: KindArray, Span: open.Span}
	for {
		tok := p.lx.nextValue()
		switch tok.Kind {
		case Newline:
			continue
		case RBracket:
			arr.Span = arr.Span.Cover(tok.Span)
			return arr, true
		case EOF:
			p.errorAt(tok.Span, "unclosed array")
			return arr, true
		case Comma:
			p.errorAt(tok.Span, "expected value, found `,`")
			continue
		}

		item, ok := p.parseValueToken(tok)
		if !ok {
			continue
		}
		arr.Items = append(arr.Items, item)
		arr.Span = arr.Span.Cover(item.Span)

		// Separator: comma, closing bracket, or newlines before either.
		for {
			sep := p.lx.nextValue()
			if sep.Kind == Newline {
				continue
			}
			if sep.Kind == Comma {
				break
			}
			if sep.Kind == RBracket {
				arr.Span = arr.Span.Cover(sep.Span)
				return arr, true
			}
			if sep.Kind == EOF {
				p.errorAt(sep.Span, "unclosed array")
				return arr, true
			}
			p.errorAt(sep.Span, fmt.Sprintf("expected `,` or `]` in array, found %s", sep.Kind))
			return arr, false
		}
	}
}

func (p *parser) parseInlineTable(open Token) (*Node, bool) {
	table := &Node{Kind: KindTable, Span: open.Span}
	first := true
	for {
		tok := p.lx.next()
		if tok.Kind == RBrace {
			table.Span = table.Span.Cover(tok.Span)
			return table, true
		}
		if tok.Kind == Newline || tok.Kind == EOF {
			p.errorAt(tok.Span, "unclosed inline table")
			p.lx.unread(tok)
			return table, false
		}
		if !first {
			if tok.Kind != Comma {
				p.errorAt(tok.Span, fmt.Sprintf("expected `,` or `}` in inline table, found %s", tok.Kind))
				return table, false
			}
			tok = p.lx.next()
		}
		first = false

		if tok.Kind != Atom && tok.Kind != String {
			p.errorAt(tok.Span, fmt.Sprintf("expected key in inline table, found %s", tok.Kind))
			return table, false
		}
		if !p.parseKeyValue(tok, table) {
			return table, false
		}
		table.Span = table.Span.Cover(tok.Span)
	}
}

var (
	dateTimeRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([Tt]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})?)?$`)
	localTimeRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?$`)
	integerRe   = regexp.MustCompile(`^[+-]?(0x[0-9A-Fa-f](_?[0-9A-Fa-f])*|0o[0-7](_?[0-7])*|0b[01](_?[01])*|\d(_?\d)*)$`)
	floatRe     = regexp.MustCompile(`^[+-]?(\d(_?\d)*)(\.\d(_?\d)*)?([eE][+-]?\d+)?$`)
)

// classifyScalar decides what a bare value-position run means.
func (p *parser) classifyScalar(tok Token) (*Node, bool) {
	text := tok.Text
	switch text {
	case "true", "false":
		return &Node{Kind: KindBool, Span: tok.Span, Bool: text == "true"}, true
	case "inf", "+inf", "-inf", "nan", "+nan", "-nan":
		return &Node{Kind: KindFloat, Span: tok.Span}, true
	}
	if dateTimeRe.MatchString(text) || localTimeRe.MatchString(text) {
		return &Node{Kind: KindDateTime, Span: tok.Span, Str: text}, true
	}
	if integerRe.MatchString(text) {
		n, err := strconv.ParseInt(normalizeDigits(text), 0, 64)
		if err != nil {
			p.errorAt(tok.Span, fmt.Sprintf("integer out of range: `%s`", text))
			return nil, false
		}
		return &Node{Kind: KindInteger, Span: tok.Span, Int: n}, true
	}
	if floatRe.MatchString(text) && (strings.ContainsAny(text, ".eE")) {
		f, err := strconv.ParseFloat(normalizeDigits(text), 64)
		if err != nil {
			p.errorAt(tok.Span, fmt.Sprintf("invalid float: `%s`", text))
			return nil, false
		}
		return &Node{Kind: KindFloat, Span: tok.Span, Float: f}, true
	}
	p.errorAt(tok.Span, fmt.Sprintf("invalid value `%s`", text))
	return nil, false
}

func normalizeDigits(text string) string {
	return strings.ReplaceAll(text, "_", "")
}

// expectLineEnd consumes the newline that must follow a complete header or
// key/value line; anything else is an error.
func (p *parser) expectLineEnd(after string) {
	tok := p.lx.next()
	if tok.Kind == Newline || tok.Kind == EOF {
		return
	}
	p.errorAt(tok.Span, fmt.Sprintf("expected newline after %s, found %s", after, tok.Kind))
	p.sync()
}

// sync skips to the next newline so parsing resumes on a clean line.
func (p *parser) sync() {
	p.lx.syncToNewline()
}

func (p *parser) errorAt(span source.Span, msg string) {
	p.errors = append(p.errors, ParseError{Span: span, Msg: msg})
}

func (p *parser) conflict(key Key, first source.Span) {
	p.conflicts = append(p.conflicts, KeyConflict{Key: key.Text, First: first, Second: key.Span})
}

func (p *parser) insert(table *Node, key Key, value *Node) {
	table.Entries = append(table.Entries, &Entry{Key: key, Value: value})
	if table.Span.Empty() {
		table.Span = key.Span
	}
	table.Span = table.Span.Cover(key.Span).Cover(value.Span)
}
