package toml

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/terror/pyproject/internal/source"
)

// cursor is a byte position within the file being lexed.
type cursor struct {
	file *source.File
	off  uint32
}

func newCursor(f *source.File) cursor {
	return cursor{file: f}
}

func (c *cursor) limit() uint32 {
	n, err := safecast.Conv[uint32](len(c.file.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	return n
}

func (c *cursor) eof() bool {
	return c.off >= c.limit()
}

// peek reads the current byte without consuming it; 0 at EOF.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.off]
}

// peekAt reads the byte n positions ahead; 0 past EOF.
func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit() {
		return 0
	}
	return c.file.Content[c.off+n]
}

// bump consumes and returns the current byte; 0 at EOF.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

// mark remembers a position so a span can be derived later.
type mark uint32

func (c *cursor) mark() mark {
	return mark(c.off)
}

func (c *cursor) spanFrom(m mark) source.Span {
	return source.Span{Start: uint32(m), End: c.off}
}
