package lsp

import (
	"fortio.org/safecast"

	"github.com/terror/pyproject/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// utf16Width returns the number of UTF-16 code units r occupies.
func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// utf16Advance returns the byte offset in line after want UTF-16 code
// units, clamped to len(line). A position falling inside a surrogate pair
// resolves to the start of that character.
func utf16Advance(line string, want int) int {
	units := 0
	for i, r := range line {
		if units >= want || units+utf16Width(r) > want {
			return i
		}
		units += utf16Width(r)
	}
	return len(line)
}

// utf16Len returns the UTF-16 code unit length of s.
func utf16Len(s string) int {
	units := 0
	for _, r := range s {
		units += utf16Width(r)
	}
	return units
}

// offsetForPositionInFile converts an LSP position (0-based line, UTF-16
// character) into a byte offset within the file.
func offsetForPositionInFile(file *source.File, pos position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	if pos.Line >= len(file.LineIdx)+1 {
		return file.Len()
	}
	var lineStart uint32
	if pos.Line > 0 {
		lineStart = file.LineIdx[pos.Line-1] + 1
	}
	line := file.GetLine(safeUint32(pos.Line) + 1)
	return lineStart + safeUint32(utf16Advance(line, pos.Character))
}

// positionForOffsetInFile converts a byte offset into an LSP position.
func positionForOffsetInFile(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	if n := file.Len(); offset > n {
		offset = n
	}
	lc := file.LineColAt(offset)
	line := file.GetLine(lc.Line)
	col := int(lc.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	return position{Line: int(lc.Line) - 1, Character: utf16Len(line[:col])}
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	return lspRange{
		Start: positionForOffsetInFile(file, span.Start),
		End:   positionForOffsetInFile(file, span.End),
	}
}
