package lsp

import (
	"testing"

	"github.com/terror/pyproject/internal/source"
)

func spanFile(text string) *source.File {
	return source.NewVirtual("pyproject.toml", text)
}

func TestOffsetForPositionInFile(t *testing.T) {
	file := spanFile("a = 1\nbb = 2\n")
	cases := []struct {
		line, char int
		want       uint32
	}{
		{0, 0, 0},
		{0, 5, 5},
		{0, 99, 5},
		{1, 0, 6},
		{1, 6, 12},
		{5, 0, 13},
	}
	for _, c := range cases {
		got := offsetForPositionInFile(file, position{Line: c.line, Character: c.char})
		if got != c.want {
			t.Errorf("position %d:%d: got %d, want %d", c.line, c.char, got, c.want)
		}
	}
}

func TestPositionForOffsetInFile(t *testing.T) {
	file := spanFile("a = 1\nbb = 2\n")
	cases := []struct {
		offset     uint32
		line, char int
	}{
		{0, 0, 0},
		{4, 0, 4},
		{5, 0, 5},
		{6, 1, 0},
		{12, 1, 6},
		{13, 2, 0},
		{999, 2, 0}, // clamps to end of content
	}
	for _, c := range cases {
		got := positionForOffsetInFile(file, c.offset)
		if got.Line != c.line || got.Character != c.char {
			t.Errorf("offset %d: got %d:%d, want %d:%d", c.offset, got.Line, got.Character, c.line, c.char)
		}
	}
}

func TestPositionRoundTripUTF16(t *testing.T) {
	file := spanFile("é𝄞 = 1\n")
	// é at bytes 0..2 is one UTF-16 unit; 𝄞 at bytes 2..6 is two.
	cases := []struct {
		offset uint32
		char   int
	}{
		{0, 0},
		{2, 1},
		{6, 3},
		{7, 4},
	}
	for _, c := range cases {
		got := positionForOffsetInFile(file, c.offset)
		if got.Line != 0 || got.Character != c.char {
			t.Errorf("offset %d: got %d:%d, want 0:%d", c.offset, got.Line, got.Character, c.char)
		}
		back := offsetForPositionInFile(file, position{Line: 0, Character: c.char})
		if back != c.offset {
			t.Errorf("character %d: got offset %d, want %d", c.char, back, c.offset)
		}
	}
}

func TestRangeForSpan(t *testing.T) {
	file := spanFile("[project]\nname = \"demo\"\n")
	r := rangeForSpan(file, source.Span{Start: 10, End: 14})
	if r.Start.Line != 1 || r.Start.Character != 0 {
		t.Errorf("start = %d:%d", r.Start.Line, r.Start.Character)
	}
	if r.End.Line != 1 || r.End.Character != 4 {
		t.Errorf("end = %d:%d", r.End.Line, r.End.Character)
	}
}

func TestRangeForSpanNilFile(t *testing.T) {
	r := rangeForSpan(nil, source.Span{Start: 0, End: 5})
	if r != (lspRange{}) {
		t.Errorf("got %+v, want zero range", r)
	}
}

func TestSafeUint32(t *testing.T) {
	if safeUint32(-1) != 0 {
		t.Error("negative should clamp to 0")
	}
	if safeUint32(42) != 42 {
		t.Error("small values pass through")
	}
}
