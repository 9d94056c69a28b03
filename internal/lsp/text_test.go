package lsp

import "testing"

func TestOffsetForPosition(t *testing.T) {
	text := "a = 1\nbb = 2\n"
	cases := []struct {
		line, char int
		want       int
	}{
		{0, 0, 0},
		{0, 4, 4},
		{0, 99, 5}, // clamps to end of line
		{1, 0, 6},
		{1, 2, 8},
		{2, 0, 13},
		{9, 0, 13}, // past the last line
	}
	for _, c := range cases {
		got := offsetForPosition(text, position{Line: c.line, Character: c.char})
		if got != c.want {
			t.Errorf("position %d:%d: got %d, want %d", c.line, c.char, got, c.want)
		}
	}
}

func TestOffsetForPositionUTF16(t *testing.T) {
	// é is one UTF-16 unit but two bytes; 𝄞 is two units and four bytes.
	text := "é𝄞x"
	cases := []struct {
		char int
		want int
	}{
		{0, 0},
		{1, 2},
		{3, 6},
		{4, 7},
	}
	for _, c := range cases {
		got := offsetForPosition(text, position{Line: 0, Character: c.char})
		if got != c.want {
			t.Errorf("character %d: got %d, want %d", c.char, got, c.want)
		}
	}
}

func TestApplyChangesFullReplace(t *testing.T) {
	got := applyChanges("old", []textDocumentContentChangeEvent{{Text: "new"}})
	if got != "new" {
		t.Errorf("got %q", got)
	}
}

func TestApplyChangesIncremental(t *testing.T) {
	text := "name = \"demo\"\n"
	change := textDocumentContentChangeEvent{
		Range: &lspRange{
			Start: position{Line: 0, Character: 8},
			End:   position{Line: 0, Character: 12},
		},
		Text: "other",
	}
	got := applyChanges(text, []textDocumentContentChangeEvent{change})
	if got != "name = \"other\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestApplyChangesInsertion(t *testing.T) {
	change := textDocumentContentChangeEvent{
		Range: &lspRange{
			Start: position{Line: 1, Character: 0},
			End:   position{Line: 1, Character: 0},
		},
		Text: "version = \"1.0\"\n",
	}
	got := applyChanges("[project]\n", []textDocumentContentChangeEvent{change})
	if got != "[project]\nversion = \"1.0\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestApplyChangesSequence(t *testing.T) {
	// Later changes see the text produced by earlier ones.
	changes := []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{0, 0}, End: position{0, 1}}, Text: "x"},
		{Range: &lspRange{Start: position{0, 0}, End: position{0, 1}}, Text: "yz"},
	}
	if got := applyChanges("abc", changes); got != "yzbc" {
		t.Errorf("got %q", got)
	}
}

func TestApplyChangesOutOfRange(t *testing.T) {
	change := textDocumentContentChangeEvent{
		Range: &lspRange{
			Start: position{Line: 5, Character: 0},
			End:   position{Line: 9, Character: 0},
		},
		Text: "!",
	}
	if got := applyChanges("ab", []textDocumentContentChangeEvent{change}); got != "ab!" {
		t.Errorf("got %q", got)
	}
}
