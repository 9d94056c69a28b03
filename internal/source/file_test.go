package source

import (
	"testing"
)

func TestNewVirtualBuildsLineIndex(t *testing.T) {
	f := NewVirtual("test.toml", "a = 1\nb = 2\n\nc = 3")
	// Offsets of the three newlines.
	want := []uint32{5, 11, 12}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("LineIdx length = %d, want %d", len(f.LineIdx), len(want))
	}
	for i, off := range want {
		if f.LineIdx[i] != off {
			t.Errorf("LineIdx[%d] = %d, want %d", i, f.LineIdx[i], off)
		}
	}
}

func TestLineColAt(t *testing.T) {
	f := NewVirtual("test.toml", "a\nbb\nccc")
	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2}, // the newline itself belongs to line 1
		{2, 2, 1},
		{3, 2, 2},
		{5, 3, 1},
		{7, 3, 3},
	}
	for _, tc := range cases {
		got := f.LineColAt(tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Errorf("LineColAt(%d) = %d:%d, want %d:%d", tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	f := NewVirtual("test.toml", "a = 1\r\nb = 2\r\n")
	if string(f.Content) != "a = 1\nb = 2\n" {
		t.Fatalf("content = %q, want normalized newlines", f.Content)
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestRemoveBOM(t *testing.T) {
	f := NewFile("test.toml", []byte("\xEF\xBB\xBFkey = 1"), 0)
	if string(f.Content) != "key = 1" {
		t.Fatalf("content = %q, want BOM stripped", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
}

func TestGetLine(t *testing.T) {
	f := NewVirtual("test.toml", "first\nsecond\nthird")
	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestSliceClampsOutOfRange(t *testing.T) {
	f := NewVirtual("test.toml", "abc")
	if got := f.Slice(Span{Start: 1, End: 3}); got != "bc" {
		t.Errorf("Slice(1,3) = %q, want %q", got, "bc")
	}
	if got := f.Slice(Span{Start: 2, End: 100}); got != "c" {
		t.Errorf("Slice(2,100) = %q, want %q", got, "c")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{Start: 4, End: 8}
	b := Span{Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("Cover = %s, want 2..8", got)
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: 2, End: 5}
	for off, want := range map[uint32]bool{1: false, 2: true, 4: true, 5: false} {
		if got := s.Contains(off); got != want {
			t.Errorf("Contains(%d) = %v, want %v", off, got, want)
		}
	}
}
