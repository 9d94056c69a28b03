package pep440

import (
	"reflect"
	"testing"
)

func TestParseRelease(t *testing.T) {
	cases := []struct {
		text string
		want []int
	}{
		{"1.0.0", []int{1, 0, 0}},
		{"2024.1", []int{2024, 1}},
		{"7", []int{7}},
		{"v1.2", []int{1, 2}},
		{"  1.0  ", []int{1, 0}},
	}
	for _, c := range cases {
		v, err := Parse(c.text)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.text, err)
			continue
		}
		if !reflect.DeepEqual(v.Release, c.want) {
			t.Errorf("Parse(%q).Release = %v, want %v", c.text, v.Release, c.want)
		}
	}
}

func TestParseSegments(t *testing.T) {
	v, err := Parse("2!1.0rc1.post2.dev3+ubuntu.1")
	if err != nil {
		t.Fatal(err)
	}
	if v.Epoch != 2 {
		t.Errorf("Epoch = %d, want 2", v.Epoch)
	}
	if v.Pre == nil || v.Pre.Phase != "rc" || v.Pre.Number != 1 {
		t.Errorf("Pre = %+v, want rc1", v.Pre)
	}
	if v.Post == nil || *v.Post != 2 {
		t.Errorf("Post = %v, want 2", v.Post)
	}
	if v.Dev == nil || *v.Dev != 3 {
		t.Errorf("Dev = %v, want 3", v.Dev)
	}
	if v.Local != "ubuntu.1" {
		t.Errorf("Local = %q, want ubuntu.1", v.Local)
	}
}

func TestParsePreSpellings(t *testing.T) {
	cases := map[string]string{
		"1.0a1":       "a",
		"1.0alpha1":   "a",
		"1.0b2":       "b",
		"1.0beta2":    "b",
		"1.0c1":       "rc",
		"1.0pre1":     "rc",
		"1.0preview1": "rc",
		"1.0RC1":      "rc",
		"1.0-rc.1":    "rc",
	}
	for text, phase := range cases {
		v, err := Parse(text)
		if err != nil {
			t.Errorf("Parse(%q): %v", text, err)
			continue
		}
		if v.Pre == nil || v.Pre.Phase != phase {
			t.Errorf("Parse(%q).Pre = %+v, want phase %q", text, v.Pre, phase)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, text := range []string{
		"",
		"abc",
		"1.0.0.post1.post2.rev",
		"1.0+",
		"1.0+!",
		"not a version",
		"1..0",
		".1",
	} {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", text)
		}
	}
}

func TestVersionString(t *testing.T) {
	cases := map[string]string{
		"1.0.0":         "1.0.0",
		"v1.2":          "1.2",
		"1.0Alpha1":     "1.0a1",
		"1!2.0":         "1!2.0",
		"1.0-post":      "1.0.post0",
		"1.0dev":        "1.0.dev0",
		"1.0+local.tag": "1.0+local.tag",
	}
	for text, want := range cases {
		v, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if got := v.String(); got != want {
			t.Errorf("Parse(%q).String() = %q, want %q", text, got, want)
		}
	}
}
