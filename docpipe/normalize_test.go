package docpipe

import (
	"strings"
	"testing"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("Hello   world  once   more")
	if got != "Hello world once more" {
		t.Errorf("got %q, want %q", got, "Hello world once more")
	}
}

func TestNormalize_KeepsTabSeparators(t *testing.T) {
	// Tab-delimited fields survive as single tabs so table detection can
	// still see them; surrounding spaces fold into the tab.
	got := Normalize("name \t\t score\trank")
	if got != "name\tscore\trank" {
		t.Errorf("got %q, want %q", got, "name\tscore\trank")
	}
}

func TestNormalize_LineEndings(t *testing.T) {
	got := Normalize("a\r\nb\rc")
	if got != "a\nb\nc" {
		t.Errorf("got %q, want %q", got, "a\nb\nc")
	}
}

func TestNormalize_ParagraphBoundary(t *testing.T) {
	got := Normalize("one\n\n\n\n\ntwo")
	if got != "one\n\ntwo" {
		t.Errorf("got %q, want %q", got, "one\n\ntwo")
	}
	if strings.Contains(got, "\n\n\n") {
		t.Error("triple newline survived normalization")
	}
}

func TestNormalize_HyphenBreak(t *testing.T) {
	got := Normalize("photo-\nsynthesis converts light")
	if !strings.Contains(got, "photosynthesis") {
		t.Errorf("hyphen break not rejoined: %q", got)
	}
	// Trailing space before the wrapped newline must not defeat the rejoin.
	got = Normalize("photo- \nsynthesis converts light")
	if !strings.Contains(got, "photosynthesis") {
		t.Errorf("hyphen break with trailing space not rejoined: %q", got)
	}
}

func TestNormalize_StripsControlChars(t *testing.T) {
	got := Normalize("a\x00b\x07c\td")
	if strings.ContainsAny(got, "\x00\x07") {
		t.Errorf("control chars survived: %q", got)
	}
	if !strings.Contains(got, "a") || !strings.Contains(got, "d") {
		t.Errorf("content lost: %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  padded  \n\n\n  text  ",
		"hyphen-\nated words\r\nwith\tmixed\x01junk",
		"photo- \nsynthesis converts light",
		"col one\tcol two \t col three\nval one\tval two\tval three",
		"A.\n\n\n\nB.\n\n\n\n\nC.",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_Trims(t *testing.T) {
	if got := Normalize("  \n  body  \n  "); got != "body" {
		t.Errorf("got %q, want %q", got, "body")
	}
}
