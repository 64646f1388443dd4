package content

import (
	"strings"
	"testing"
)

func TestExtractReadable(t *testing.T) {
	input := strings.Join([]string{
		"Title",
		"",
		"![logo](https://example.com/logo.png)",
		"[Home](/) [About](/about) [Contact](/contact)",
		"# A Heading Alone",
		"This first paragraph carries the actual substance of the page in a full sentence.",
		"- item",
		"| col | col |",
		"The second paragraph continues the story with more than enough words to keep.",
		"© 2024 cookies privacy",
	}, "\n")

	got := ExtractReadable(input)

	for _, want := range []string{"actual substance", "second paragraph"} {
		if !strings.Contains(got, want) {
			t.Errorf("readable text missing %q:\n%s", want, got)
		}
	}
	for _, junk := range []string{"logo.png", "Home", "| col", "cookies"} {
		if strings.Contains(got, junk) {
			t.Errorf("readable text kept junk %q:\n%s", junk, got)
		}
	}
}

func TestExtractReadableInlineLinksKeepText(t *testing.T) {
	input := "The committee cited [a previous report](https://example.com/report) as the basis for the decision."
	got := ExtractReadable(input)
	if !strings.Contains(got, "a previous report") {
		t.Errorf("inline link text must survive: %q", got)
	}
	if strings.Contains(got, "example.com") {
		t.Errorf("link target must be stripped: %q", got)
	}
}

func TestIsProse(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"This sentence is long enough to be prose.", true},
		{"Short line", false},
		{"1 2 3 4 5 6 7 8 9", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isProse(tt.line); got != tt.want {
			t.Errorf("isProse(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
