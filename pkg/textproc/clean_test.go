package textproc

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "typographic quotes",
			input: "“Hello” and ‘world’",
			want:  `"Hello" and 'world'`,
		},
		{
			name:  "dashes and ellipsis",
			input: "one – two — three…",
			want:  "one - two - three...",
		},
		{
			name:  "markdown leftovers",
			input: "**bold** and `code` and #tag",
			want:  "bold and code and tag",
		},
		{
			name:  "whitespace collapsed",
			input: "line one\n\nline\ttwo   spaced out",
			want:  "line one line two spaced out",
		},
		{
			name:  "already clean",
			input: "Nothing to do here.",
			want:  "Nothing to do here.",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
