// Package textproc normalizes text before it reaches a prompt or a
// speech synthesizer. Typographic characters confuse some TTS engines
// and waste prompt tokens, so everything is folded to plain ASCII
// punctuation.
package textproc

import (
	"strings"
)

var replacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"„", `"`, // low double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
	" ", " ", // no-break space
	"​", "", // zero-width space
	"­", "", // soft hyphen
	"•", "", // bullet
	"*", "",
	"#", "",
	"_", " ",
	"`", "",
)

// Clean normalizes typography and collapses whitespace runs into single
// spaces. The result is a single flowing paragraph.
func Clean(text string) string {
	text = replacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
