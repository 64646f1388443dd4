package content

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	mdLinkRegex  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdImageRegex = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
)

// ExtractReadable filters reader-proxy output down to prose lines. Menus,
// link farms and markdown furniture are dropped; what survives is joined
// into the text handed to the summarizer.
func ExtractReadable(text string) string {
	var keep []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = mdImageRegex.ReplaceAllString(line, "")
		line = mdLinkRegex.ReplaceAllString(line, "$1")
		line = strings.TrimLeft(line, "#>*- ")
		line = strings.TrimSpace(line)

		if !isProse(line) {
			continue
		}
		keep = append(keep, line)
	}
	return strings.Join(keep, "\n")
}

// isProse applies the heuristics that separate sentences from navigation
// crumbs: enough words, and mostly letters rather than symbols.
func isProse(line string) bool {
	words := strings.Fields(line)
	if len(words) < 5 {
		return false
	}

	var letters, total int
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return false
	}
	return float64(letters)/float64(total) >= 0.6
}
