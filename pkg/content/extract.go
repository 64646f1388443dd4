package content

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Info contains the cleaned prose and metadata.
type Info struct {
	Prose      string
	WordCount  int
	IsReliable bool
}

// ExtractProse parses an HTML page and extracts the main body paragraphs.
// Used when the reader proxy hands back raw HTML instead of rendered text.
func ExtractProse(r io.Reader) (*Info, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	// Prefer a semantic content container; fall back to the whole body.
	root := findFirst(doc, atom.Article)
	if root == nil {
		root = findFirst(doc, atom.Main)
	}
	if root == nil {
		root = findFirst(doc, atom.Body)
	}

	var output []string
	var totalWords int
	if root != nil {
		collectParagraphs(root, &output, &totalWords)
	}

	prose := strings.Join(output, "\n\n")
	return &Info{
		Prose:      prose,
		WordCount:  totalWords,
		IsReliable: totalWords > 20, // Arbitrary threshold for "actual content"
	}, nil
}

// collectParagraphs walks the tree gathering <p> text, pruning the
// subtrees that never contain article prose.
func collectParagraphs(n *html.Node, output *[]string, totalWords *int) {
	if n.Type == html.ElementNode {
		if isStructuralNoise(n) {
			return
		}
		if n.DataAtom == atom.P {
			text := cleanParagraph(n)
			if text != "" {
				*output = append(*output, text)
				*totalWords += countWords(text)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectParagraphs(c, output, totalWords)
	}
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, a); res != nil {
			return res
		}
	}
	return nil
}

func cleanParagraph(p *html.Node) string {
	var b strings.Builder
	traverseParagraph(p, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func traverseParagraph(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}

	if n.Type == html.ElementNode {
		// Skip unwanted elements inside paragraphs:
		// - <sup> for citations [1][2]
		// - <style>, <script>
		if n.DataAtom == atom.Sup || n.DataAtom == atom.Style || n.DataAtom == atom.Script {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		traverseParagraph(c, b)
	}
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// isStructuralNoise identifies containers that hold navigation or page
// furniture rather than article text.
func isStructuralNoise(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Nav, atom.Aside, atom.Footer, atom.Header, atom.Script, atom.Style, atom.Form, atom.Noscript:
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "class" || a.Key == "id" {
			val := strings.ToLower(a.Val)
			if strings.Contains(val, "sidebar") ||
				strings.Contains(val, "comment") ||
				strings.Contains(val, "navbox") ||
				strings.Contains(val, "reflist") ||
				strings.Contains(val, "references") ||
				strings.Contains(val, "cookie") {
				return true
			}
		}
	}
	return false
}
