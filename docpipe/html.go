// CLAUDE:SUMMARY HTML extractor: DOM walk collecting headings, paragraphs, lists, and tables; skips boilerplate and hidden nodes.
package docpipe

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)font-size\s*:\s*0[^1-9]`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0[^.]`),
}

func hasHiddenStyle(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		for _, pat := range hiddenStylePatterns {
			if pat.MatchString(a.Val) {
				return true
			}
		}
	}
	return false
}

// extractHTML extracts content blocks from an HTML buffer. Script, style,
// nav, header, and footer subtrees are skipped, as are nodes hidden by
// inline styles.
func extractHTML(data []byte) ([]docBlock, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var blocks []docBlock
	walkHTMLNodes(doc, &blocks)

	if len(blocks) == 0 {
		// Fallback: all visible text as a single paragraph.
		if text := collectHTMLText(doc); text != "" {
			blocks = append(blocks, docBlock{text: text, kind: SectionParagraph})
		}
	}
	return blocks, nil
}

func walkHTMLNodes(n *html.Node, blocks *[]docBlock) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Nav, atom.Footer, atom.Header:
			return
		}
		if hasHiddenStyle(n) {
			return
		}

		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			if text := collectHTMLText(n); text != "" {
				*blocks = append(*blocks, docBlock{text: text, kind: SectionHeading, heading: true})
			}
			return
		case atom.P:
			if text := collectHTMLText(n); text != "" {
				*blocks = append(*blocks, docBlock{text: text, kind: SectionParagraph})
			}
			return
		case atom.Table:
			if text := collectHTMLText(n); text != "" {
				*blocks = append(*blocks, docBlock{text: text, kind: SectionTable})
			}
			return
		case atom.Ul, atom.Ol:
			if text := collectHTMLText(n); text != "" {
				*blocks = append(*blocks, docBlock{text: text, kind: SectionList})
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTMLNodes(c, blocks)
	}
}

// collectHTMLText extracts all visible text from a node subtree.
func collectHTMLText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
			if hasHiddenStyle(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
