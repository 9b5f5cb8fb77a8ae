// CLAUDE:SUMMARY Text normalization: whitespace collapse, line-ending unification, hyphen-break rejoin, control char strip.
// CLAUDE:EXPORTS Normalize
package docpipe

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// word-\n break → wordbreak (hyphenation across a line wrap).
	hyphenBreakRe = regexp.MustCompile(`([A-Za-z])-[ \t]*\n[ \t]*([a-z])`)
	tabRunRe      = regexp.MustCompile(`[ \t]*\t[ \t]*`)
	spaceRunRe    = regexp.MustCompile(` {2,}`)
	lineEdgeRe    = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	newlineRunRe  = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw extracted text: unifies line endings, rejoins
// hyphen-broken words split across a line wrap, strips non-printable control
// characters (newline and tab excepted), collapses runs of spaces to a single
// space and whitespace runs containing a tab to a single tab (tabs are field
// separators the table detector relies on), and collapses three or more
// newlines to exactly two — the paragraph boundary marker the section
// detector relies on.
//
// Pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = stripControl(s)
	s = hyphenBreakRe.ReplaceAllString(s, "$1$2")
	s = tabRunRe.ReplaceAllString(s, "\t")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = lineEdgeRe.ReplaceAllString(s, "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// stripControl removes control characters except newline and tab.
func stripControl(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
