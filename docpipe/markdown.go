// CLAUDE:SUMMARY Markdown extractor: ATX heading detection, list/paragraph block splitting.
package docpipe

import "strings"

// extractMarkdown splits a Markdown buffer into heading, list, and paragraph
// blocks. Only ATX (#) headings are detected; setext underlines are rare in
// uploaded course material and not worth the ambiguity.
func extractMarkdown(data []byte) []docBlock {
	lines := strings.Split(string(data), "\n")
	var blocks []docBlock
	var current strings.Builder
	currentKind := SectionParagraph

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			blocks = append(blocks, docBlock{text: text, kind: currentKind})
		}
		current.Reset()
		currentKind = SectionParagraph
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			flush()
			heading := strings.TrimSpace(strings.TrimRight(strings.TrimLeft(trimmed, "#"), "#"))
			if heading != "" {
				blocks = append(blocks, docBlock{text: heading, kind: SectionHeading, heading: true})
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if bulletLineRe.MatchString(trimmed) {
			if currentKind != SectionList && current.Len() > 0 {
				flush()
			}
			currentKind = SectionList
			if current.Len() > 0 {
				current.WriteByte('\n')
			}
			current.WriteString(trimmed)
			continue
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(trimmed)
	}
	flush()

	return blocks
}
