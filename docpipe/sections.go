// CLAUDE:SUMMARY Heuristic section detection: blank-line block splitting, heading/list/table/paragraph classification, confidence scoring.
package docpipe

import (
	"regexp"
	"strings"
	"unicode"
)

const minBlockLen = 10

var (
	numberedHeadingRe = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+\S`)
	bulletLineRe      = regexp.MustCompile(`^\s*([-*•‣◦]|\d+[.)]|[a-z][.)])\s+`)
)

// detectSections splits normalized text on blank-line boundaries and
// classifies each candidate block. Blocks under minBlockLen characters are
// dropped as noise. Classification precedence: heading → list → table →
// paragraph → unknown.
func detectSections(text string) []Section {
	var sections []Section
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if len(block) < minBlockLen {
			continue
		}
		sections = append(sections, classifyBlock(block))
	}
	return sections
}

// classifyBlock builds a Section for one candidate block.
func classifyBlock(block string) Section {
	conf := scoreConfidence(block)

	switch {
	case isHeadingBlock(block):
		// Headings get a detection bonus on top of the base signals.
		return Section{
			Title:      block,
			Content:    block,
			Type:       SectionHeading,
			Confidence: clamp01(conf + 0.2),
		}
	case isListBlock(block):
		return Section{Content: block, Type: SectionList, Confidence: conf}
	case isTableBlock(block):
		return Section{Content: block, Type: SectionTable, Confidence: conf}
	case len(block) > 50 && strings.Contains(block, "."):
		return Section{Content: block, Type: SectionParagraph, Confidence: conf}
	default:
		return Section{Content: block, Type: SectionUnknown, Confidence: conf}
	}
}

// isHeadingBlock reports whether a block looks like a section heading:
// a single short line without terminal punctuation that either starts with a
// capital (and has no trailing period), matches a numbered-heading pattern,
// or is written in all caps.
func isHeadingBlock(block string) bool {
	if strings.Contains(block, "\n") || len(block) > 100 {
		return false
	}
	if strings.ContainsAny(lastRune(block), ".!?,;:") {
		return false
	}
	if numberedHeadingRe.MatchString(block) {
		return true
	}
	if isAllCaps(block) {
		return true
	}
	return startsWithUpper(block)
}

// isListBlock reports whether a block is a bulleted or numbered list:
// at least two marker lines, or marker lines making up more than half of
// all lines.
func isListBlock(block string) bool {
	lines := strings.Split(block, "\n")
	marked := 0
	for _, line := range lines {
		if bulletLineRe.MatchString(line) {
			marked++
		}
	}
	if marked >= 2 {
		return true
	}
	return len(lines) > 0 && marked*2 > len(lines)
}

// isTableBlock reports whether a block looks tabular: at least two lines in
// which a pipe or tab separates three or more fields.
func isTableBlock(block string) bool {
	tabular := 0
	for _, line := range strings.Split(block, "\n") {
		if countFields(line, '|') >= 3 || countFields(line, '\t') >= 3 {
			tabular++
		}
		if tabular >= 2 {
			return true
		}
	}
	return false
}

// scoreConfidence starts at 0.5 and adjusts by independent signals,
// clamped to [0,1].
func scoreConfidence(block string) float64 {
	score := 0.5
	if isWellFormedSentence(block) {
		score += 0.2
	}
	if startsWithUpper(block) {
		score += 0.1
	}
	if len(block) < 20 {
		score -= 0.2
	}
	if len(block) > 2000 {
		score -= 0.1
	}
	if strings.ContainsAny(block, ":;") {
		score += 0.1
	}
	return clamp01(score)
}

// isWellFormedSentence reports whether text starts with an uppercase letter
// and ends with terminal punctuation.
func isWellFormedSentence(text string) bool {
	if !startsWithUpper(text) {
		return false
	}
	return strings.ContainsAny(lastRune(text), ".!?")
}

func startsWithUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func lastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}

// isAllCaps reports whether a block contains letters and none are lowercase.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// countFields counts non-empty fields produced by splitting on sep.
func countFields(line string, sep rune) int {
	fields := 0
	for _, f := range strings.Split(line, string(sep)) {
		if strings.TrimSpace(f) != "" {
			fields++
		}
	}
	return fields
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
