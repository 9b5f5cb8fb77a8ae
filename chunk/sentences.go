// CLAUDE:SUMMARY Sentence boundary splitting for oversized-section sub-chunking and overlap construction.
package chunk

import (
	"strings"
	"unicode"
)

// splitSentences breaks text at sentence boundaries: a run of .!? followed
// by whitespace and an uppercase letter, digit, or opening quote. Boundaries
// inside abbreviations survive as false splits occasionally; chunking
// tolerates that, it only needs stable, deterministic pieces.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		// Consume the terminal run (e.g. "?!", "...").
		j := i
		for j+1 < len(runes) && (isSentenceEnd(runes[j+1]) || runes[j+1] == '"' || runes[j+1] == '\'' || runes[j+1] == ')') {
			j++
		}
		// A boundary needs trailing whitespace and a sentence-opening rune after it.
		k := j + 1
		for k < len(runes) && unicode.IsSpace(runes[k]) {
			k++
		}
		if k == j+1 || k >= len(runes) {
			if k >= len(runes) {
				break
			}
			i = j
			continue
		}
		if unicode.IsUpper(runes[k]) || unicode.IsDigit(runes[k]) || runes[k] == '"' || runes[k] == '\'' {
			if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = k
			i = k - 1
		} else {
			i = j
		}
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// countWellFormedSentences counts sentences that start with an uppercase
// letter and end in terminal punctuation; an importance signal.
func countWellFormedSentences(text string) int {
	count := 0
	for _, s := range splitSentences(text) {
		runes := []rune(s)
		if len(runes) < 3 {
			continue
		}
		if unicode.IsUpper(runes[0]) && isSentenceEnd(runes[len(runes)-1]) {
			count++
		}
	}
	return count
}
