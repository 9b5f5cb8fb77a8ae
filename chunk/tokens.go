// CLAUDE:SUMMARY Shared token estimation heuristic used by both chunking and budget selection.
// CLAUDE:EXPORTS EstimateTokens, CountWords
package chunk

import (
	"math"
	"strings"
	"unicode"
)

// EstimateTokens approximates the model token count of text as
// ceil(words*1.3 + punctuation*0.5 + numberTokens). It is a proxy, not a
// tokenizer, but it is the single source of truth for every budget decision
// in this package: chunk boundaries and selection both call it, so the two
// can never disagree. Pure and stateless.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	words := strings.Fields(text)
	punct := 0
	for _, r := range text {
		if unicode.IsPunct(r) {
			punct++
		}
	}
	numbers := 0
	for _, w := range words {
		if startsWithDigit(w) {
			numbers++
		}
	}

	return int(math.Ceil(float64(len(words))*1.3 + float64(punct)*0.5 + float64(numbers)))
}

// CountWords returns the whitespace-delimited word count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
