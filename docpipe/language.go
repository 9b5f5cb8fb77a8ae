// CLAUDE:SUMMARY Crude stopword-based language tagging over the first 1000 characters.
package docpipe

import "strings"

// englishStopwords is a fixed set of very common English function words.
var englishStopwords = map[string]bool{
	"the": true, "and": true, "of": true, "to": true, "in": true,
	"is": true, "that": true, "it": true, "was": true, "for": true,
	"on": true, "are": true, "with": true, "as": true, "this": true,
}

const languageSampleLen = 1000

// detectLanguage tags text as "en" when enough common English stopwords
// appear in the first 1000 characters, else "unknown". This is a deliberate
// crude heuristic, not language identification; callers that need a real
// detector should replace this function, nothing else depends on its
// internals.
func detectLanguage(text string) string {
	if text == "" {
		return "unknown"
	}
	sample := text
	if len(sample) > languageSampleLen {
		sample = sample[:languageSampleLen]
	}

	hits := 0
	for _, w := range strings.Fields(strings.ToLower(sample)) {
		if englishStopwords[strings.Trim(w, ".,!?;:()\"'")] {
			hits++
		}
	}
	if hits >= 5 {
		return "en"
	}
	return "unknown"
}
