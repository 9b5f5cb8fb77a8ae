// CLAUDE:SUMMARY Topic extraction: frequent non-stopword terms plus capitalized multi-word sequences, capped at 8.
package chunk

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxFrequentTopics   = 5
	maxProperNounTopics = 3
	maxTopics           = 8
)

// topicStopwords excludes common function words from frequency counting.
var topicStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"from": true, "they": true, "will": true, "what": true, "when": true,
	"which": true, "their": true, "there": true, "these": true, "those": true,
	"been": true, "were": true, "into": true, "more": true, "also": true,
	"than": true, "then": true, "them": true, "some": true, "such": true,
	"about": true, "other": true, "would": true, "could": true, "should": true,
}

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9\s]+`)
	properNounRe = regexp.MustCompile(`[A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)+`)
)

// extractTopics derives up to 8 topic strings for a chunk: the five most
// frequent non-stopword terms appearing more than once, plus up to three
// distinct capitalized multi-word sequences (a crude proper-noun signal)
// between 3 and 30 characters.
func extractTopics(text string) []string {
	freq := make(map[string]int)
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), " ")
	for _, w := range strings.Fields(cleaned) {
		if len(w) < 3 || topicStopwords[w] {
			continue
		}
		freq[w]++
	}

	type wf struct {
		word  string
		count int
	}
	var candidates []wf
	for w, c := range freq {
		if c > 1 {
			candidates = append(candidates, wf{w, c})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].word < candidates[j].word
	})

	var topics []string
	seen := make(map[string]bool)
	for i := 0; i < len(candidates) && i < maxFrequentTopics; i++ {
		topics = append(topics, candidates[i].word)
		seen[candidates[i].word] = true
	}

	proper := 0
	for _, m := range properNounRe.FindAllString(text, -1) {
		if proper >= maxProperNounTopics {
			break
		}
		if len(m) < 3 || len(m) > 30 {
			continue
		}
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		topics = append(topics, m)
		proper++
	}

	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}
