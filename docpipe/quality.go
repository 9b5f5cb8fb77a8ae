// CLAUDE:SUMMARY Quality derivation: word-count thresholds, OCR artifact detection, sentence coherence checks.
// CLAUDE:EXPORTS countWords, detectOCRIssues, checkCoherence
package docpipe

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	lowWordThreshold    = 100
	mediumWordThreshold = 300
)

var (
	// Three or more repeats of characters OCR commonly confuses (l/I/1, O/0).
	ocrRepeatRe = regexp.MustCompile(`[Il1|O0]{3,}`)
	// Punctuation glued to the next word, e.g. "end.Next".
	gluedPunctRe  = regexp.MustCompile(`[.,!?;:][A-Za-z]`)
	sentenceEndRe = regexp.MustCompile(`[.!?]+\s+`)
)

// buildMetadata derives document-level metadata for an extraction.
// Quality is monotone-decreasing: it starts from the word-count grade and
// each detected issue category downgrades it one step with its own warning.
func buildMetadata(text string, format Format, pageCount int, hasImages bool, sections []Section) ContentMetadata {
	meta := ContentMetadata{
		WordCount: countWords(text),
		PageCount: pageCount,
		HasImages: hasImages,
		Language:  detectLanguage(text),
		Quality:   QualityHigh,
		Warnings:  []string{},
	}

	for _, s := range sections {
		if s.Type == SectionHeading {
			meta.HasStructure = true
			break
		}
	}

	switch {
	case meta.WordCount < lowWordThreshold:
		meta.Quality = QualityLow
		meta.Warnings = append(meta.Warnings,
			fmt.Sprintf("document contains only %d words; generated questions may lack depth", meta.WordCount))
	case meta.WordCount < mediumWordThreshold:
		meta.Quality = QualityMedium
		meta.Warnings = append(meta.Warnings,
			fmt.Sprintf("document contains only %d words; coverage will be limited", meta.WordCount))
	}

	if format == FormatPDF {
		for _, issue := range detectOCRIssues(text) {
			meta.Quality = downgrade(meta.Quality)
			meta.Warnings = append(meta.Warnings, issue)
		}
	}

	if warn := checkCoherence(text); warn != "" {
		meta.Quality = downgrade(meta.Quality)
		meta.Warnings = append(meta.Warnings, warn)
	}

	return meta
}

// downgrade lowers quality by one step. Low stays low.
func downgrade(q Quality) Quality {
	switch q {
	case QualityHigh:
		return QualityMedium
	default:
		return QualityLow
	}
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

// detectOCRIssues scans PDF text for artifact categories typical of scanned
// sources. Each category contributes at most one issue.
func detectOCRIssues(text string) []string {
	if text == "" {
		return nil
	}
	var issues []string

	if ocrRepeatRe.MatchString(text) {
		issues = append(issues, "repeated ambiguous character runs suggest OCR artifacts")
	}

	if matches := gluedPunctRe.FindAllStringIndex(text, -1); len(matches) > 5 {
		issues = append(issues, "missing spaces after punctuation suggest OCR or copy artifacts")
	}

	letters, uppers := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters > 0 && float64(uppers)/float64(letters) > 0.3 {
		issues = append(issues, "excessive uppercase density suggests degraded extraction")
	}

	return issues
}

// checkCoherence applies a crude sentence sanity check: average sentence
// length must fall in [20,200] characters and under 30% of sentences may be
// near-duplicates. Returns a warning string, or "" when the text passes.
func checkCoherence(text string) string {
	sentences := splitCoherenceSentences(text)
	if len(sentences) < 3 {
		return ""
	}

	totalLen := 0
	seen := make(map[string]int)
	dupes := 0
	for _, s := range sentences {
		totalLen += len(s)
		key := strings.ToLower(strings.Join(strings.Fields(s), " "))
		if seen[key] > 0 {
			dupes++
		}
		seen[key]++
	}

	avg := float64(totalLen) / float64(len(sentences))
	if avg < 20 || avg > 200 {
		return fmt.Sprintf("unusual average sentence length (%.0f chars); text may be fragmented", avg)
	}
	if float64(dupes)/float64(len(sentences)) > 0.3 {
		return "over 30% of sentences are near-duplicates; text may contain repeated boilerplate"
	}
	return ""
}

func splitCoherenceSentences(text string) []string {
	parts := sentenceEndRe.Split(text, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
