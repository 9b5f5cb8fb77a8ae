// CLAUDE:SUMMARY Strict quiz schema validation; collects every violation instead of short-circuiting.
package quizgen

import "fmt"

// validateQuiz is the sole acceptance gate after repair. It checks every
// invariant and returns all violations at once, nil when the quiz is valid.
func validateQuiz(q *Quiz) *SchemaValidationError {
	var violations []string

	if q.Meta.Title == "" {
		violations = append(violations, "meta.title is empty")
	}
	if q.Meta.CreatedAt.IsZero() {
		violations = append(violations, "meta.createdAt is missing")
	}
	if len(q.Sections) == 0 {
		violations = append(violations, "sections is empty")
	}

	total := 0
	for si, s := range q.Sections {
		if len(s.Questions) == 0 {
			violations = append(violations, fmt.Sprintf("sections[%d].questions is empty", si))
		}
		for qi, question := range s.Questions {
			label := fmt.Sprintf("sections[%d].questions[%d]", si, qi)
			total++
			violations = append(violations, validateQuestion(label, &question)...)
		}
	}

	if q.Meta.NumQuestions != total {
		violations = append(violations,
			fmt.Sprintf("meta.numQuestions %d does not match actual question count %d", q.Meta.NumQuestions, total))
	}

	if len(violations) == 0 {
		return nil
	}
	return &SchemaValidationError{Violations: violations}
}

func validateQuestion(label string, q *Question) []string {
	var violations []string
	if q.ID == "" {
		violations = append(violations, label+": id is empty")
	}
	if q.Prompt == "" {
		violations = append(violations, label+": prompt is empty")
	}
	if q.Explanation == "" {
		violations = append(violations, label+": explanation is empty")
	}

	switch q.Type {
	case QuestionMCQ:
		if len(q.Options) != 4 {
			violations = append(violations, fmt.Sprintf("%s: has %d options, want 4", label, len(q.Options)))
		}
		seen := make(map[string]bool, len(q.Options))
		correctFound := false
		for _, o := range q.Options {
			if o.ID == "" {
				violations = append(violations, label+": option with empty id")
				continue
			}
			if seen[o.ID] {
				violations = append(violations, fmt.Sprintf("%s: duplicate option id %q", label, o.ID))
			}
			seen[o.ID] = true
			if o.ID == q.CorrectOptionID {
				correctFound = true
			}
		}
		if !correctFound {
			violations = append(violations, fmt.Sprintf("%s: correctOptionId %q matches no option", label, q.CorrectOptionID))
		}
	case QuestionTrueFalse:
		if q.Answer == nil {
			violations = append(violations, label+": answer is missing")
		}
	default:
		violations = append(violations, fmt.Sprintf("%s: unknown question type %q", label, q.Type))
	}
	return violations
}
