// CLAUDE:SUMMARY Lenient schema repair of untrusted model JSON; patches structure, never invents question content.
package quizgen

import (
	"fmt"
	"time"
)

// defaultOptionIDs are the placeholder option ids used when an MCQ arrives
// with the wrong option cardinality.
var defaultOptionIDs = [4]string{"a", "b", "c", "d"}

// repairQuiz normalizes a raw decoded model response in place and returns
// it. It never fails: missing structure is synthesized from params, broken
// questions are patched field by field. It repairs structure only — it does
// not fabricate question content, so a response with no questions still
// fails the strict validator afterwards.
func repairQuiz(raw map[string]any, params GenerationParams, now time.Time) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}

	meta, _ := raw["meta"].(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}
	if s, ok := meta["title"].(string); !ok || s == "" {
		title := params.QuizName
		if title == "" {
			title = "Generated Quiz"
		}
		meta["title"] = title
	}
	if s, ok := meta["language"].(string); !ok || s == "" {
		meta["language"] = params.Language
	}
	if s, ok := meta["createdAt"].(string); !ok || !parseableTime(s) {
		meta["createdAt"] = now.Format(time.RFC3339)
	}
	raw["meta"] = meta

	sections, _ := raw["sections"].([]any)
	if len(sections) == 0 {
		sections = []any{map[string]any{
			"title":     "Questions",
			"questions": []any{},
		}}
	}

	total := 0
	qnum := 0
	for i, s := range sections {
		section, _ := s.(map[string]any)
		if section == nil {
			section = map[string]any{}
		}
		questions, _ := section["questions"].([]any)

		repaired := make([]any, 0, len(questions))
		for _, q := range questions {
			question, ok := q.(map[string]any)
			if !ok {
				continue
			}
			qnum++
			repaired = append(repaired, repairQuestion(question, params, qnum))
		}
		section["questions"] = repaired
		total += len(repaired)
		sections[i] = section
	}
	raw["sections"] = sections
	meta["numQuestions"] = total
	return raw
}

// repairQuestion patches one question object. n is the 1-based global
// question ordinal used for synthesized ids.
func repairQuestion(q map[string]any, params GenerationParams, n int) map[string]any {
	if s, ok := q["id"].(string); !ok || s == "" {
		q["id"] = fmt.Sprintf("q-%d", n)
	}
	if s, ok := q["prompt"].(string); !ok || s == "" {
		q["prompt"] = fmt.Sprintf("Question %d", n)
	}
	if s, ok := q["difficulty"].(string); !ok || s == "" {
		q["difficulty"] = string(params.Difficulty)
	}

	qtype, _ := q["type"].(string)
	switch QuestionType(qtype) {
	case QuestionMCQ:
		repairMCQ(q)
	case QuestionTrueFalse:
		if _, ok := q["answer"].(bool); !ok {
			q["answer"] = true
		}
	}

	// Explanation fallback comes last so it can reference repaired fields.
	if s, ok := q["explanation"].(string); !ok || s == "" {
		q["explanation"] = fallbackExplanation(q)
	}
	return q
}

// repairMCQ enforces the four-option shape: wrong cardinality is replaced
// with generic placeholders, every option gets an id and text, and
// correctOptionId falls back to the first option when it matches nothing.
func repairMCQ(q map[string]any) {
	options, _ := q["options"].([]any)
	if len(options) != 4 {
		options = make([]any, 4)
		for i, id := range defaultOptionIDs {
			options[i] = map[string]any{
				"id":   id,
				"text": fmt.Sprintf("Option %s", id),
			}
		}
	}

	ids := make([]string, 0, 4)
	for i, o := range options {
		option, _ := o.(map[string]any)
		if option == nil {
			option = map[string]any{}
		}
		id, _ := option["id"].(string)
		if id == "" {
			id = defaultOptionIDs[i%len(defaultOptionIDs)]
			option["id"] = id
		}
		if s, ok := option["text"].(string); !ok || s == "" {
			option["text"] = fmt.Sprintf("Option %s", id)
		}
		ids = append(ids, id)
		options[i] = option
	}
	q["options"] = options

	correct, _ := q["correctOptionId"].(string)
	found := false
	for _, id := range ids {
		if id == correct {
			found = true
			break
		}
	}
	if !found {
		q["correctOptionId"] = ids[0]
	}
}

// fallbackExplanation templates an explanation from whatever the repaired
// question now holds.
func fallbackExplanation(q map[string]any) string {
	qtype, _ := q["type"].(string)
	switch QuestionType(qtype) {
	case QuestionMCQ:
		correct, _ := q["correctOptionId"].(string)
		if options, ok := q["options"].([]any); ok {
			for _, o := range options {
				option, _ := o.(map[string]any)
				if option == nil {
					continue
				}
				if id, _ := option["id"].(string); id == correct {
					if text, _ := option["text"].(string); text != "" {
						return fmt.Sprintf("The correct answer is: %s.", text)
					}
				}
			}
		}
		return fmt.Sprintf("The correct answer is option %s.", correct)
	case QuestionTrueFalse:
		if answer, ok := q["answer"].(bool); ok {
			return fmt.Sprintf("This statement is %t.", answer)
		}
	}
	return "See the source document for details."
}

func parseableTime(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
