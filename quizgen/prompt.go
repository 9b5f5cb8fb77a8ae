// CLAUDE:SUMMARY Prompt construction: system schema+rubric and user message embedding labeled source excerpts.
package quizgen

import (
	"fmt"
	"strings"

	"github.com/hazyhaar/quizforge/chunk"
	"github.com/hazyhaar/quizforge/docpipe"
)

// buildSystemPrompt enumerates the exact output schema and the generation
// rubric. The schema block is spelled out verbatim so smaller instruction
// models have no room to improvise field names.
func buildSystemPrompt(params GenerationParams) string {
	var b strings.Builder
	b.WriteString("You are an expert quiz author. You write factual quiz questions grounded strictly in the source excerpts you are given.\n\n")
	b.WriteString("Respond with a single JSON object and nothing else, matching exactly this schema:\n\n")
	b.WriteString(`{
  "meta": {
    "title": "quiz title derived from the document",
    "language": "` + params.Language + `",
    "numQuestions": ` + fmt.Sprint(params.NumQuestions) + `,
    "createdAt": "RFC 3339 timestamp"
  },
  "sections": [
    {
      "title": "section title",
      "questions": [
        {
          "id": "q-1",
          "type": "mcq",
          "prompt": "the question text",
          "options": [
            {"id": "a", "text": "..."},
            {"id": "b", "text": "..."},
            {"id": "c", "text": "..."},
            {"id": "d", "text": "..."}
          ],
          "correctOptionId": "a",
          "explanation": "why the answer is correct, citing the source",
          "difficulty": "` + string(params.Difficulty) + `"
        },
        {
          "id": "q-2",
          "type": "true-false",
          "prompt": "the statement to judge",
          "answer": true,
          "explanation": "why the statement is true or false",
          "difficulty": "` + string(params.Difficulty) + `"
        }
      ]
    }
  ]
}`)
	b.WriteString("\n\nRules:\n")
	fmt.Fprintf(&b, "- Produce exactly %d questions in total across all sections.\n", params.NumQuestions)

	types := make([]string, len(params.QuestionTypes))
	for i, qt := range params.QuestionTypes {
		types[i] = string(qt)
	}
	fmt.Fprintf(&b, "- Allowed question types: %s. Use no other type.\n", strings.Join(types, ", "))
	b.WriteString("- Multiple-choice questions have exactly 4 options with ids a, b, c, d and one correctOptionId among them.\n")
	b.WriteString("- Every question must be answerable from the source excerpts alone.\n")
	b.WriteString("- Every question must carry a non-empty explanation.\n")
	b.WriteString("- Spread questions across all excerpts instead of clustering on the first one.\n")
	fmt.Fprintf(&b, "- Target difficulty: %s.\n", params.Difficulty)
	fmt.Fprintf(&b, "- Write questions, options and explanations in language %q.\n", params.Language)
	return b.String()
}

// buildUserPrompt embeds each selected chunk labeled with its heading
// context, topics, type and importance, preceded by document-level stats.
func buildUserPrompt(content *docpipe.ExtractedContent, selected []chunk.Chunk, total int) string {
	var b strings.Builder
	b.WriteString("Document statistics:\n")
	fmt.Fprintf(&b, "- words: %d\n", content.Metadata.WordCount)
	fmt.Fprintf(&b, "- sections: %d\n", len(content.Sections))
	fmt.Fprintf(&b, "- excerpts supplied: %d of %d\n", len(selected), total)
	if content.Metadata.Language != "" {
		fmt.Fprintf(&b, "- language: %s\n", content.Metadata.Language)
	}
	fmt.Fprintf(&b, "- quality: %s\n", content.Metadata.Quality)
	for _, w := range content.Metadata.Warnings {
		fmt.Fprintf(&b, "- warning: %s\n", w)
	}

	b.WriteString("\nSource excerpts:\n")
	for _, c := range selected {
		b.WriteString("\n[")
		b.WriteString(c.ID)
		if c.Metadata.Context != "" {
			fmt.Fprintf(&b, " | context: %s", c.Metadata.Context)
		}
		fmt.Fprintf(&b, " | type: %s | importance: %.2f", c.Metadata.Type, c.Metadata.Importance)
		if len(c.Metadata.Topics) > 0 {
			fmt.Fprintf(&b, " | topics: %s", strings.Join(c.Metadata.Topics, ", "))
		}
		b.WriteString("]\n")
		b.WriteString(c.Content)
		b.WriteString("\n")
	}
	return b.String()
}
