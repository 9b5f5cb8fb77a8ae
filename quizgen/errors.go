// CLAUDE:SUMMARY Terminal error kinds of the generation pipeline; no stage retries internally.
package quizgen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyContent means the document decoded but carries no text.
	// Distinct from a decoder failure: the extraction itself succeeded.
	ErrEmptyContent = errors.New("quizgen: document contains no extractable text")

	// ErrContentTooLimited means the source is below the generation
	// quality threshold (low quality and under 200 words).
	ErrContentTooLimited = errors.New("quizgen: content too limited for generation")

	// ErrNoContent means chunking produced nothing usable.
	ErrNoContent = errors.New("quizgen: no content chunks produced")

	// ErrMalformedResponse means the model reply was not valid JSON.
	ErrMalformedResponse = errors.New("quizgen: model response is not valid JSON")

	// ErrModelInvocation wraps network/provider failures of the model call.
	ErrModelInvocation = errors.New("quizgen: model invocation failed")
)

// SchemaValidationError reports a repaired quiz that still violates the
// schema. Repair is best-effort, not a guarantee; the violation list is the
// diagnostic trail.
type SchemaValidationError struct {
	Violations []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("quizgen: quiz schema validation failed: %s",
		strings.Join(e.Violations, "; "))
}
