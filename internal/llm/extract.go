package llm

import (
	"encoding/json"
	"strings"

	"quizmaster-service/internal/errs"
)

// ExtractJSON recovers a JSON payload from free-form completion text.
// Models rarely return bare JSON, so it tries, in order: the whole text, the
// interior of a ```json fence, the interior of any fence, and finally the
// span from the first '{' to the last '}'. Each candidate must actually
// parse before it wins.
func ExtractJSON(text string) (string, error) {
	if json.Valid([]byte(text)) {
		return text, nil
	}

	if inner, ok := fencedBlock(text, "```json"); ok && json.Valid([]byte(inner)) {
		return inner, nil
	}
	if inner, ok := fencedBlock(text, "```"); ok && json.Valid([]byte(inner)) {
		return inner, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		span := strings.TrimSpace(text[start : end+1])
		if json.Valid([]byte(span)) {
			return span, nil
		}
	}

	return "", errs.New(errs.KindGeneration, "could not extract valid JSON from response")
}

func fencedBlock(text, opening string) (string, bool) {
	start := strings.Index(text, opening)
	if start < 0 {
		return "", false
	}
	start += len(opening)
	end := strings.Index(text[start:], "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(text[start : start+end]), true
}
