package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers the JSON object from model output that may carry
// surrounding prose or code fences. It takes the substring between the
// first '{' and the last '}' and verifies it parses. Best-effort by
// nature: the provider makes no contract about output framing, so any
// failure here is a provider-response error, not a caller bug.
func ExtractJSON(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, &ErrProvider{Detail: "response contains no JSON object"}
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, &ErrProvider{Detail: "response JSON is malformed"}
	}
	return json.RawMessage(candidate), nil
}
