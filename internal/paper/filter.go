package paper

import "strings"

// FilterByTopics narrows a reference corpus to paragraphs mentioning at
// least one topic token. Topics split on commas and newlines; paragraphs
// split on blank lines; matching is plain substring, lowercased on both
// sides. Substring matching is deliberate ("sql" matching "results" is an
// accepted trade-off), and the filter fails open: an empty token set or
// zero matching paragraphs returns the corpus unchanged so the generator
// is never starved of context.
func FilterByTopics(referenceText, topics string) string {
	tokens := splitTopics(topics)
	if len(tokens) == 0 {
		return referenceText
	}

	var selected []string
	for _, p := range strings.Split(referenceText, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		low := strings.ToLower(p)
		for _, tok := range tokens {
			if strings.Contains(low, tok) {
				selected = append(selected, p)
				break
			}
		}
	}

	if len(selected) == 0 {
		return referenceText
	}
	return strings.Join(selected, "\n\n")
}

func splitTopics(topics string) []string {
	var tokens []string
	for _, raw := range strings.Split(strings.ReplaceAll(topics, "\n", ","), ",") {
		if tok := strings.ToLower(strings.TrimSpace(raw)); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
