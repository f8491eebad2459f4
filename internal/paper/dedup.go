package paper

import (
	"fmt"
	"strconv"
	"strings"
)

// Dedupe walks a generation result in order (set, then module, then
// question) and decides which candidates are novel. A candidate is
// dropped when its text trims to empty, when its fingerprint was already
// seen earlier in this same result, or when the fingerprint exists in the
// persisted history for the uniqueness scope. The first occurrence wins;
// later repeats are skipped regardless of which set they appear in.
//
// Malformed marks are a data-integrity problem confined to the single
// question: it is reported in the returned error slice and skipped, and
// the rest of its set is unaffected. Deterministic for identical input
// and history.
func Dedupe(result GenerationResult, history map[string]struct{}) ([]AcceptedSet, []error) {
	seen := make(map[string]struct{})
	sets := make([]AcceptedSet, 0, len(result.Sets))
	var integrity []error

	for _, set := range result.Sets {
		accepted := AcceptedSet{SetNumber: set.SetNumber}
		for _, module := range set.Modules {
			for _, q := range module.Questions {
				text := strings.TrimSpace(q.Text)
				if text == "" {
					continue
				}

				fp := Fingerprint(text)
				if _, dup := seen[fp]; dup {
					continue
				}
				if _, dup := history[fp]; dup {
					continue
				}

				marks, err := coerceMarks(q.Marks)
				if err != nil {
					integrity = append(integrity, fmt.Errorf("set %d module %d %q: %w", set.SetNumber, module.ModuleNumber, text, err))
					continue
				}

				seen[fp] = struct{}{}
				accepted.Questions = append(accepted.Questions, AcceptedQuestion{
					ModuleNumber: module.ModuleNumber,
					Text:         text,
					Marks:        marks,
					BloomsLevel:  q.BloomsLevel,
					Fingerprint:  fp,
				})
			}
		}
		sets = append(sets, accepted)
	}

	return sets, integrity
}

// coerceMarks converts the provider's marks value to an int. Numbers and
// numeric strings are accepted, floats truncate (providers occasionally
// emit 10.0), absent values default to zero. Anything else is malformed.
func coerceMarks(raw []byte) (int, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return 0, nil
	}
	if marks, err := strconv.Atoi(s); err == nil {
		return marks, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}
	return 0, fmt.Errorf("malformed marks value %q", s)
}
