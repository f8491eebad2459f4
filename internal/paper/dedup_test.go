package paper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(text string, marks string) Candidate {
	return Candidate{Text: text, Marks: json.RawMessage(marks), BloomsLevel: "Understand"}
}

func singleModuleResult(sets ...[]Candidate) GenerationResult {
	result := GenerationResult{}
	for i, qs := range sets {
		result.Sets = append(result.Sets, GeneratedSet{
			SetNumber: i + 1,
			Modules:   []GeneratedModule{{ModuleNumber: 1, Questions: qs}},
		})
	}
	return result
}

func TestDedupeInBatchFirstOccurrenceWins(t *testing.T) {
	result := singleModuleResult(
		[]Candidate{candidate("Explain ACID properties", "10")},
		[]Candidate{
			candidate("  explain   ACID properties ", "10"), // formatting variant of set 1
			candidate("Define two-phase locking", "5"),
		},
	)

	sets, integrity := Dedupe(result, nil)
	require.Empty(t, integrity)
	require.Len(t, sets, 2)

	assert.Len(t, sets[0].Questions, 1)
	assert.Equal(t, "Explain ACID properties", sets[0].Questions[0].Text)

	// The repeat was dropped from set 2; the novel question survives.
	require.Len(t, sets[1].Questions, 1)
	assert.Equal(t, "Define two-phase locking", sets[1].Questions[0].Text)
}

func TestDedupeAgainstHistory(t *testing.T) {
	history := map[string]struct{}{
		Fingerprint("Explain ACID properties"): {},
	}

	result := singleModuleResult([]Candidate{
		candidate("EXPLAIN acid PROPERTIES", "10"),
		candidate("What is a deadlock?", "5"),
	})

	sets, integrity := Dedupe(result, history)
	require.Empty(t, integrity)
	require.Len(t, sets, 1)
	require.Len(t, sets[0].Questions, 1)
	assert.Equal(t, "What is a deadlock?", sets[0].Questions[0].Text)
}

func TestDedupeSkipsEmptyText(t *testing.T) {
	result := singleModuleResult([]Candidate{
		candidate("   ", "10"),
		candidate("", "10"),
		candidate("Real question", "10"),
	})

	sets, integrity := Dedupe(result, nil)
	require.Empty(t, integrity)
	require.Len(t, sets[0].Questions, 1)
	assert.Equal(t, "Real question", sets[0].Questions[0].Text)
}

func TestDedupeEmptySetStillReturned(t *testing.T) {
	history := map[string]struct{}{
		Fingerprint("only question"): {},
	}
	result := singleModuleResult([]Candidate{candidate("only question", "10")})

	sets, _ := Dedupe(result, history)
	require.Len(t, sets, 1)
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Empty(t, sets[0].Questions)
}

func TestDedupeMalformedMarksDropsOnlyThatQuestion(t *testing.T) {
	result := singleModuleResult([]Candidate{
		candidate("good question", "10"),
		candidate("bad marks question", `"ten"`),
		candidate("another good question", "5"),
	})

	sets, integrity := Dedupe(result, nil)
	require.Len(t, integrity, 1)
	assert.Contains(t, integrity[0].Error(), "malformed marks")

	require.Len(t, sets[0].Questions, 2)
	assert.Equal(t, "good question", sets[0].Questions[0].Text)
	assert.Equal(t, "another good question", sets[0].Questions[1].Text)
}

func TestDedupePreservesOrderWithinSet(t *testing.T) {
	result := GenerationResult{Sets: []GeneratedSet{{
		SetNumber: 1,
		Modules: []GeneratedModule{
			{ModuleNumber: 1, Questions: []Candidate{candidate("m1 q1", "2"), candidate("m1 q2", "2")}},
			{ModuleNumber: 2, Questions: []Candidate{candidate("m2 q1", "10")}},
		},
	}}}

	sets, _ := Dedupe(result, nil)
	require.Len(t, sets[0].Questions, 3)
	assert.Equal(t, []int{1, 1, 2}, []int{
		sets[0].Questions[0].ModuleNumber,
		sets[0].Questions[1].ModuleNumber,
		sets[0].Questions[2].ModuleNumber,
	})
}

func TestCoerceMarks(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"integer", "10", 10, false},
		{"quoted integer", `"10"`, 10, false},
		{"float truncates", "10.7", 10, false},
		{"quoted float", `"2.5"`, 2, false},
		{"null defaults to zero", "null", 0, false},
		{"empty defaults to zero", `""`, 0, false},
		{"absent defaults to zero", "", 0, false},
		{"non-numeric string", `"ten"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceMarks([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
