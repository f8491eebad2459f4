package paper

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultMaxReferenceChars bounds how much reference text goes into a
// prompt. The cutoff is a hard one, mid-paragraph if need be; it is a
// cost and context-window control, not a formatting nicety.
const DefaultMaxReferenceChars = 12000

// BuildPrompt assembles the generation instruction. Pure function: module
// specs and the exclusion list are embedded verbatim as JSON, reference
// text is truncated to maxRefChars, and the expected output shape is
// spelled out so the provider response can be parsed structurally.
func BuildPrompt(modules []ModuleSpec, referenceText string, existingQuestions []string, numSets, maxRefChars int) string {
	if maxRefChars <= 0 {
		maxRefChars = DefaultMaxReferenceChars
	}
	if len(referenceText) > maxRefChars {
		referenceText = referenceText[:maxRefChars]
	}
	if existingQuestions == nil {
		existingQuestions = []string{}
	}

	modulesJSON, _ := json.MarshalIndent(modules, "", "  ")
	existingJSON, _ := json.Marshal(existingQuestions)

	var b strings.Builder
	b.WriteString("You are an assistant that generates university examination question papers.\n\n")
	b.WriteString("CONSTRAINTS:\n")
	b.WriteString("- Use ONLY the given reference content as knowledge.\n")
	b.WriteString("- NO questions should be outside these syllabus topics and reference content.\n")
	b.WriteString("- Respect the number of questions and marks for each module.\n")
	b.WriteString("- Use Bloom's taxonomy levels (Remember, Understand, Apply, Analyze, Evaluate, Create).\n")
	fmt.Fprintf(&b, "- Generate %d DISTINCT sets of question papers.\n", numSets)
	b.WriteString("- Absolutely NO repetition of any question text across:\n")
	b.WriteString("  - different sets in this response\n")
	b.WriteString("  - and this list of previously used questions:\n")
	fmt.Fprintf(&b, "    %s\n\n", existingJSON)
	b.WriteString("MODULES (input specification):\n")
	b.Write(modulesJSON)
	b.WriteString("\n\nREFERENCE CONTENT (filtered by topics, concatenated syllabus + reference books + reference question papers):\n")
	b.WriteString(referenceText)
	b.WriteString("\n\nOUTPUT FORMAT:\nReturn ONLY JSON with this exact structure (no extra text):\n\n")
	b.WriteString(`{
  "sets": [
    {
      "set_number": 1,
      "modules": [
        {
          "module_number": 1,
          "questions": [
            {
              "text": "Question text here",
              "marks": 10,
              "blooms_level": "Analyze"
            }
          ]
        }
      ]
    }
  ]
}`)
	b.WriteString("\n")
	return b.String()
}
