package paper

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Bloom taxonomy levels requested from the generator. Provider output is
// carried as-is; the level is a tag, not a validated enum.
const (
	BloomRemember   = "Remember"
	BloomUnderstand = "Understand"
	BloomApply      = "Apply"
	BloomAnalyze    = "Analyze"
	BloomEvaluate   = "Evaluate"
	BloomCreate     = "Create"
)

// ModuleSpec describes one syllabus module of the requested paper.
type ModuleSpec struct {
	ModuleNumber int    `json:"module_number"`
	Title        string `json:"title"`
	Topics       string `json:"topics"`
	NumQuestions int    `json:"num_questions"`
	Marks        int    `json:"marks"`
}

// GenerateRequest is the caller-facing payload for a generation run.
type GenerateRequest struct {
	Semester                     string         `json:"semester"`
	Subject                      string         `json:"subject"`
	SubjectCode                  string         `json:"subject_code"`
	TotalMarks                   int            `json:"total_marks"`
	Modules                      []ModuleSpec   `json:"modules"`
	MarksDistribution            map[string]int `json:"marks_distribution,omitempty"`
	SyllabusDocID                uuid.UUID      `json:"syllabus_doc_id"`
	ReferenceMaterialIDs         []uuid.UUID    `json:"reference_material_ids"`
	ReferenceQuestionMaterialIDs []uuid.UUID    `json:"reference_question_material_ids,omitempty"`
	NumSets                      int            `json:"num_sets,omitempty"`
}

// Scope is the uniqueness domain for question deduplication. Fingerprints
// are only compared between papers sharing all four fields.
type Scope struct {
	UserID      uuid.UUID
	Subject     string
	SubjectCode string
	Semester    string
}

// Candidate is one generated question before deduplication. Marks stays
// raw JSON so one question with a garbage marks value cannot fail the
// whole payload; the coercion to int happens in the dedup pass where a
// malformed value is isolated to the single question.
type Candidate struct {
	Text        string          `json:"text"`
	Marks       json.RawMessage `json:"marks"`
	BloomsLevel string          `json:"blooms_level"`
}

// GeneratedModule groups candidates under their module number.
type GeneratedModule struct {
	ModuleNumber int         `json:"module_number"`
	Questions    []Candidate `json:"questions"`
}

// GeneratedSet is one complete paper variant in the provider response.
type GeneratedSet struct {
	SetNumber int               `json:"set_number"`
	Modules   []GeneratedModule `json:"modules"`
}

// GenerationResult is the structured payload parsed out of the provider's
// raw response.
type GenerationResult struct {
	Sets []GeneratedSet `json:"sets"`
}

// AcceptedQuestion is a candidate that survived deduplication, ready for
// persistence in generation order.
type AcceptedQuestion struct {
	ModuleNumber int
	Text         string
	Marks        int
	BloomsLevel  string
	Fingerprint  string
}

// AcceptedSet pairs the provider's set number with its surviving questions.
// A set may end up empty; the paper record is still created for it.
type AcceptedSet struct {
	SetNumber int
	Questions []AcceptedQuestion
}

// QuestionOut is the API shape of a persisted question.
type QuestionOut struct {
	ID           int64  `json:"id"`
	ModuleNumber int    `json:"module_number"`
	Text         string `json:"question_text"`
	Marks        int    `json:"marks"`
	BloomsLevel  string `json:"blooms_level,omitempty"`
}

// PaperOut is the API shape of a persisted question paper.
type PaperOut struct {
	ID                uuid.UUID      `json:"id"`
	SetNumber         int            `json:"set_number"`
	Subject           string         `json:"subject"`
	SubjectCode       string         `json:"subject_code"`
	Semester          string         `json:"semester"`
	TotalMarks        int            `json:"total_marks"`
	NumModules        int            `json:"num_modules"`
	MarksDistribution map[string]int `json:"marks_distribution,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	Questions         []QuestionOut  `json:"questions"`
}
