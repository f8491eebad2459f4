package repository

import (
	"time"

	"github.com/google/uuid"
)

// Material types stored in reference_materials.material_type.
const (
	MaterialTypeReference     = "reference"
	MaterialTypeQuestionPaper = "question_paper"
)

// User is a faculty account row.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// FacultyProfile holds the optional department/designation details.
type FacultyProfile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Department  string
	Designation string
	UpdatedAt   time.Time
}

// SyllabusDoc is an uploaded syllabus with its extracted text.
type SyllabusDoc struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Subject      string
	SubjectCode  string
	Semester     string
	OriginalName string
	FilePath     string
	ContentText  string
	UploadedAt   time.Time
}

// ReferenceMaterial is an uploaded reference book or past question paper.
type ReferenceMaterial struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	MaterialType string
	Title        string
	OriginalName string
	FilePath     string
	ContentText  string
	UploadedAt   time.Time
}

// QuestionPaper is one persisted paper set.
type QuestionPaper struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Subject           string
	SubjectCode       string
	Semester          string
	TotalMarks        int
	SetNumber         int
	NumModules        int
	MarksDistribution map[string]int
	CreatedAt         time.Time
}

// Question is a persisted question. Rows are immutable once created; the
// uniqueness scope columns are denormalized onto the row so the database
// can enforce (scope, fingerprint) uniqueness directly. The serial ID
// doubles as the insertion-order sort key within a paper.
type Question struct {
	ID           int64
	PaperID      uuid.UUID
	ModuleNumber int
	Text         string
	Marks        int
	BloomsLevel  string
	Fingerprint  string
	CreatedAt    time.Time
}

// QuestionHistory is the prior-question projection used by deduplication:
// the text feeds the prompt exclusion list, the fingerprint the dedup set.
type QuestionHistory struct {
	Text        string
	Fingerprint string
}

// NewQuestion holds insert parameters for one accepted question.
type NewQuestion struct {
	ModuleNumber int
	Text         string
	Marks        int
	BloomsLevel  string
	Fingerprint  string
}

// NewPaper holds insert parameters for one paper set and its questions.
type NewPaper struct {
	UserID            uuid.UUID
	Subject           string
	SubjectCode       string
	Semester          string
	TotalMarks        int
	SetNumber         int
	NumModules        int
	MarksDistribution map[string]int
	Questions         []NewQuestion
}
