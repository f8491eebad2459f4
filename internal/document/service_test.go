package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainathvd/paperforge/internal/db/repository"
)

type stubMaterialStore struct {
	syllabus  []repository.SyllabusDoc
	materials []repository.ReferenceMaterial
}

func (s *stubMaterialStore) InsertSyllabus(ctx context.Context, doc repository.SyllabusDoc) (repository.SyllabusDoc, error) {
	s.syllabus = append(s.syllabus, doc)
	return doc, nil
}

func (s *stubMaterialStore) ListSyllabus(ctx context.Context, userID uuid.UUID) ([]repository.SyllabusDoc, error) {
	return s.syllabus, nil
}

func (s *stubMaterialStore) InsertMaterial(ctx context.Context, m repository.ReferenceMaterial) (repository.ReferenceMaterial, error) {
	s.materials = append(s.materials, m)
	return m, nil
}

func (s *stubMaterialStore) ListMaterials(ctx context.Context, userID uuid.UUID) ([]repository.ReferenceMaterial, error) {
	return s.materials, nil
}

func newTestService(t *testing.T) (*Service, *stubMaterialStore) {
	t.Helper()
	store := &stubMaterialStore{}
	svc := NewService(store, ServiceOptions{UploadDir: t.TempDir(), MaxBytes: 1024}, zerolog.Nop())
	return svc, store
}

func TestSaveSyllabus(t *testing.T) {
	svc, store := newTestService(t)
	userID := uuid.New()

	doc, err := svc.SaveSyllabus(context.Background(), userID, SyllabusUpload{
		Subject: "DBMS", SubjectCode: "CS301", Semester: "5",
	}, "syllabus.txt", strings.NewReader("  Module 1: Transactions\nModule 2: Indexing  "))
	require.NoError(t, err)

	assert.Equal(t, "Module 1: Transactions\nModule 2: Indexing", doc.ContentText)
	assert.Equal(t, "syllabus.txt", doc.OriginalName)
	require.Len(t, store.syllabus, 1)

	// The original bytes land on disk under the user's directory.
	data, err := os.ReadFile(doc.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Module 1")
	assert.Equal(t, userID.String(), filepath.Base(filepath.Dir(doc.FilePath)))
}

func TestSaveSyllabusRejectsNonTxt(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveSyllabus(context.Background(), uuid.New(), SyllabusUpload{
		Subject: "DBMS", SubjectCode: "CS301", Semester: "5",
	}, "syllabus.pdf", strings.NewReader("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestSaveSyllabusRejectsEmptyFile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveSyllabus(context.Background(), uuid.New(), SyllabusUpload{
		Subject: "DBMS", SubjectCode: "CS301", Semester: "5",
	}, "empty.txt", strings.NewReader("   \n\t  "))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSaveSyllabusRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveSyllabus(context.Background(), uuid.New(), SyllabusUpload{
		Subject: "DBMS", SubjectCode: "CS301", Semester: "5",
	}, "big.txt", strings.NewReader(strings.Repeat("x", 2048)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "byte limit")
}

func TestSaveMaterial(t *testing.T) {
	svc, store := newTestService(t)

	m, err := svc.SaveMaterial(context.Background(), uuid.New(), "", repository.MaterialTypeQuestionPaper,
		"previous_paper.txt", strings.NewReader("Q1. Explain ACID."))
	require.NoError(t, err)

	assert.Equal(t, repository.MaterialTypeQuestionPaper, m.MaterialType)
	assert.Equal(t, "previous_paper", m.Title, "title falls back to the filename stem")
	assert.Len(t, store.materials, 1)
}

func TestSaveMaterialInvalidType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveMaterial(context.Background(), uuid.New(), "t", "textbook",
		"book.txt", strings.NewReader("content"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid material_type")
}
