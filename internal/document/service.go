package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/db/repository"
)

var (
	// ErrUnsupportedFile is returned for uploads whose text cannot be
	// extracted. Only plain-text files are supported.
	ErrUnsupportedFile = errors.New("unsupported file type: only .txt files are accepted")
	// ErrEmptyFile is returned when the upload has no usable text.
	ErrEmptyFile = errors.New("uploaded file contains no text")
)

type materialStore interface {
	InsertSyllabus(ctx context.Context, doc repository.SyllabusDoc) (repository.SyllabusDoc, error)
	ListSyllabus(ctx context.Context, userID uuid.UUID) ([]repository.SyllabusDoc, error)
	InsertMaterial(ctx context.Context, m repository.ReferenceMaterial) (repository.ReferenceMaterial, error)
	ListMaterials(ctx context.Context, userID uuid.UUID) ([]repository.ReferenceMaterial, error)
}

// ServiceOptions configures upload handling.
type ServiceOptions struct {
	UploadDir string
	MaxBytes  int64
}

// Service stores uploaded syllabus documents and reference materials,
// extracting their text for the generation pipeline.
type Service struct {
	store  materialStore
	opts   ServiceOptions
	logger zerolog.Logger
}

// NewService creates the document service. The upload directory is
// created on first use.
func NewService(store materialStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.UploadDir == "" {
		opts.UploadDir = "uploaded_files"
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 << 20
	}
	return &Service{
		store:  store,
		opts:   opts,
		logger: logger.With().Str("component", "document").Logger(),
	}
}

// SyllabusUpload carries the metadata fields of a syllabus upload.
type SyllabusUpload struct {
	Subject     string
	SubjectCode string
	Semester    string
}

// SaveSyllabus extracts text from the uploaded file, writes the original
// to disk and records the document.
func (s *Service) SaveSyllabus(ctx context.Context, userID uuid.UUID, meta SyllabusUpload, filename string, file io.Reader) (repository.SyllabusDoc, error) {
	text, savedPath, err := s.saveAndExtract(userID, filename, file)
	if err != nil {
		return repository.SyllabusDoc{}, err
	}

	doc, err := s.store.InsertSyllabus(ctx, repository.SyllabusDoc{
		ID:           uuid.New(),
		UserID:       userID,
		Subject:      meta.Subject,
		SubjectCode:  meta.SubjectCode,
		Semester:     meta.Semester,
		OriginalName: filename,
		FilePath:     savedPath,
		ContentText:  text,
	})
	if err != nil {
		return repository.SyllabusDoc{}, fmt.Errorf("insert syllabus: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("doc_id", doc.ID.String()).
		Str("subject", meta.Subject).
		Msg("syllabus uploaded")
	return doc, nil
}

// SaveMaterial extracts text from the uploaded file and records it as a
// reference book or past question paper.
func (s *Service) SaveMaterial(ctx context.Context, userID uuid.UUID, title, materialType, filename string, file io.Reader) (repository.ReferenceMaterial, error) {
	if materialType != repository.MaterialTypeReference && materialType != repository.MaterialTypeQuestionPaper {
		return repository.ReferenceMaterial{}, fmt.Errorf("invalid material_type %q", materialType)
	}

	text, savedPath, err := s.saveAndExtract(userID, filename, file)
	if err != nil {
		return repository.ReferenceMaterial{}, err
	}

	if title == "" {
		title = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	m, err := s.store.InsertMaterial(ctx, repository.ReferenceMaterial{
		ID:           uuid.New(),
		UserID:       userID,
		MaterialType: materialType,
		Title:        title,
		OriginalName: filename,
		FilePath:     savedPath,
		ContentText:  text,
	})
	if err != nil {
		return repository.ReferenceMaterial{}, fmt.Errorf("insert material: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("material_id", m.ID.String()).
		Str("type", materialType).
		Msg("reference material uploaded")
	return m, nil
}

// ListSyllabus returns the caller's syllabus documents, newest first.
func (s *Service) ListSyllabus(ctx context.Context, userID uuid.UUID) ([]repository.SyllabusDoc, error) {
	return s.store.ListSyllabus(ctx, userID)
}

// ListMaterials returns the caller's reference materials, newest first.
func (s *Service) ListMaterials(ctx context.Context, userID uuid.UUID) ([]repository.ReferenceMaterial, error) {
	return s.store.ListMaterials(ctx, userID)
}

// saveAndExtract writes the upload to disk under a per-user directory and
// returns its extracted text. Only .txt is supported; other formats would
// need a dedicated extractor.
func (s *Service) saveAndExtract(userID uuid.UUID, filename string, file io.Reader) (text, savedPath string, err error) {
	if !strings.EqualFold(filepath.Ext(filename), ".txt") {
		return "", "", ErrUnsupportedFile
	}

	data, err := io.ReadAll(io.LimitReader(file, s.opts.MaxBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return "", "", fmt.Errorf("file exceeds %d byte limit", s.opts.MaxBytes)
	}
	if !utf8.Valid(data) {
		return "", "", ErrUnsupportedFile
	}

	text = strings.TrimSpace(string(data))
	if text == "" {
		return "", "", ErrEmptyFile
	}

	dir := filepath.Join(s.opts.UploadDir, userID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	// Random prefix avoids collisions between same-named uploads.
	savedPath = filepath.Join(dir, uuid.New().String()+"_"+filepath.Base(filename))
	if err := os.WriteFile(savedPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write upload: %w", err)
	}
	return text, savedPath, nil
}
