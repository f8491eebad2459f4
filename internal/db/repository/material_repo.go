package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaterialRepository stores uploaded syllabus documents and reference
// materials and serves the ownership-scoped lookups the generation
// pipeline needs.
type MaterialRepository struct {
	pool *pgxpool.Pool
}

func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

// InsertSyllabus stores an uploaded syllabus document.
func (r *MaterialRepository) InsertSyllabus(ctx context.Context, doc SyllabusDoc) (SyllabusDoc, error) {
	doc.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO syllabus_docs (id, user_id, subject, subject_code, semester, original_name, file_path, content_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING uploaded_at`,
		doc.ID, doc.UserID, doc.Subject, doc.SubjectCode, doc.Semester, doc.OriginalName, doc.FilePath, doc.ContentText,
	).Scan(&doc.UploadedAt)
	if err != nil {
		return SyllabusDoc{}, err
	}
	return doc, nil
}

// GetSyllabus fetches a syllabus document owned by the given user.
func (r *MaterialRepository) GetSyllabus(ctx context.Context, userID, docID uuid.UUID) (SyllabusDoc, error) {
	var d SyllabusDoc
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, subject, subject_code, semester, original_name, file_path, content_text, uploaded_at
		 FROM syllabus_docs WHERE id = $1 AND user_id = $2`,
		docID, userID,
	).Scan(&d.ID, &d.UserID, &d.Subject, &d.SubjectCode, &d.Semester, &d.OriginalName, &d.FilePath, &d.ContentText, &d.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SyllabusDoc{}, ErrNotFound
	}
	if err != nil {
		return SyllabusDoc{}, err
	}
	return d, nil
}

// ListSyllabus returns the user's syllabus documents, newest first.
func (r *MaterialRepository) ListSyllabus(ctx context.Context, userID uuid.UUID) ([]SyllabusDoc, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, subject, subject_code, semester, original_name, file_path, content_text, uploaded_at
		 FROM syllabus_docs WHERE user_id = $1 ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []SyllabusDoc
	for rows.Next() {
		var d SyllabusDoc
		if err := rows.Scan(&d.ID, &d.UserID, &d.Subject, &d.SubjectCode, &d.Semester, &d.OriginalName, &d.FilePath, &d.ContentText, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// InsertMaterial stores an uploaded reference material.
func (r *MaterialRepository) InsertMaterial(ctx context.Context, m ReferenceMaterial) (ReferenceMaterial, error) {
	m.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reference_materials (id, user_id, material_type, title, original_name, file_path, content_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING uploaded_at`,
		m.ID, m.UserID, m.MaterialType, m.Title, m.OriginalName, m.FilePath, m.ContentText,
	).Scan(&m.UploadedAt)
	if err != nil {
		return ReferenceMaterial{}, err
	}
	return m, nil
}

// GetMaterialsByIDs fetches the user's materials of one type from an ID
// set. Missing or foreign IDs are silently absent from the result; the
// caller decides whether an empty result is an error.
func (r *MaterialRepository) GetMaterialsByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, materialType string) ([]ReferenceMaterial, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, material_type, title, original_name, file_path, content_text, uploaded_at
		 FROM reference_materials
		 WHERE user_id = $1 AND material_type = $2 AND id = ANY($3)
		 ORDER BY uploaded_at`,
		userID, materialType, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []ReferenceMaterial
	for rows.Next() {
		var m ReferenceMaterial
		if err := rows.Scan(&m.ID, &m.UserID, &m.MaterialType, &m.Title, &m.OriginalName, &m.FilePath, &m.ContentText, &m.UploadedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// ListMaterials returns the user's reference materials, newest first.
func (r *MaterialRepository) ListMaterials(ctx context.Context, userID uuid.UUID) ([]ReferenceMaterial, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, material_type, title, original_name, file_path, content_text, uploaded_at
		 FROM reference_materials WHERE user_id = $1 ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []ReferenceMaterial
	for rows.Next() {
		var m ReferenceMaterial
		if err := rows.Scan(&m.ID, &m.UserID, &m.MaterialType, &m.Title, &m.OriginalName, &m.FilePath, &m.ContentText, &m.UploadedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}
