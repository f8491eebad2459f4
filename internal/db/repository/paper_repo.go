package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaperRepository persists question papers and their questions and serves
// the fingerprint history for the uniqueness scope.
type PaperRepository struct {
	pool *pgxpool.Pool
}

func NewPaperRepository(pool *pgxpool.Pool) *PaperRepository {
	return &PaperRepository{pool: pool}
}

// HistoryByScope returns text and fingerprint of every prior question in
// the (owner, subject, subject_code, semester) scope.
func (r *PaperRepository) HistoryByScope(ctx context.Context, userID uuid.UUID, subject, subjectCode, semester string) ([]QuestionHistory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_text, fingerprint
		 FROM questions
		 WHERE user_id = $1 AND subject = $2 AND subject_code = $3 AND semester = $4
		 ORDER BY created_at`,
		userID, subject, subjectCode, semester,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []QuestionHistory
	for rows.Next() {
		var h QuestionHistory
		if err := rows.Scan(&h.Text, &h.Fingerprint); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// CreateBatch persists every paper of one generation run, each with its
// accepted questions, in a single transaction. The UNIQUE
// (user_id, subject, subject_code, semester, fingerprint) constraint on
// questions is the authoritative duplicate guard: a concurrent run that
// slipped past the in-memory history check loses here, and the losing row
// is dropped via ON CONFLICT DO NOTHING rather than failing the batch.
func (r *PaperRepository) CreateBatch(ctx context.Context, papers []NewPaper) ([]QuestionPaper, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]QuestionPaper, 0, len(papers))
	for _, p := range papers {
		dist, err := json.Marshal(p.MarksDistribution)
		if err != nil {
			return nil, fmt.Errorf("marshal marks distribution: %w", err)
		}

		qp := QuestionPaper{
			ID:                uuid.New(),
			UserID:            p.UserID,
			Subject:           p.Subject,
			SubjectCode:       p.SubjectCode,
			Semester:          p.Semester,
			TotalMarks:        p.TotalMarks,
			SetNumber:         p.SetNumber,
			NumModules:        p.NumModules,
			MarksDistribution: p.MarksDistribution,
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO question_papers (id, user_id, subject, subject_code, semester, total_marks, set_number, num_modules, marks_distribution)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING created_at`,
			qp.ID, qp.UserID, qp.Subject, qp.SubjectCode, qp.Semester, qp.TotalMarks, qp.SetNumber, qp.NumModules, dist,
		).Scan(&qp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert paper set %d: %w", p.SetNumber, err)
		}

		for _, q := range p.Questions {
			if _, err := tx.Exec(ctx,
				`INSERT INTO questions (question_paper_id, user_id, subject, subject_code, semester, module_number, question_text, marks, blooms_level, fingerprint)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				 ON CONFLICT (user_id, subject, subject_code, semester, fingerprint) DO NOTHING`,
				qp.ID, p.UserID, p.Subject, p.SubjectCode, p.Semester, q.ModuleNumber, q.Text, q.Marks, q.BloomsLevel, q.Fingerprint,
			); err != nil {
				return nil, fmt.Errorf("insert question: %w", err)
			}
		}
		created = append(created, qp)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

// GetPaper fetches one paper owned by the user.
func (r *PaperRepository) GetPaper(ctx context.Context, userID, paperID uuid.UUID) (QuestionPaper, error) {
	var qp QuestionPaper
	var dist []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, subject, subject_code, semester, total_marks, set_number, num_modules, marks_distribution, created_at
		 FROM question_papers WHERE id = $1 AND user_id = $2`,
		paperID, userID,
	).Scan(&qp.ID, &qp.UserID, &qp.Subject, &qp.SubjectCode, &qp.Semester, &qp.TotalMarks, &qp.SetNumber, &qp.NumModules, &dist, &qp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return QuestionPaper{}, ErrNotFound
	}
	if err != nil {
		return QuestionPaper{}, err
	}
	if len(dist) > 0 {
		_ = json.Unmarshal(dist, &qp.MarksDistribution)
	}
	return qp, nil
}

// ListByUser returns the user's papers, newest first.
func (r *PaperRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]QuestionPaper, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, subject, subject_code, semester, total_marks, set_number, num_modules, marks_distribution, created_at
		 FROM question_papers WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []QuestionPaper
	for rows.Next() {
		var qp QuestionPaper
		var dist []byte
		if err := rows.Scan(&qp.ID, &qp.UserID, &qp.Subject, &qp.SubjectCode, &qp.Semester, &qp.TotalMarks, &qp.SetNumber, &qp.NumModules, &dist, &qp.CreatedAt); err != nil {
			return nil, err
		}
		if len(dist) > 0 {
			_ = json.Unmarshal(dist, &qp.MarksDistribution)
		}
		papers = append(papers, qp)
	}
	return papers, rows.Err()
}

// QuestionsByPapers loads questions for a set of papers in insertion
// order, keyed by paper ID.
func (r *PaperRepository) QuestionsByPapers(ctx context.Context, paperIDs []uuid.UUID) (map[uuid.UUID][]Question, error) {
	result := make(map[uuid.UUID][]Question, len(paperIDs))
	if len(paperIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, question_paper_id, module_number, question_text, marks, blooms_level, fingerprint, created_at
		 FROM questions WHERE question_paper_id = ANY($1)
		 ORDER BY id`,
		paperIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.PaperID, &q.ModuleNumber, &q.Text, &q.Marks, &q.BloomsLevel, &q.Fingerprint, &q.CreatedAt); err != nil {
			return nil, err
		}
		result[q.PaperID] = append(result[q.PaperID], q)
	}
	return result, rows.Err()
}
