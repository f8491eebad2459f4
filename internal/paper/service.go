package paper

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/db/repository"
	"github.com/sainathvd/paperforge/internal/llm"
)

// Sentinel errors surfaced as 404-equivalents by the HTTP layer.
var (
	ErrSyllabusNotFound = errors.New("syllabus not found")
	ErrNoReferences     = errors.New("no reference materials found")
	ErrPaperNotFound    = errors.New("question paper not found")
)

type documentStore interface {
	GetSyllabus(ctx context.Context, userID, docID uuid.UUID) (repository.SyllabusDoc, error)
	GetMaterialsByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, materialType string) ([]repository.ReferenceMaterial, error)
}

type paperStore interface {
	HistoryByScope(ctx context.Context, userID uuid.UUID, subject, subjectCode, semester string) ([]repository.QuestionHistory, error)
	CreateBatch(ctx context.Context, papers []repository.NewPaper) ([]repository.QuestionPaper, error)
	GetPaper(ctx context.Context, userID, paperID uuid.UUID) (repository.QuestionPaper, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]repository.QuestionPaper, error)
	QuestionsByPapers(ctx context.Context, paperIDs []uuid.UUID) (map[uuid.UUID][]repository.Question, error)
}

// ServiceOptions tunes the generation pipeline.
type ServiceOptions struct {
	DefaultSets       int
	MaxReferenceChars int
	CallTimeout       time.Duration
}

// Service runs the generation pipeline end to end: resolve the reference
// corpus, filter it by the merged module topics, build the prompt, call
// the provider once, deduplicate against history and the in-batch set,
// and persist one paper per returned set. The pipeline is synchronous and
// sequential; the provider call is the sole blocking step and runs under
// a bounded timeout.
type Service struct {
	documents documentStore
	papers    paperStore
	cache     HistoryCache
	provider  llm.Provider
	opts      ServiceOptions
	logger    zerolog.Logger
}

func NewService(documents documentStore, papers paperStore, cache HistoryCache, provider llm.Provider, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.DefaultSets <= 0 {
		opts.DefaultSets = 3
	}
	if opts.MaxReferenceChars <= 0 {
		opts.MaxReferenceChars = DefaultMaxReferenceChars
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 90 * time.Second
	}
	return &Service{
		documents: documents,
		papers:    papers,
		cache:     cache,
		provider:  provider,
		opts:      opts,
		logger:    logger.With().Str("component", "paper_service").Logger(),
	}
}

// Generate produces and persists a batch of question-paper sets for the
// caller. Provider and lookup failures abort the whole request; once
// generation succeeds, per-question integrity problems only drop the
// offending question.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) ([]PaperOut, error) {
	numSets := req.NumSets
	if numSets <= 0 {
		numSets = s.opts.DefaultSets
	}

	corpus, err := s.resolveCorpus(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	scope := Scope{UserID: userID, Subject: req.Subject, SubjectCode: req.SubjectCode, Semester: req.Semester}
	history, err := s.loadHistory(ctx, scope)
	if err != nil {
		return nil, err
	}

	mergedTopics := mergeTopics(req.Modules)
	filtered := FilterByTopics(corpus, mergedTopics)
	prompt := BuildPrompt(req.Modules, filtered, history.Texts, numSets, s.opts.MaxReferenceChars)

	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	raw, err := s.provider.Complete(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	var result GenerationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &llm.ErrProvider{Detail: "unexpected response structure", Err: err}
	}

	historySet := make(map[string]struct{}, len(history.Fingerprints))
	for _, fp := range history.Fingerprints {
		historySet[fp] = struct{}{}
	}

	accepted, integrity := Dedupe(result, historySet)
	for _, ierr := range integrity {
		s.logger.Error().Err(ierr).Msg("dropping question with integrity problem")
	}

	batch := make([]repository.NewPaper, 0, len(accepted))
	total := 0
	for _, set := range accepted {
		p := repository.NewPaper{
			UserID:            userID,
			Subject:           req.Subject,
			SubjectCode:       req.SubjectCode,
			Semester:          req.Semester,
			TotalMarks:        req.TotalMarks,
			SetNumber:         set.SetNumber,
			NumModules:        len(req.Modules),
			MarksDistribution: req.MarksDistribution,
		}
		for _, q := range set.Questions {
			p.Questions = append(p.Questions, repository.NewQuestion{
				ModuleNumber: q.ModuleNumber,
				Text:         q.Text,
				Marks:        q.Marks,
				BloomsLevel:  q.BloomsLevel,
				Fingerprint:  q.Fingerprint,
			})
			total++
		}
		batch = append(batch, p)
	}

	created, err := s.papers.CreateBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && total > 0 {
		if err := s.cache.Invalidate(ctx, scope); err != nil {
			s.logger.Warn().Err(err).Msg("history cache invalidation failed")
		}
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("subject_code", req.SubjectCode).
		Int("sets", len(created)).
		Int("questions", total).
		Msg("question papers generated")

	return s.toPaperOuts(ctx, created)
}

// Get returns one paper with its questions.
func (s *Service) Get(ctx context.Context, userID, paperID uuid.UUID) (PaperOut, error) {
	qp, err := s.papers.GetPaper(ctx, userID, paperID)
	if errors.Is(err, repository.ErrNotFound) {
		return PaperOut{}, ErrPaperNotFound
	}
	if err != nil {
		return PaperOut{}, err
	}
	outs, err := s.toPaperOuts(ctx, []repository.QuestionPaper{qp})
	if err != nil {
		return PaperOut{}, err
	}
	return outs[0], nil
}

// List returns all of the user's papers, newest first, with questions.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]PaperOut, error) {
	papers, err := s.papers.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toPaperOuts(ctx, papers)
}

// resolveCorpus concatenates syllabus text with the selected reference
// materials and reference question papers, blank-line separated so the
// topic filter sees document boundaries as paragraph breaks.
func (s *Service) resolveCorpus(ctx context.Context, userID uuid.UUID, req GenerateRequest) (string, error) {
	syllabus, err := s.documents.GetSyllabus(ctx, userID, req.SyllabusDocID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrSyllabusNotFound
	}
	if err != nil {
		return "", err
	}

	refs, err := s.documents.GetMaterialsByIDs(ctx, userID, req.ReferenceMaterialIDs, repository.MaterialTypeReference)
	if err != nil {
		return "", err
	}

	var refQPs []repository.ReferenceMaterial
	if len(req.ReferenceQuestionMaterialIDs) > 0 {
		refQPs, err = s.documents.GetMaterialsByIDs(ctx, userID, req.ReferenceQuestionMaterialIDs, repository.MaterialTypeQuestionPaper)
		if err != nil {
			return "", err
		}
	}

	if len(refs) == 0 && len(refQPs) == 0 {
		return "", ErrNoReferences
	}

	parts := make([]string, 0, 1+len(refs)+len(refQPs))
	parts = append(parts, syllabus.ContentText)
	for _, m := range append(refs, refQPs...) {
		parts = append(parts, m.ContentText)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (s *Service) loadHistory(ctx context.Context, scope Scope) (ScopeHistory, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, scope); err == nil && cached != nil {
			return *cached, nil
		}
	}

	rows, err := s.papers.HistoryByScope(ctx, scope.UserID, scope.Subject, scope.SubjectCode, scope.Semester)
	if err != nil {
		return ScopeHistory{}, err
	}

	history := ScopeHistory{
		Texts:        make([]string, 0, len(rows)),
		Fingerprints: make([]string, 0, len(rows)),
	}
	for _, row := range rows {
		history.Texts = append(history.Texts, row.Text)
		history.Fingerprints = append(history.Fingerprints, row.Fingerprint)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, scope, history); err != nil {
			s.logger.Warn().Err(err).Msg("history cache write failed")
		}
	}
	return history, nil
}

func (s *Service) toPaperOuts(ctx context.Context, papers []repository.QuestionPaper) ([]PaperOut, error) {
	ids := make([]uuid.UUID, 0, len(papers))
	for _, p := range papers {
		ids = append(ids, p.ID)
	}
	questions, err := s.papers.QuestionsByPapers(ctx, ids)
	if err != nil {
		return nil, err
	}

	outs := make([]PaperOut, 0, len(papers))
	for _, p := range papers {
		out := PaperOut{
			ID:                p.ID,
			SetNumber:         p.SetNumber,
			Subject:           p.Subject,
			SubjectCode:       p.SubjectCode,
			Semester:          p.Semester,
			TotalMarks:        p.TotalMarks,
			NumModules:        p.NumModules,
			MarksDistribution: p.MarksDistribution,
			CreatedAt:         p.CreatedAt,
			Questions:         []QuestionOut{},
		}
		for _, q := range questions[p.ID] {
			out.Questions = append(out.Questions, QuestionOut{
				ID:           q.ID,
				ModuleNumber: q.ModuleNumber,
				Text:         q.Text,
				Marks:        q.Marks,
				BloomsLevel:  q.BloomsLevel,
			})
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func mergeTopics(modules []ModuleSpec) string {
	topics := make([]string, 0, len(modules))
	for _, m := range modules {
		topics = append(topics, m.Topics)
	}
	return strings.Join(topics, "\n")
}
