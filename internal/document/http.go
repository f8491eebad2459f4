package document

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/auth"
	"github.com/sainathvd/paperforge/internal/db/repository"
	httperrors "github.com/sainathvd/paperforge/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for file uploads.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for document endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

// SyllabusOut is the API shape of a stored syllabus document.
type SyllabusOut struct {
	ID           uuid.UUID `json:"id"`
	Subject      string    `json:"subject"`
	SubjectCode  string    `json:"subject_code"`
	Semester     string    `json:"semester"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// MaterialOut is the API shape of a stored reference material.
type MaterialOut struct {
	ID           uuid.UUID `json:"id"`
	MaterialType string    `json:"material_type"`
	Title        string    `json:"title"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Syllabus handles POST and GET /v1/files/syllabus (requires auth middleware).
func (h *HTTPHandlers) Syllabus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.uploadSyllabus(w, r, userID)
	case http.MethodGet:
		docs, err := h.svc.ListSyllabus(r.Context(), userID)
		if err != nil {
			h.logger.Error().Err(err).Msg("list syllabus failed")
			httperrors.RespondInternalError(w, "Failed to list syllabus documents")
			return
		}
		out := make([]SyllabusOut, 0, len(docs))
		for _, d := range docs {
			out = append(out, toSyllabusOut(d))
		}
		h.respondJSON(w, http.StatusOK, map[string]interface{}{"documents": out})
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

// Reference handles POST and GET /v1/files/reference (requires auth middleware).
func (h *HTTPHandlers) Reference(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.uploadReference(w, r, userID)
	case http.MethodGet:
		materials, err := h.svc.ListMaterials(r.Context(), userID)
		if err != nil {
			h.logger.Error().Err(err).Msg("list materials failed")
			httperrors.RespondInternalError(w, "Failed to list reference materials")
			return
		}
		out := make([]MaterialOut, 0, len(materials))
		for _, m := range materials {
			out = append(out, toMaterialOut(m))
		}
		h.respondJSON(w, http.StatusOK, map[string]interface{}{"materials": out})
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

func (h *HTTPHandlers) uploadSyllabus(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	if err := r.ParseMultipartForm(h.svc.opts.MaxBytes); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid multipart form")
		return
	}

	meta := SyllabusUpload{
		Subject:     r.FormValue("subject"),
		SubjectCode: r.FormValue("subject_code"),
		Semester:    r.FormValue("semester"),
	}
	if meta.Subject == "" || meta.SubjectCode == "" || meta.Semester == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "subject, subject_code and semester are required", "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "File is required", "file")
		return
	}
	defer file.Close()

	doc, err := h.svc.SaveSyllabus(r.Context(), userID, meta, header.Filename, file)
	if err != nil {
		h.respondUploadError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toSyllabusOut(doc))
}

func (h *HTTPHandlers) uploadReference(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	if err := r.ParseMultipartForm(h.svc.opts.MaxBytes); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid multipart form")
		return
	}

	materialType := r.FormValue("material_type")
	if materialType == "" {
		materialType = repository.MaterialTypeReference
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "File is required", "file")
		return
	}
	defer file.Close()

	m, err := h.svc.SaveMaterial(r.Context(), userID, r.FormValue("title"), materialType, header.Filename, file)
	if err != nil {
		h.respondUploadError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toMaterialOut(m))
}

func (h *HTTPHandlers) respondUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedFile):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnsupportedFile, err.Error())
	case errors.Is(err, ErrEmptyFile):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUploadFailed, err.Error())
	default:
		h.logger.Error().Err(err).Msg("upload failed")
		httperrors.RespondError(w, http.StatusBadRequest, httperrors.ErrCodeUploadFailed, err.Error())
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func toSyllabusOut(d repository.SyllabusDoc) SyllabusOut {
	return SyllabusOut{
		ID:           d.ID,
		Subject:      d.Subject,
		SubjectCode:  d.SubjectCode,
		Semester:     d.Semester,
		OriginalName: d.OriginalName,
		UploadedAt:   d.UploadedAt,
	}
}

func toMaterialOut(m repository.ReferenceMaterial) MaterialOut {
	return MaterialOut{
		ID:           m.ID,
		MaterialType: m.MaterialType,
		Title:        m.Title,
		OriginalName: m.OriginalName,
		UploadedAt:   m.UploadedAt,
	}
}
