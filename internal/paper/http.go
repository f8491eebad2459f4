package paper

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/auth"
	"github.com/sainathvd/paperforge/internal/llm"
	httperrors "github.com/sainathvd/paperforge/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for paper generation and retrieval.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for paper endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

// Generate handles POST /v1/papers/generate (requires auth middleware).
func (h *HTTPHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if req.Subject == "" || req.SubjectCode == "" || req.Semester == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "subject, subject_code and semester are required", "")
		return
	}
	if len(req.Modules) == 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "at least one module is required", "modules")
		return
	}

	papers, err := h.svc.Generate(r.Context(), userID, req)
	if err != nil {
		h.respondGenerateError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"papers": papers,
	})
}

// List handles GET /v1/papers (requires auth middleware).
func (h *HTTPHandlers) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	papers, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("list papers failed")
		httperrors.RespondInternalError(w, "Failed to list papers")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"papers": papers,
	})
}

// Get handles GET /v1/papers/{id} (requires auth middleware).
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	paperID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPaperID, "Invalid paper ID")
		return
	}

	paper, err := h.svc.Get(r.Context(), userID, paperID)
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodePaperNotFound, "Question paper not found")
			return
		}
		h.logger.Error().Err(err).Str("paper_id", paperID.String()).Msg("get paper failed")
		httperrors.RespondInternalError(w, "Failed to load paper")
		return
	}

	h.respondJSON(w, http.StatusOK, paper)
}

// respondGenerateError maps pipeline failures to HTTP statuses. Missing
// inputs are 404s; provider configuration and quota problems are 503s so
// callers know to retry later; everything else upstream is a 502.
func (h *HTTPHandlers) respondGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSyllabusNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSyllabusNotFound, "Syllabus document not found")
	case errors.Is(err, ErrNoReferences):
		httperrors.RespondNotFound(w, httperrors.ErrCodeReferencesNotFound, "No reference materials found for the given IDs")
	default:
		var unavailable *llm.ErrUnavailable
		var quota *llm.ErrQuotaExceeded
		var provider *llm.ErrProvider
		switch {
		case errors.As(err, &unavailable):
			httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeProviderUnavailable, unavailable.Reason)
		case errors.As(err, &quota):
			httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeProviderQuota,
				"Generation quota exceeded. Check the provider billing plan and retry later.")
		case errors.As(err, &provider):
			h.logger.Error().Err(err).Msg("provider call failed")
			httperrors.RespondBadGateway(w, httperrors.ErrCodeUpstreamError, provider.Detail)
		default:
			h.logger.Error().Err(err).Msg("paper generation failed")
			httperrors.RespondInternalError(w, "Paper generation failed")
		}
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
