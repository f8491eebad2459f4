package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/db/repository"
	httperrors "github.com/sainathvd/paperforge/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for authentication and faculty profiles.
type HTTPHandlers struct {
	authSvc  *Service
	oauthSvc *OAuthService
	logger   zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for auth endpoints.
func NewHTTPHandlers(authSvc *Service, oauthSvc *OAuthService, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		authSvc:  authSvc,
		oauthSvc: oauthSvc,
		logger:   logger,
	}
}

// Register handles POST /v1/auth/register
func (h *HTTPHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	user, tokens, err := h.authSvc.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeEmailTaken, "Email already registered")
			return
		}
		httperrors.RespondBadRequest(w, httperrors.ErrCodeRegistrationFailed, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":       user.ID.String(),
		"name":          user.Name,
		"email":         user.Email,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

// Login handles POST /v1/auth/login
func (h *HTTPHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	user, tokens, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeLoginFailed, "Invalid email or password")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":       user.ID.String(),
		"name":          user.Name,
		"email":         user.Email,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

// RefreshToken handles POST /v1/auth/refresh
func (h *HTTPHandlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	_, tokens, err := h.authSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeRefreshFailed, "Invalid or expired refresh token")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

// OAuthStart handles GET /v1/oauth/{provider}/start
func (h *HTTPHandlers) OAuthStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	if h.oauthSvc == nil {
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeOAuthNotConfigured, "OAuth is not configured")
		return
	}

	provider := extractProviderFromPath(r.URL.Path)
	if provider == "" {
		provider = OAuthProviderGoogle
	}

	// CSRF state token
	state := uuid.New().String()

	authURL, err := h.oauthSvc.StartOAuthFlow(provider, state)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeOAuthStartFailed, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"auth_url": authURL,
		"state":    state,
	})
}

// OAuthCallback handles GET /v1/oauth/{provider}/callback
func (h *HTTPHandlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	if h.oauthSvc == nil {
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeOAuthNotConfigured, "OAuth is not configured")
		return
	}

	provider := extractProviderFromPath(r.URL.Path)
	if provider == "" {
		provider = OAuthProviderGoogle
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if code == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeOAuthMissingCode, "Authorization code required")
		return
	}

	// Validate state (CSRF protection)
	cookie, err := r.Cookie("oauth_state")
	if err != nil || cookie.Value != state {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeOAuthInvalidState, "Invalid or missing state parameter")
		return
	}

	userInfo, err := h.oauthSvc.HandleOAuthCallback(r.Context(), provider, code)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeOAuthCallbackFailed, err.Error())
		return
	}

	user, tokens, err := h.authSvc.FindOrCreateOAuthUser(r.Context(), userInfo.Name, userInfo.Email)
	if err != nil {
		httperrors.RespondInternalError(w, err.Error())
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
	})

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":       user.ID.String(),
		"name":          user.Name,
		"email":         user.Email,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

// GetMe handles GET /v1/users/me (requires auth middleware)
func (h *HTTPHandlers) GetMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "Invalid or missing token")
		return
	}

	user, err := h.authSvc.GetUser(r.Context(), userID)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "User not found")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// Profile handles GET and PUT /v1/profile (requires auth middleware)
func (h *HTTPHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "Invalid or missing token")
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := h.authSvc.GetProfile(r.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Profile not found")
				return
			}
			httperrors.RespondInternalError(w, "Failed to load profile")
			return
		}
		h.respondJSON(w, http.StatusOK, profile)

	case http.MethodPut:
		var req ProfileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}

		profile, err := h.authSvc.UpdateProfile(r.Context(), userID, req)
		if err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeProfileUpdateFailed, err.Error())
			return
		}
		h.respondJSON(w, http.StatusOK, profile)

	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// extractProviderFromPath extracts provider name from URL path.
// Example: /v1/oauth/google/start -> "google"
func extractProviderFromPath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "oauth" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
