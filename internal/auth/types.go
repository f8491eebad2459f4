package auth

import "github.com/google/uuid"

// OAuth provider names.
const OAuthProviderGoogle = "google"

// User is the authenticated faculty account exposed to handlers.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TokenPair bundles access and refresh tokens for a login response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the credential login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileUpdateRequest sets the faculty profile details.
type ProfileUpdateRequest struct {
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

// ProfileOut is the API shape of a faculty profile.
type ProfileOut struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Department  string    `json:"department,omitempty"`
	Designation string    `json:"designation,omitempty"`
}
