package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/auth/jwt"
	"github.com/sainathvd/paperforge/internal/db/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// userStore is the subset of the user repository the auth service needs.
type userStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (repository.User, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (repository.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (repository.FacultyProfile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, department, designation string) (repository.FacultyProfile, error)
}

// Service handles authentication and faculty account management.
type Service struct {
	userRepo userStore
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
}

// NewService creates an authentication service.
func NewService(userRepo userStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokenMgr: jwt.NewManager(opts.TokenConfig),
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a faculty account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, *TokenPair, error) {
	if req.Email == "" {
		return nil, nil, fmt.Errorf("email required")
	}
	if req.Name == "" {
		return nil, nil, fmt.Errorf("name required")
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	dbUser, err := s.userRepo.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	user := &User{ID: dbUser.ID, Name: dbUser.Name, Email: dbUser.Email}
	tokens, err := s.generateTokenPair(*user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("email", req.Email).Msg("user registered")
	return user, tokens, nil
}

// Login authenticates with email/password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, *TokenPair, error) {
	dbUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if dbUser.PasswordHash == "" {
		// OAuth-only account; no password to check against.
		return nil, nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(dbUser.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user := &User{ID: dbUser.ID, Name: dbUser.Name, Email: dbUser.Email}
	tokens, err := s.generateTokenPair(*user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return user, tokens, nil
}

// Refresh validates a refresh token and issues a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*User, *TokenPair, error) {
	claims, err := s.tokenMgr.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}

	dbUser, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, jwt.ErrInvalidToken
	}

	user := &User{ID: dbUser.ID, Name: dbUser.Name, Email: dbUser.Email}
	tokens, err := s.generateTokenPair(*user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}
	return user, tokens, nil
}

// FindOrCreateOAuthUser returns the account matching an OAuth email,
// creating one (without a password) when none exists.
func (s *Service) FindOrCreateOAuthUser(ctx context.Context, name, email string) (*User, *TokenPair, error) {
	if email == "" {
		return nil, nil, fmt.Errorf("OAuth provider did not return email")
	}

	dbUser, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		if name == "" {
			name = email
		}
		dbUser, err = s.userRepo.Create(ctx, name, email, "")
		if err != nil {
			return nil, nil, fmt.Errorf("create OAuth user: %w", err)
		}
		s.logger.Info().Str("user_id", dbUser.ID.String()).Msg("OAuth user created")
	} else if err != nil {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}

	user := &User{ID: dbUser.ID, Name: dbUser.Name, Email: dbUser.Email}
	tokens, err := s.generateTokenPair(*user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}
	return user, tokens, nil
}

// GetUser fetches the account behind a token's user ID.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	dbUser, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &User{ID: dbUser.ID, Name: dbUser.Name, Email: dbUser.Email}, nil
}

// GetProfile fetches the faculty profile.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOut, error) {
	p, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileOut{ID: p.ID, UserID: p.UserID, Department: p.Department, Designation: p.Designation}, nil
}

// UpdateProfile sets department/designation, creating the row if the
// account predates profiles.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req ProfileUpdateRequest) (*ProfileOut, error) {
	p, err := s.userRepo.UpsertProfile(ctx, userID, req.Department, req.Designation)
	if err != nil {
		return nil, err
	}
	return &ProfileOut{ID: p.ID, UserID: p.UserID, Department: p.Department, Designation: p.Designation}, nil
}

// ValidateToken checks an access token and returns its claims.
func (s *Service) ValidateToken(token string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(token)
}

func (s *Service) generateTokenPair(user User) (*TokenPair, error) {
	tokenUser := jwt.User{ID: user.ID, Email: user.Email, Name: user.Name}

	access, err := s.tokenMgr.GenerateAccessToken(tokenUser)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(tokenUser)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokenMgr.AccessTTL().Seconds()),
	}, nil
}
