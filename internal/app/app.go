package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/auth"
	"github.com/sainathvd/paperforge/internal/auth/jwt"
	"github.com/sainathvd/paperforge/internal/config"
	"github.com/sainathvd/paperforge/internal/db/repository"
	"github.com/sainathvd/paperforge/internal/document"
	"github.com/sainathvd/paperforge/internal/llm"
	"github.com/sainathvd/paperforge/internal/logging"
	"github.com/sainathvd/paperforge/internal/paper"
	"github.com/sainathvd/paperforge/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, Redis, the LLM provider and
// the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	userRepo := repository.NewUserRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	paperRepo := repository.NewPaperRepository(pool)

	tokenCfg := jwt.TokenConfig{
		AccessSecret:  []byte(cfg.Security.JWTSecret),
		RefreshSecret: []byte(cfg.Security.JWTSecret + "_refresh"),
		Issuer:        cfg.Name,
	}

	authSvc := auth.NewService(userRepo, auth.ServiceOptions{TokenConfig: tokenCfg}, logger)

	var oauthSvc *auth.OAuthService
	if cfg.OAuth.GoogleClientID != "" && cfg.OAuth.GoogleClientSecret != "" {
		redirectURL := cfg.OAuth.GoogleRedirectURL
		if redirectURL == "" {
			redirectURL = fmt.Sprintf("http://%s/v1/oauth/google/callback", cfg.HTTPAddr)
		}
		oauthSvc = auth.NewOAuthService(
			cfg.OAuth.GoogleClientID,
			cfg.OAuth.GoogleClientSecret,
			redirectURL,
			logger,
		)
		logger.Info().Msg("OAuth service initialized")
	} else {
		logger.Warn().Msg("OAuth not configured (missing GOOGLE_OAUTH_CLIENT_ID or GOOGLE_OAUTH_CLIENT_SECRET)")
	}

	authHandlers := auth.NewHTTPHandlers(authSvc, oauthSvc, logger)

	documentSvc := document.NewService(materialRepo, document.ServiceOptions{
		UploadDir: cfg.Uploads.Dir,
		MaxBytes:  cfg.Uploads.MaxBytes,
	}, logger)
	documentHandlers := document.NewHTTPHandlers(documentSvc, logger)

	// An unconfigured provider still boots; generation requests report
	// the misconfiguration at call time.
	provider, err := llm.New(ctx, llm.Config{
		Provider: cfg.LLM.Provider,
		OpenAI:   llm.OpenAIConfig{APIKey: cfg.LLM.OpenAIKey, Model: cfg.LLM.OpenAIModel},
		Gemini:   llm.GeminiConfig{APIKey: cfg.LLM.GeminiKey, Model: cfg.LLM.GeminiModel},
	})
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	logger.Info().Str("provider", cfg.LLM.Provider).Str("model", provider.ModelID()).Msg("llm provider initialized")

	historyCache := paper.NewCache(redisClient, 0)

	paperSvc := paper.NewService(materialRepo, paperRepo, historyCache, provider, paper.ServiceOptions{
		DefaultSets:       cfg.LLM.DefaultSets,
		MaxReferenceChars: cfg.LLM.MaxRefChars,
		CallTimeout:       cfg.LLM.CallTimeout,
	}, logger)
	paperHandlers := paper.NewHTTPHandlers(paperSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, authSvc, authHandlers, documentHandlers, paperHandlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
