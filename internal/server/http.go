package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sainathvd/paperforge/internal/auth"
	"github.com/sainathvd/paperforge/internal/config"
	"github.com/sainathvd/paperforge/internal/document"
	"github.com/sainathvd/paperforge/internal/paper"
)

// NewHTTPServer wires all routes for the API service. Authenticated routes
// run behind the token middleware plus RequireAuth.
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	pool *pgxpool.Pool,
	redis *redis.Client,
	authSvc *auth.Service,
	authHandlers *auth.HTTPHandlers,
	documentHandlers *document.HTTPHandlers,
	paperHandlers *paper.HTTPHandlers,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	// Dependency probe for readiness checks.
	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redis); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Auth endpoints (public)
	mux.HandleFunc("/v1/auth/register", authHandlers.Register)
	mux.HandleFunc("/v1/auth/login", authHandlers.Login)
	mux.HandleFunc("/v1/auth/refresh", authHandlers.RefreshToken)
	mux.HandleFunc("/v1/oauth/{provider}/start", authHandlers.OAuthStart)
	mux.HandleFunc("/v1/oauth/{provider}/callback", authHandlers.OAuthCallback)

	// Authenticated endpoints
	authed := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(authSvc, logger)(auth.RequireAuth(h))
	}

	mux.Handle("/v1/users/me", authed(authHandlers.GetMe))
	mux.Handle("/v1/profile", authed(authHandlers.Profile))

	mux.Handle("/v1/files/syllabus", authed(documentHandlers.Syllabus))
	mux.Handle("/v1/files/reference", authed(documentHandlers.Reference))

	mux.Handle("/v1/papers/generate", authed(paperHandlers.Generate))
	mux.Handle("/v1/papers", authed(paperHandlers.List))
	mux.Handle("/v1/papers/{id}", authed(paperHandlers.Get))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redis *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := redis.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
