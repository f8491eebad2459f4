package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"paperforge"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	LLM      LLM
	Uploads  Uploads
	OAuth    OAuth
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds cache configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for signing and auth.
type Security struct {
	JWTSecret string `env:"JWT_SECRET,notEmpty"`
}

// LLM selects and configures the generation provider.
type LLM struct {
	Provider     string        `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIModel  string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
	CallTimeout  time.Duration `env:"LLM_CALL_TIMEOUT" envDefault:"90s"`
	MaxRefChars  int           `env:"LLM_MAX_REFERENCE_CHARS" envDefault:"12000"`
	DefaultSets  int           `env:"LLM_DEFAULT_SETS" envDefault:"3"`
}

// Uploads controls where syllabus and reference files land on disk.
type Uploads struct {
	Dir      string `env:"FILE_UPLOAD_DIR" envDefault:"uploaded_files"`
	MaxBytes int64  `env:"FILE_UPLOAD_MAX_BYTES" envDefault:"10485760"`
}

// OAuth holds OAuth provider configuration.
type OAuth struct {
	GoogleClientID     string `env:"GOOGLE_OAUTH_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_OAUTH_REDIRECT_URL"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
