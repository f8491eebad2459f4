package llm

import (
	"context"
	"fmt"
)

// New creates a Provider from configuration. A backend with a missing API
// key yields a disabled provider rather than a startup failure: the
// service still boots and generation requests surface a 503-equivalent
// until the operator supplies credentials.
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return Disabled("OPENAI_API_KEY not set"), nil
		}
		return NewOpenAIProvider(cfg.OpenAI), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return Disabled("GEMINI_API_KEY not set"), nil
		}
		return NewGeminiProvider(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// Disabled returns a provider whose calls always fail with ErrUnavailable.
func Disabled(reason string) Provider {
	return &disabledProvider{reason: reason}
}

type disabledProvider struct {
	reason string
}

func (p *disabledProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return "", &ErrUnavailable{Reason: p.reason}
}

func (p *disabledProvider) ModelID() string {
	return "disabled"
}
