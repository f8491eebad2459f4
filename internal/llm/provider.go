package llm

import "context"

// Provider is the single capability the generation pipeline needs from an
// LLM backend: one prompt in, raw text out. Implementations wrap vendor
// SDKs and normalize their failures into this package's error types.
// The backend is chosen once at startup; call sites never branch on vendor.
type Provider interface {
	// Complete sends a single prompt and returns the raw model output.
	// The returned text may contain prose around a JSON payload; use
	// ExtractJSON to recover the structured part.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Config selects and parameterizes the provider backend.
type Config struct {
	Provider string
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
}

// OpenAIConfig holds settings for the chat-completion backend.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// GeminiConfig holds settings for the single-turn generative backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}
