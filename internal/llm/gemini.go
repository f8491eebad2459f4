package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider over the Gemini single-turn API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates the generative backend.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-pro"
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 4096,
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", mapGeminiError(err)
	}
	return result.Text(), nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return &ErrQuotaExceeded{Err: err}
		case http.StatusNotFound:
			// Model not enabled for the project; fixable by the operator,
			// so it surfaces as unavailable rather than a gateway error.
			return &ErrUnavailable{Reason: "gemini model not available for this project"}
		}
	}
	return &ErrProvider{Detail: err.Error(), Err: err}
}
