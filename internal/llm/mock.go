package llm

import (
	"context"
	"sync"
)

// MockProvider is a deterministic in-memory Provider for tests.
type MockProvider struct {
	mu       sync.Mutex
	Response string
	Err      error
	prompts  []string
}

// NewMockProvider returns a mock that replies with the given text.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{Response: response}
}

func (m *MockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Prompts returns every prompt seen so far.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
