package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "watson"})
	assert.Error(t, err)
}

func TestNewWithoutKeyYieldsDisabledProvider(t *testing.T) {
	p, err := New(context.Background(), Config{Provider: "openai"})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "anything")
	var unavailable *ErrUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, unavailable.Reason, "OPENAI_API_KEY")
}

func TestNewOpenAIWithKey(t *testing.T) {
	p, err := New(context.Background(), Config{
		Provider: "openai",
		OpenAI:   OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o"},
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}

func TestMapOpenAIError(t *testing.T) {
	rateLimited := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "quota"}
	var quota *ErrQuotaExceeded
	assert.ErrorAs(t, mapOpenAIError(rateLimited), &quota)

	serverSide := &openai.APIError{HTTPStatusCode: http.StatusInternalServerError, Message: "boom"}
	var provider *ErrProvider
	assert.ErrorAs(t, mapOpenAIError(serverSide), &provider)

	assert.ErrorAs(t, mapOpenAIError(errors.New("network down")), &provider)
}

func TestMapGeminiError(t *testing.T) {
	var quota *ErrQuotaExceeded
	assert.ErrorAs(t, mapGeminiError(&genai.APIError{Code: http.StatusTooManyRequests}), &quota)

	var unavailable *ErrUnavailable
	err := mapGeminiError(&genai.APIError{Code: http.StatusNotFound})
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, unavailable.Reason, "model not available")

	var provider *ErrProvider
	assert.ErrorAs(t, mapGeminiError(&genai.APIError{Code: http.StatusBadRequest}), &provider)
}

func TestMockProviderRecordsPrompts(t *testing.T) {
	m := NewMockProvider("response")
	out, err := m.Complete(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "response", out)

	_, _ = m.Complete(context.Background(), "second")
	assert.Equal(t, []string{"first", "second"}, m.Prompts())
}
