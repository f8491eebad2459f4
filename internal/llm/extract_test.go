package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONBareObject(t *testing.T) {
	out, err := ExtractJSON(`{"sets": []}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sets": []}`, string(out))
}

func TestExtractJSONStripsSurroundingProse(t *testing.T) {
	raw := "Sure! Here is the paper:\n```json\n{\"sets\": [{\"set_number\": 1}]}\n```\nLet me know if you need changes."
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sets": [{"set_number": 1}]}`, string(out))
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("I could not generate any questions.")
	var provider *ErrProvider
	require.ErrorAs(t, err, &provider)
	assert.Contains(t, provider.Detail, "no JSON object")
}

func TestExtractJSONMalformed(t *testing.T) {
	_, err := ExtractJSON(`{"sets": [`)
	var provider *ErrProvider
	assert.ErrorAs(t, err, &provider)
}

func TestExtractJSONTruncatedPayload(t *testing.T) {
	// A brace pair exists but the span between them is not valid JSON.
	_, err := ExtractJSON(`{"sets": [}`)
	var provider *ErrProvider
	require.ErrorAs(t, err, &provider)
	assert.Contains(t, provider.Detail, "malformed")
}
