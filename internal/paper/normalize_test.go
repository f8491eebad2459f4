package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Explain ACID Properties", "explain acid properties"},
		{"trims", "  what is a deadlock?  ", "what is a deadlock?"},
		{"collapses internal whitespace", "define\t\tnormal   forms", "define normal forms"},
		{"newlines collapse too", "state\nthe CAP\ntheorem", "state the cap theorem"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", " \t\n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "  Explain   B+ Tree\tIndexing  "
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}

func TestFingerprintCollapsesFormattingVariants(t *testing.T) {
	a := Fingerprint("Explain ACID properties")
	b := Fingerprint("  explain   acid PROPERTIES ")
	assert.Equal(t, a, b)

	c := Fingerprint("Explain BASE properties")
	assert.NotEqual(t, a, c)
}

func TestFingerprintIsHexSHA256(t *testing.T) {
	fp := Fingerprint("any question")
	assert.Len(t, fp, 64)
	assert.Regexp(t, "^[0-9a-f]+$", fp)
}
