package paper

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize canonicalizes question text for stable hashing: trimmed,
// lowercased, internal whitespace runs collapsed to single spaces.
// Idempotent and total.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Fingerprint returns the SHA-256 hex digest of the normalized text.
// Questions differing only in case or spacing must collide here; that is
// what makes the digest usable as a deduplication key.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}
