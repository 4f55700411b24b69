package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a stable hex identifier for s, used to correlate
// prompts and queries in logs without recording their full text.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ShortFingerprint returns the first 12 hex characters of Fingerprint.
func ShortFingerprint(s string) string {
	return Fingerprint(s)[:12]
}

// NormalizeQuery lower-cases and collapses whitespace so equivalent user
// queries share a fingerprint.
func NormalizeQuery(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
