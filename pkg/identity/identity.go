package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Length of a derived submitter ID in hex characters.
const IDLength = 16

var idRe = regexp.MustCompile(`^[0-9a-f]{16}$`)

// Derive builds a stable submitter ID from environment fingerprint fields
// (user agent, locale, screen geometry) plus a persisted random suffix.
// The suffix keeps two identical browser profiles distinct; the result is an
// opaque correlator, not a security credential.
func Derive(userAgent, locale, screenGeometry, suffix string) string {
	material := strings.Join([]string{userAgent, locale, screenGeometry, suffix}, "_")
	h := sha256.Sum256([]byte(material))
	return hex.EncodeToString(h[:])[:IDLength]
}

// NewSuffix returns a random suffix for first-time identity derivation.
// Callers persist it alongside the derived ID so the identity survives
// sessions without ever rotating.
func NewSuffix() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate identity suffix: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

// Validate checks that a client-supplied submitter ID has the derived shape.
// Returns the normalized ID and an empty string, or an error message.
func Validate(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "submitter ID is required"
	}
	if !idRe.MatchString(id) {
		return "", "submitter ID must be 16 hex characters"
	}
	return id, ""
}
