package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewID generates a cryptographically random session id (256 bits).
func NewID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
