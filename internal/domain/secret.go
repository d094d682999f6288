package domain

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

const secretByteLen = 24 // 192 bits of entropy

// NewSecret generates an opaque capability token. Holding the token is the
// only credential in the system; there are no accounts.
func NewSecret() (string, error) {
	b := make([]byte, secretByteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}

	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// SecretsEqual compares two capability tokens in constant time.
func SecretsEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
