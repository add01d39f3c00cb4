package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// QueryDigest returns a stable, key-safe identifier for free-text input.
// Case and surrounding whitespace are ignored.
func QueryDigest(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:])
}
