// Package signature implements the shared-secret HMAC scheme that webhook
// producers use to sign request bodies.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Compute returns the lowercase hex HMAC-SHA256 digest of body under secret.
// The digest is always computed over the exact raw bytes: re-serializing a
// parsed body can change byte content and break the signature.
func Compute(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether providedHex is a valid signature for body under
// secret. It returns false, never an error, on a missing or malformed
// signature, an empty secret, or a mismatch. The comparison is constant
// time.
func Verify(secret string, body []byte, providedHex string) bool {
	if secret == "" {
		return false
	}
	provided, err := hex.DecodeString(strings.TrimSpace(providedHex))
	if err != nil || len(provided) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}
