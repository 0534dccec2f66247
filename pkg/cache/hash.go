package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKey returns the first 16 hex characters of the SHA-256 of key: a
// deterministic, filesystem-safe filename for any key regardless of
// length or path separators.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}
