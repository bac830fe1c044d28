package internals

import (
	"crypto/sha256"
)

// NewSHA256 returns a Hash computing SHA-256 digests
func NewSHA256() Hash {
	return newStdHash(HashSHA256, sha256.New)
}
