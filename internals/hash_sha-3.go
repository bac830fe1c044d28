package internals

import (
	"golang.org/x/crypto/sha3"
)

// NewSHA3_512 returns a Hash computing SHA3-512 digests
func NewSHA3_512() Hash {
	return newStdHash(HashSHA3_512, sha3.New512)
}
