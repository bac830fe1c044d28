package internals

import (
	"hash"

	"github.com/zeebo/blake3"
)

// NewBLAKE3 returns a Hash computing 256-bit BLAKE3 digests
func NewBLAKE3() Hash {
	return newStdHash(HashBLAKE3, func() hash.Hash {
		return blake3.New()
	})
}
