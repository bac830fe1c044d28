package internals

import (
	"hash/fnv"
)

// NewFNV1a_128 returns a Hash implementing the Fowler–Noll–Vo non-cryptographic hash function
// invented by Glenn Fowler, Landon Curt Noll, and Kiem-Phong Vo (1991)
func NewFNV1a_128() Hash {
	return newStdHash(HashFNV1A128, fnv.New128a)
}
