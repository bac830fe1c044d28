package internals

import (
	"crypto/md5"
)

// NewMD5 returns a Hash computing MD5 digests (128 bits)
func NewMD5() Hash {
	return newStdHash(HashMD5, md5.New)
}
