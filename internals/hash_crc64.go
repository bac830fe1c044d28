package internals

import (
	"hash"
	"hash/crc64"
)

var crc64Table = crc64.MakeTable(crc64.ISO)

// NewCRC64 returns a Hash computing CRC-64 checksums with the ISO polynomial
func NewCRC64() Hash {
	return newStdHash(HashCRC64, func() hash.Hash {
		return crc64.New(crc64Table)
	})
}
