package internals

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ChunkSize is the number of bytes read from a file at once while hashing.
// It bounds memory usage per hash worker independent of file sizes.
const ChunkSize = 8192

// HashAlgo is an alias for string, but specifically can only
// be one of the identifiers for hash algorithms.
type HashAlgo string

const (
	HashMD5      HashAlgo = `md5`
	HashFNV1A128 HashAlgo = `fnv-1a-128`
	HashCRC64    HashAlgo = `crc64`
	HashSHA256   HashAlgo = `sha-256`
	HashSHA3_512 HashAlgo = `sha-3-512`
	HashBLAKE3   HashAlgo = `blake3`
)

// DefaultHashAlgo produces 128-bit digests
const DefaultHashAlgo HashAlgo = HashMD5

// SupportedHashAlgorithms returns the list of supported hash algorithms.
// The slice contains specified hash algorithm identifiers
func SupportedHashAlgorithms() []string {
	return []string{
		string(HashMD5),
		string(HashFNV1A128),
		string(HashCRC64),
		string(HashSHA256),
		string(HashSHA3_512),
		string(HashBLAKE3),
	}
}

// DigestSize returns the output size in bytes for a given hash algorithm.
func (h HashAlgo) DigestSize() int {
	switch h {
	case HashMD5:
		return 16
	case HashFNV1A128:
		return 16
	case HashCRC64:
		return 8
	case HashSHA256:
		return 32
	case HashSHA3_512:
		return 64
	case HashBLAKE3:
		return 32
	}
	return 0
}

// Algorithm returns a Hash instance for the given hash algorithm name.
// Unknown names yield the default algorithm.
func (h HashAlgo) Algorithm() Hash {
	switch h {
	case HashMD5:
		return NewMD5()
	case HashFNV1A128:
		return NewFNV1a_128()
	case HashCRC64:
		return NewCRC64()
	case HashSHA256:
		return NewSHA256()
	case HashSHA3_512:
		return NewSHA3_512()
	case HashBLAKE3:
		return NewBLAKE3()
	}
	return DefaultHashAlgo.Algorithm()
}

// HashAlgorithmFromString returns a HashAlgo instance, give the hash algorithm's name as a string
func HashAlgorithmFromString(name string) (HashAlgo, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, algo := range SupportedHashAlgorithms() {
		if name == algo {
			return HashAlgo(algo), nil
		}
	}
	return DefaultHashAlgo, fmt.Errorf(`unknown hash algorithm %q`, name)
}

// Digest is the content fingerprint of a file
type Digest []byte

// Hex returns the lowercase hexadecimal representation
func (d Digest) Hex() string {
	return hex.EncodeToString(d)
}

// Short returns at most n hexadecimal characters followed by "..." if truncated
func (d Digest) Short(n int) string {
	h := d.Hex()
	if n <= 0 || len(h) <= n {
		return h
	}
	return h[:n] + "..."
}

// Compare orders digests bytewise
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d, other)
}

// Hash is a custom interface to define operations
// a hash algorithm needs to support to include it in dupimages
type Hash interface {
	// returns number of bytes of the digest
	Size() int
	// update hash state with data of file at given filepath, returns number of bytes read
	ReadFile(fs afero.Fs, path string) (uint64, error)
	// update hash state with given bytes
	ReadBytes([]byte) error
	// reset hash state
	Reset()
	// get hash state digest
	Digest() Digest
	// get string representation of this hash algorithm
	Name() string
	// returns an instance of the same algorithm with fresh state
	NewCopy() Hash
}

// stdHash adapts a hash.Hash of the standard library (or compatible) to Hash
type stdHash struct {
	name HashAlgo
	h    hash.Hash
	new  func() hash.Hash
	buf  []byte
}

func newStdHash(name HashAlgo, constructor func() hash.Hash) *stdHash {
	return &stdHash{name: name, h: constructor(), new: constructor}
}

func (c *stdHash) Size() int {
	return c.h.Size()
}

// ReadFile reads the file in chunks of ChunkSize bytes and feeds them into the hash state
func (c *stdHash) ReadFile(fs afero.Fs, filepath string) (uint64, error) {
	// open/close file
	fd, err := fs.Open(filepath)
	if err != nil {
		return 0, err
	}
	defer fd.Close()

	if c.buf == nil {
		c.buf = make([]byte, ChunkSize)
	}

	// read file
	var total uint64
	for {
		n, err := fd.Read(c.buf)
		if n > 0 {
			c.h.Write(c.buf[:n])
			total += uint64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func (c *stdHash) ReadBytes(data []byte) error {
	_, err := c.h.Write(data)
	return err
}

func (c *stdHash) Reset() {
	c.h.Reset()
}

func (c *stdHash) Digest() Digest {
	return c.h.Sum(nil)
}

func (c *stdHash) Name() string {
	return string(c.name)
}

func (c *stdHash) NewCopy() Hash {
	return newStdHash(c.name, c.new)
}
