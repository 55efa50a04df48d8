// Package digest fingerprints payloads with BLAKE3.
package digest

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// ShortSize bytes of the digest kept by Short
const ShortSize = 8

// Sum returns the BLAKE3-256 digest of data
func Sum(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// Hex full digest in hex
func Hex(data []byte) string {
	sum := Sum(data)
	return hex.EncodeToString(sum[:])
}

// Short leading ShortSize bytes of the digest in hex, for logs
func Short(data []byte) string {
	sum := Sum(data)
	return hex.EncodeToString(sum[:ShortSize])
}
