package hashes

import (
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160"
)

// Sha256 returns the single sha256 of b.
func Sha256(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// Hash256 calculates sha256(sha256(b)) and returns the resulting bytes.
func Hash256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash256H calculates sha256(sha256(b)) and returns the resulting bytes as a
// Hash.
func Hash256H(b []byte) Hash {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Ripemd160 returns the ripemd160 of b.
func Ripemd160(b []byte) []byte {
	hasher := ripemd160.New()
	// ripemd160 never fails to write.
	_, _ = hasher.Write(b)
	return hasher.Sum(nil)
}

// Hash160 calculates ripemd160(sha256(b)), the hash used for public key and
// script hashes in addresses.
func Hash160(b []byte) []byte {
	return Ripemd160(Sha256(b))
}
