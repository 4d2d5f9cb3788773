package txtypes

import "github.com/ethcore-go/ethcore/pkg/keccak"

// BlobVersionHash is EIP-4844's version byte for KZG-commitment-derived
// versioned hashes.
const BlobVersionHash byte = 0x01

// VersionedHashFromCommitment derives a blob's versioned hash from its
// 48-byte KZG commitment: a version byte followed by the low 31 bytes of
// Keccak256(commitment) (spec.md §4.8, exercised by invariant 7 in §8). The
// KZG commitment itself is opaque input here — this package does none of
// the polynomial-commitment math, only the simple hash derivation on top
// of it (spec.md's domain boundary for EIP-4844 support).
func VersionedHashFromCommitment(commitment [48]byte) [32]byte {
	sum := keccak.Hash256(commitment[:])
	var out [32]byte
	out[0] = BlobVersionHash
	copy(out[1:], sum[1:])
	return out
}

// IsWellFormedVersionedHash reports whether h's first byte marks it as the
// Keccak256-derived KZG version this package produces.
func IsWellFormedVersionedHash(h [32]byte) bool {
	return h[0] == BlobVersionHash
}
