package signer

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/ethcore-go/ethcore/pkg/secp256k1"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// rfc6979Generator produces the deterministic-k candidate sequence defined
// by RFC 6979 §3.2, using SHA-256 as the HMAC primitive (spec.md §4.5
// step 1). Each call to next returns the next candidate k; the caller
// rejects k outside [1, n) or that leads to r=0/s=0 and asks for another.
type rfc6979Generator struct {
	v, k [32]byte
}

func newRFC6979(secret u256.U256, msgHash [32]byte) *rfc6979Generator {
	bits2octets := func(h [32]byte) [32]byte {
		z := u256.FromBig(u256.MustFromBytesBE(h[:]).Big())
		z, _ = z.Mod(secp256k1.N)
		return z.BytesBE()
	}

	g := &rfc6979Generator{}
	for i := range g.v {
		g.v[i] = 0x01
	}
	// k already zero.

	d := secret.BytesBE()
	h1 := bits2octets(msgHash)

	hm := func(key, msg []byte) [32]byte {
		mac := hmac.New(sha256.New, key)
		mac.Write(msg)
		var out [32]byte
		copy(out[:], mac.Sum(nil))
		return out
	}

	g.k = hm(g.k[:], concat(g.v[:], []byte{0x00}, d[:], h1[:]))
	g.v = hm(g.k[:], g.v[:])
	g.k = hm(g.k[:], concat(g.v[:], []byte{0x01}, d[:], h1[:]))
	g.v = hm(g.k[:], g.v[:])
	return g
}

func (g *rfc6979Generator) hmacV() [32]byte {
	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	var out [32]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// next returns the next deterministic k candidate.
func (g *rfc6979Generator) next() u256.U256 {
	g.v = g.hmacV()
	// qlen (256 bits) equals the SHA-256 output size, so a single HMAC
	// round already produces a full-width candidate with no truncation.
	return u256.MustFromBytesBE(g.v[:])
}

// reject advances the internal state after a candidate k was rejected,
// per RFC 6979's retry procedure.
func (g *rfc6979Generator) reject() {
	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Write([]byte{0x00})
	copy(g.k[:], mac.Sum(nil))
	g.v = g.hmacV()
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
