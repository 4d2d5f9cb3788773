// Package signer implements ECDSA signing over secp256k1 with RFC 6979
// deterministic nonces and EIP-2 low-S normalization, signature recovery,
// address derivation, and the EIP-155/legacy/raw `v` conversions spec.md
// §4.5 and §3 describe.
//
// Grounded on hyperledger-firefly-signer's pkg/secp256k1/signer.go (the
// SignatureData shape and its UpdateEIP155/UpdateEIP2930 naming) and
// wyf-ACCEPT-eth2030's pkg/crypto/signature_recovery.go.
package signer

import (
	"crypto/subtle"

	"github.com/ethcore-go/ethcore/pkg/keccak"
	"github.com/ethcore-go/ethcore/pkg/secp256k1"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// Kind distinguishes the signing/recovery error classes in spec.md §7.
type Kind int

const (
	KindInvalidRange Kind = iota
	KindInvalidSignature
)

// Error is the typed error every fallible signer operation returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "signer: " + e.Msg }

var (
	errOutOfRange = &Error{Kind: KindInvalidRange, Msg: "scalar outside [1, n)"}
	errBadSig     = &Error{Kind: KindInvalidSignature, Msg: "invalid signature"}
)

var halfN = func() u256.U256 {
	h, _ := secp256k1.N.Div(u256.FromUint64(2))
	return h
}()

// Signature is an Ethereum ECDSA signature: r and s in [1, n-1] with s
// normalized to the lower half of the curve order (EIP-2), and a canonical
// recovery id in {0, 1}.
type Signature struct {
	R, S       u256.U256
	RecoveryID byte
}

// Sign signs a 32-byte message hash with the secret scalar d, per spec.md
// §4.5: RFC 6979 deterministic k, low-S normalization, and a correctly
// produced recovery id. Signing the same (d, hash) twice yields the same
// (r, s, v) (invariant 4 in spec.md §8).
func Sign(d u256.U256, hash [32]byte) (Signature, error) {
	if d.IsZero() || d.Cmp(secp256k1.N) >= 0 {
		return Signature{}, errOutOfRange
	}
	z := u256.MustFromBytesBE(hash[:])

	gen := newRFC6979(d, hash)
	for {
		k := gen.next()
		if k.IsZero() || k.Cmp(secp256k1.N) >= 0 {
			gen.reject()
			continue
		}

		R := secp256k1.ScalarMultSecret(secp256k1.G, k)
		r, err := R.X.Mod(secp256k1.N)
		if err != nil {
			gen.reject()
			continue
		}
		if r.IsZero() {
			gen.reject()
			continue
		}

		kInv, err := k.ModInverse(secp256k1.N)
		if err != nil {
			gen.reject()
			continue
		}
		rd := r.ModMul(d, secp256k1.N)
		zPlusRd := z.ModAdd(rd, secp256k1.N)
		s := kInv.ModMul(zPlusRd, secp256k1.N)
		if s.IsZero() {
			gen.reject()
			continue
		}

		recID := byte(R.Y[0] & 1)
		if R.X.Cmp(secp256k1.N) >= 0 {
			recID |= 2
		}

		// EIP-2: normalize s to the lower half, flipping recovery parity.
		if s.Cmp(halfN) > 0 {
			s, _ = secp256k1.N.Sub(s).Mod(secp256k1.N) // equals N - s, kept mod N defensively
			recID ^= 1
		}

		return Signature{R: r, S: s, RecoveryID: recID}, nil
	}
}

// Recover recovers the public key point from a signature and message hash.
func Recover(hash [32]byte, sig Signature) (secp256k1.Point, error) {
	if sig.R.IsZero() || sig.R.Cmp(secp256k1.N) >= 0 {
		return secp256k1.Point{}, errBadSig
	}
	if sig.S.IsZero() || sig.S.Cmp(secp256k1.N) >= 0 || sig.S.Cmp(halfN) > 0 {
		return secp256k1.Point{}, errBadSig
	}

	x := sig.R
	if sig.RecoveryID&2 != 0 {
		x = sig.R.Add(secp256k1.N)
	}
	y, err := secp256k1.DecompressY(x, sig.RecoveryID&1 == 1)
	if err != nil {
		return secp256k1.Point{}, errBadSig
	}
	R := secp256k1.Point{X: x, Y: y}

	rInv, err := sig.R.ModInverse(secp256k1.N)
	if err != nil {
		return secp256k1.Point{}, errBadSig
	}
	z := u256.MustFromBytesBE(hash[:])

	// Q = r^-1 * (s*R - z*G)
	sR := secp256k1.ScalarMult(R, sig.S)
	zG := secp256k1.ScalarMult(secp256k1.G, z)
	negZG := secp256k1.Point{X: zG.X, Y: secp256k1.P.Sub(zG.Y)}
	sum := secp256k1.Add(sR, negZG)
	Q := secp256k1.ScalarMult(sum, rInv)

	if !secp256k1.IsOnCurve(Q) || Q.Infinity {
		return secp256k1.Point{}, errBadSig
	}
	return Q, nil
}

// AddressFromPublicKey derives the 20-byte Ethereum address from an
// uncompressed public key point: the low 20 bytes of Keccak256(x||y).
func AddressFromPublicKey(q secp256k1.Point) [20]byte {
	x := q.X.BytesBE()
	y := q.Y.BytesBE()
	digest := keccak.Hash256(append(append([]byte{}, x[:]...), y[:]...))
	var addr [20]byte
	copy(addr[:], digest[12:])
	return addr
}

// Ecrecover recovers the signing address directly; a convenience wrapper
// composing Recover and AddressFromPublicKey (invariant 3 in spec.md §8).
func Ecrecover(hash [32]byte, sig Signature) ([20]byte, error) {
	q, err := Recover(hash, sig)
	if err != nil {
		return [20]byte{}, err
	}
	return AddressFromPublicKey(q), nil
}

// ConstantTimeEqual compares two addresses without leaking timing
// information about where they first differ, for use when checking a
// recovered address against an expected one.
func ConstantTimeEqual(a, b [20]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// EIP155V encodes a canonical recovery id into the EIP-155 v value.
func EIP155V(recID byte, chainID uint64) uint64 {
	return uint64(recID) + chainID*2 + 35
}

// LegacyV encodes a canonical recovery id into the pre-EIP-155 {27,28} form.
func LegacyV(recID byte) uint64 { return uint64(recID) + 27 }

// RecoveryIDFromV converts any of the three v encodings (canonical {0,1},
// legacy {27,28}, or EIP-155) back to the canonical recovery id. chainID is
// ignored for the first two forms and is otherwise required to undo the
// EIP-155 encoding correctly.
func RecoveryIDFromV(v uint64, chainID uint64) (byte, error) {
	switch {
	case v == 0 || v == 1:
		return byte(v), nil
	case v == 27 || v == 28:
		return byte(v - 27), nil
	case v >= 35:
		base := chainID*2 + 35
		if v < base {
			return 0, errBadSig
		}
		return byte(v - base), nil
	default:
		return 0, errBadSig
	}
}

// ChainIDFromV recovers the chain id embedded in an EIP-155 v value
// (spec.md §8 S5: ChainIDFromV(147) == 56).
func ChainIDFromV(v uint64) uint64 {
	if v < 35 {
		return 0
	}
	return (v - 35) / 2
}
