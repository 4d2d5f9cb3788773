// Package u256 implements fixed-width 256-bit integer arithmetic: the
// BigInt256 component of spec.md §4.1. All unsigned operations wrap modulo
// 2^256 unless documented otherwise; division and modulus are checked and
// fail on a zero divisor. Big-endian 32-byte encoding is the canonical wire
// form; a little-endian view is also exposed.
package u256

import (
	"math/big"
	"math/bits"
)

// Kind distinguishes the error classes spec.md §7 requires.
type Kind int

const (
	KindInvalidRange Kind = iota
	KindArithmeticOverflow
)

// Error is the typed error every fallible u256 operation returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "u256: " + e.Msg }

var (
	errDivByZero  = &Error{Kind: KindArithmeticOverflow, Msg: "division by zero"}
	errBadLength  = &Error{Kind: KindInvalidRange, Msg: "value exceeds 256 bits"}
	errBadDecimal = &Error{Kind: KindInvalidRange, Msg: "malformed decimal string"}
)

// ErrDivByZero, ErrInvalidLength, ErrBadDecimal let callers match with
// errors.Is/As against the taxonomy in spec.md §7.
var (
	ErrDivByZero   error = errDivByZero
	ErrInvalidLength error = errBadLength
	ErrBadDecimal  error = errBadDecimal
)

// U256 is a 256-bit unsigned integer stored as four 64-bit limbs,
// little-endian (limbs[0] holds the least-significant 64 bits).
type U256 [4]uint64

// Zero is the additive identity.
var Zero = U256{}

// One is the multiplicative identity.
var One = U256{1, 0, 0, 0}

// FromUint64 returns the U256 representation of a uint64 value.
func FromUint64(v uint64) U256 { return U256{v, 0, 0, 0} }

// FromBytesBE decodes a big-endian byte slice of at most 32 bytes.
func FromBytesBE(b []byte) (U256, error) {
	if len(b) > 32 {
		return U256{}, errBadLength
	}
	var padded [32]byte
	copy(padded[32-len(b):], b)
	return decodeBE(padded), nil
}

// MustFromBytesBE is FromBytesBE that panics on error; for use with
// compile-time-known literals only.
func MustFromBytesBE(b []byte) U256 {
	u, err := FromBytesBE(b)
	if err != nil {
		panic(err)
	}
	return u
}

func decodeBE(b [32]byte) U256 {
	var u U256
	for i := 0; i < 4; i++ {
		// limb i covers bytes [32-8*(i+1) : 32-8*i)
		off := 32 - 8*(i+1)
		var v uint64
		for j := 0; j < 8; j++ {
			v = v<<8 | uint64(b[off+j])
		}
		u[i] = v
	}
	return u
}

// BytesBE returns the canonical 32-byte big-endian encoding.
func (u U256) BytesBE() [32]byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		off := 32 - 8*(i+1)
		v := u[i]
		for j := 7; j >= 0; j-- {
			out[off+j] = byte(v)
			v >>= 8
		}
	}
	return out
}

// BytesLE returns the little-endian byte encoding (BytesBE reversed).
func (u U256) BytesLE() [32]byte {
	be := u.BytesBE()
	var out [32]byte
	for i := range be {
		out[i] = be[31-i]
	}
	return out
}

// FromBig converts a non-negative *big.Int, truncating (wrapping) to 256
// bits if it is larger.
func FromBig(b *big.Int) U256 {
	bb := new(big.Int).Abs(b)
	bytes := bb.Bytes()
	if len(bytes) > 32 {
		bytes = bytes[len(bytes)-32:]
	}
	u, _ := FromBytesBE(bytes)
	return u
}

// Big returns the value as an unsigned *big.Int.
func (u U256) Big() *big.Int {
	b := u.BytesBE()
	return new(big.Int).SetBytes(b[:])
}

// IsZero reports whether u is zero.
func (u U256) IsZero() bool { return u == U256{} }

// Cmp returns -1, 0 or 1 comparing u and v as unsigned integers.
func (u U256) Cmp(v U256) int {
	for i := 3; i >= 0; i-- {
		if u[i] != v[i] {
			if u[i] < v[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add returns u+v mod 2^256.
func (u U256) Add(v U256) U256 {
	var r U256
	var carry uint64
	for i := 0; i < 4; i++ {
		r[i], carry = bits.Add64(u[i], v[i], carry)
	}
	return r
}

// Sub returns u-v mod 2^256.
func (u U256) Sub(v U256) U256 {
	var r U256
	var borrow uint64
	for i := 0; i < 4; i++ {
		r[i], borrow = bits.Sub64(u[i], v[i], borrow)
	}
	return r
}

// Mul returns u*v truncated (wrapped) to the low 256 bits.
func (u U256) Mul(v U256) U256 {
	var full [8]uint64
	for i := 0; i < 4; i++ {
		if u[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(u[i], v[j])
			var c uint64
			full[i+j], c = bits.Add64(full[i+j], lo, 0)
			carry += c
			hi, c = bits.Add64(hi, carry, 0)
			carry = c
			full[i+j+1], c = bits.Add64(full[i+j+1], hi, 0)
			// propagate any further carry
			k := i + j + 2
			for c != 0 && k < 8 {
				full[k], c = bits.Add64(full[k], c, 0)
				k++
			}
		}
	}
	var r U256
	copy(r[:], full[:4])
	return r
}

// Lsh returns u shifted left by n bits, wrapping within 256 bits.
func (u U256) Lsh(n uint) U256 {
	if n == 0 {
		return u
	}
	if n >= 256 {
		return U256{}
	}
	words, bitsOff := n/64, n%64
	var r U256
	for i := 3; i >= 0; i-- {
		srcIdx := i - int(words)
		if srcIdx < 0 {
			continue
		}
		v := u[srcIdx] << bitsOff
		if bitsOff > 0 && srcIdx > 0 {
			v |= u[srcIdx-1] >> (64 - bitsOff)
		}
		r[i] = v
	}
	return r
}

// Rsh returns u shifted right by n bits (logical).
func (u U256) Rsh(n uint) U256 {
	if n == 0 {
		return u
	}
	if n >= 256 {
		return U256{}
	}
	words, bitsOff := n/64, n%64
	var r U256
	for i := 0; i < 4; i++ {
		srcIdx := i + int(words)
		if srcIdx > 3 {
			continue
		}
		v := u[srcIdx] >> bitsOff
		if bitsOff > 0 && srcIdx < 3 {
			v |= u[srcIdx+1] << (64 - bitsOff)
		}
		r[i] = v
	}
	return r
}

// And, Or, Xor are bitwise operations.
func (u U256) And(v U256) U256 {
	return U256{u[0] & v[0], u[1] & v[1], u[2] & v[2], u[3] & v[3]}
}
func (u U256) Or(v U256) U256 {
	return U256{u[0] | v[0], u[1] | v[1], u[2] | v[2], u[3] | v[3]}
}
func (u U256) Xor(v U256) U256 {
	return U256{u[0] ^ v[0], u[1] ^ v[1], u[2] ^ v[2], u[3] ^ v[3]}
}

// Div returns the checked integer quotient u/v.
func (u U256) Div(v U256) (U256, error) {
	if v.IsZero() {
		return U256{}, errDivByZero
	}
	q := new(big.Int).Div(u.Big(), v.Big())
	return FromBig(q), nil
}

// Mod returns the checked remainder u%v.
func (u U256) Mod(v U256) (U256, error) {
	if v.IsZero() {
		return U256{}, errDivByZero
	}
	m := new(big.Int).Mod(u.Big(), v.Big())
	return FromBig(m), nil
}

// ModAdd, ModSub, ModMul compute (u OP v) mod m.
func (u U256) ModAdd(v, m U256) U256 {
	r := new(big.Int).Add(u.Big(), v.Big())
	r.Mod(r, m.Big())
	return FromBig(r)
}
func (u U256) ModSub(v, m U256) U256 {
	r := new(big.Int).Sub(u.Big(), v.Big())
	r.Mod(r, m.Big())
	return FromBig(r)
}
func (u U256) ModMul(v, m U256) U256 {
	r := new(big.Int).Mul(u.Big(), v.Big())
	r.Mod(r, m.Big())
	return FromBig(r)
}

// ModInverse returns u^-1 mod m via the extended binary (Euclidean)
// algorithm, failing if u has no inverse (gcd(u,m) != 1).
func (u U256) ModInverse(m U256) (U256, error) {
	inv := new(big.Int).ModInverse(u.Big(), m.Big())
	if inv == nil {
		return U256{}, &Error{Kind: KindInvalidRange, Msg: "value has no modular inverse"}
	}
	return FromBig(inv), nil
}

// ModExp returns u^e mod m.
func (u U256) ModExp(e, m U256) U256 {
	r := new(big.Int).Exp(u.Big(), e.Big(), m.Big())
	return FromBig(r)
}

// ParseDecimal parses a strict decimal string: no leading zeros (except the
// literal "0"), no sign, digits only.
func ParseDecimal(s string) (U256, error) {
	if s == "" {
		return U256{}, errBadDecimal
	}
	if s != "0" && s[0] == '0' {
		return U256{}, errBadDecimal
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return U256{}, errBadDecimal
		}
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return U256{}, errBadDecimal
	}
	if b.BitLen() > 256 {
		return U256{}, errBadLength
	}
	return FromBig(b), nil
}

// String returns the canonical (no leading zeros) decimal representation.
func (u U256) String() string { return u.Big().String() }
