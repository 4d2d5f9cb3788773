package u256

import "math/big"

// I256 is a 256-bit signed integer, represented internally by its two's
// complement bit pattern in a U256 — the same representation Solidity's
// intN types use on the wire.
type I256 struct {
	bits U256
}

// signBit is the bit pattern with only the top bit set, used to test and
// construct the sign of a two's-complement 256-bit value.
var signBit = U256{0, 0, 0, 1 << 63}

// IFromBig converts a signed *big.Int to its 256-bit two's complement
// representation, wrapping modulo 2^256 if the magnitude is too large.
func IFromBig(b *big.Int) I256 {
	if b.Sign() >= 0 {
		return I256{bits: FromBig(b)}
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	wrapped := new(big.Int).Add(mod, b)
	return I256{bits: FromBig(wrapped)}
}

// Big returns the signed value as a *big.Int.
func (i I256) Big() *big.Int {
	if i.bits.And(signBit).IsZero() {
		return i.bits.Big()
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	return new(big.Int).Sub(i.bits.Big(), mod)
}

// Bits returns the raw 256-bit two's complement pattern.
func (i I256) Bits() U256 { return i.bits }

// IFromBits wraps a raw 256-bit two's complement pattern.
func IFromBits(u U256) I256 { return I256{bits: u} }

// SignExtend reinterprets the low `width` bits of u as a two's complement
// value of that width and sign-extends it to the full 256 bits, matching
// Solidity's intN encoding (spec.md §4.7).
func SignExtend(width uint, u U256) U256 {
	if width >= 256 {
		return u
	}
	signPos := width - 1
	signWord, signOff := signPos/64, signPos%64
	negative := u[signWord]&(1<<signOff) != 0
	if !negative {
		return maskLow(width, u)
	}
	masked := maskLow(width, u)
	// Set all bits above `width` to 1.
	ones := U256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	highMask := ones.Xor(maskLow(width, ones))
	return masked.Or(highMask)
}

func maskLow(width uint, u U256) U256 {
	var mask U256
	full := width / 64
	rem := width % 64
	for i := uint(0); i < 4; i++ {
		switch {
		case i < full:
			mask[i] = ^uint64(0)
		case i == full:
			mask[i] = (uint64(1) << rem) - 1
			if rem == 0 {
				mask[i] = 0
			}
		default:
			mask[i] = 0
		}
	}
	return u.And(mask)
}
