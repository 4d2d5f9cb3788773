// Package secp256k1 implements point arithmetic on the secp256k1 curve
// y^2 = x^3 + 7 over the field p = 2^256 - 2^32 - 977: base-point and
// arbitrary-point scalar multiplication, point addition/doubling,
// on-curve checks, and x-coordinate recovery from (r, recovery_id).
//
// Field arithmetic is performed modulo P; scalar arithmetic modulo the
// group order N. ScalarMultSecret and BaseMultSecret run the same
// double, add and masked select for every bit of a secret scalar instead
// of adding only when a bit is set. They are not fully constant time: the
// select sets its mask with an `if` on the bit, and Add/Double branch on
// point values (including the point at infinity before the first set
// bit). The recovery path (public input only) is variable time.
package secp256k1

import (
	"math/big"

	"github.com/ethcore-go/ethcore/pkg/u256"
)

// P is the secp256k1 field prime.
var P = u256.MustFromBytesBE(mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"))

// N is the secp256k1 group order.
var N = u256.MustFromBytesBE(mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"))

// gx, gy are the generator point coordinates.
var gx = u256.MustFromBytesBE(mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"))
var gy = u256.MustFromBytesBE(mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"))

// G is the curve generator point.
var G = Point{X: gx, Y: gy}

func mustHex(s string) []byte {
	b := make([]byte, len(s)/2)
	for i := range b {
		var hi, lo byte
		hi = nib(s[i*2])
		lo = nib(s[i*2+1])
		b[i] = hi<<4 | lo
	}
	return b
}

func nib(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		panic("secp256k1: bad hex constant")
	}
}

// Point is an affine point on the curve. The point at infinity is marked
// by the Infinity flag; InfinityPoint also has both coordinates zero, and
// (0,0) never occurs as a real point (0^3+7=7, and 7 is not a QR mod p).
type Point struct {
	X, Y     u256.U256
	Infinity bool
}

// InfinityPoint is the point at infinity, the group identity.
var InfinityPoint = Point{Infinity: true}

func fieldAdd(a, b u256.U256) u256.U256 { return a.ModAdd(b, P) }
func fieldSub(a, b u256.U256) u256.U256 { return a.ModSub(b, P) }
func fieldMul(a, b u256.U256) u256.U256 { return a.ModMul(b, P) }

func fieldInv(a u256.U256) u256.U256 {
	inv, err := a.ModInverse(P)
	if err != nil {
		panic(err) // only reachable if a == 0, never the case in this package's call sites
	}
	return inv
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + 7 (mod p).
func IsOnCurve(p Point) bool {
	if p.Infinity {
		return true
	}
	y2 := fieldMul(p.Y, p.Y)
	x3 := fieldMul(fieldMul(p.X, p.X), p.X)
	rhs := fieldAdd(x3, u256.FromUint64(7))
	return y2 == rhs
}

// Add returns p1+p2 on the curve (variable time; both points public).
func Add(p1, p2 Point) Point {
	if p1.Infinity {
		return p2
	}
	if p2.Infinity {
		return p1
	}
	if p1.X == p2.X {
		if p1.Y != p2.Y || p1.Y.IsZero() {
			return InfinityPoint
		}
		return Double(p1)
	}
	// slope = (y2-y1)/(x2-x1)
	lambda := fieldMul(fieldSub(p2.Y, p1.Y), fieldInv(fieldSub(p2.X, p1.X)))
	x3 := fieldSub(fieldSub(fieldMul(lambda, lambda), p1.X), p2.X)
	y3 := fieldSub(fieldMul(lambda, fieldSub(p1.X, x3)), p1.Y)
	return Point{X: x3, Y: y3}
}

// Double returns 2p (variable time; p is public in every call site that
// uses Double directly — secret-scalar paths go through ScalarMultSecret,
// which calls Double once for every bit of the scalar).
func Double(p Point) Point {
	if p.Infinity || p.Y.IsZero() {
		return InfinityPoint
	}
	// slope = 3x^2 / 2y
	threeX2 := fieldMul(u256.FromUint64(3), fieldMul(p.X, p.X))
	twoY := fieldAdd(p.Y, p.Y)
	lambda := fieldMul(threeX2, fieldInv(twoY))
	x3 := fieldSub(fieldMul(lambda, lambda), fieldAdd(p.X, p.X))
	y3 := fieldSub(fieldMul(lambda, fieldSub(p.X, x3)), p.Y)
	return Point{X: x3, Y: y3}
}

// ScalarMult returns k*p using simple double-and-add. This is
// variable-time and must only be used when k is public (e.g. the
// fixed-pattern recovery-ID arithmetic, never a private key).
func ScalarMult(p Point, k u256.U256) Point {
	result := InfinityPoint
	addend := p
	for word := 0; word < 4; word++ {
		w := k[word]
		for bit := 0; bit < 64; bit++ {
			if w&1 == 1 {
				result = Add(result, addend)
			}
			addend = Double(addend)
			w >>= 1
		}
	}
	return result
}

// ScalarMultSecret returns k*p: every iteration always computes both
// "add" and "double" and selects the correct running total with a bit
// mask (see selectPoint). Use this (and BaseMultSecret) for any scalar
// multiplication where k is a private key.
func ScalarMultSecret(p Point, k u256.U256) Point {
	result := InfinityPoint
	addend := p
	for word := 3; word >= 0; word-- {
		w := k[word]
		for bit := 63; bit >= 0; bit-- {
			result = Double(result)
			sum := Add(result, addend)
			bitSet := (w >> uint(bit)) & 1
			result = selectPoint(bitSet == 1, sum, result)
		}
	}
	return result
}

// BaseMultSecret returns k*G via ScalarMultSecret.
func BaseMultSecret(k u256.U256) Point { return ScalarMultSecret(G, k) }

// selectPoint returns a if cond else b, combining the coordinates through
// a bit mask; the mask itself is set with an `if` on cond.
func selectPoint(cond bool, a, b Point) Point {
	var mask uint64
	if cond {
		mask = ^uint64(0)
	}
	var out Point
	for i := 0; i < 4; i++ {
		out.X[i] = (a.X[i] & mask) | (b.X[i] & ^mask)
		out.Y[i] = (a.Y[i] & mask) | (b.Y[i] & ^mask)
	}
	out.Infinity = a.Infinity && cond || (!cond && b.Infinity)
	return out
}

// sqrtMod returns a square root of a modulo P, valid because P ≡ 3 (mod 4):
// sqrt(a) = a^((P+1)/4) mod P whenever a is a quadratic residue.
func sqrtMod(a u256.U256) u256.U256 {
	exp := new(big.Int).Add(P.Big(), big.NewInt(1))
	exp.Rsh(exp, 2)
	return a.ModExp(u256.FromBig(exp), P)
}

// DecompressY recovers the y-coordinate for a given x and the desired
// parity (true = odd), returning an error if x is not on the curve.
func DecompressY(x u256.U256, odd bool) (u256.U256, error) {
	x3 := fieldMul(fieldMul(x, x), x)
	rhs := fieldAdd(x3, u256.FromUint64(7))
	y := sqrtMod(rhs)
	if fieldMul(y, y) != rhs {
		return u256.U256{}, errNotOnCurve
	}
	yIsOdd := y[0]&1 == 1
	if yIsOdd != odd {
		y = fieldSub(u256.U256{}, y)
	}
	return y, nil
}

var errNotOnCurve = &CurveError{"x coordinate is not on the curve"}

// CurveError reports a point that fails the curve equation.
type CurveError struct{ msg string }

func (e *CurveError) Error() string { return "secp256k1: " + e.msg }
