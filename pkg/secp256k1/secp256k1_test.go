package secp256k1_test

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/ethcore-go/ethcore/pkg/secp256k1"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

func TestGeneratorIsOnCurve(t *testing.T) {
	if !secp256k1.IsOnCurve(secp256k1.G) {
		t.Fatal("generator point fails curve equation")
	}
}

func TestInfinityIsOnCurve(t *testing.T) {
	if !secp256k1.IsOnCurve(secp256k1.InfinityPoint) {
		t.Fatal("InfinityPoint must satisfy IsOnCurve")
	}
}

func TestDoubleEqualsAddSelf(t *testing.T) {
	g2 := secp256k1.Double(secp256k1.G)
	g2Add := secp256k1.Add(secp256k1.G, secp256k1.G)
	if g2 != g2Add {
		t.Fatalf("Double(G) != Add(G,G): %+v vs %+v", g2, g2Add)
	}
	if !secp256k1.IsOnCurve(g2) {
		t.Fatal("2G not on curve")
	}
}

// TestScalarMultMatchesBtcec cross-checks base-point scalar multiplication
// against btcec's independent secp256k1 implementation.
func TestScalarMultMatchesBtcec(t *testing.T) {
	scalars := []uint64{1, 2, 3, 5, 17, 12345, 0xffffffff}
	curve := btcec.S256()
	for _, s := range scalars {
		k := u256.FromUint64(s)
		got := secp256k1.BaseMultSecret(k)

		wantX, wantY := curve.ScalarBaseMult(new(big.Int).SetUint64(s).Bytes())
		if got.X.Big().Cmp(wantX) != 0 || got.Y.Big().Cmp(wantY) != 0 {
			t.Fatalf("scalar %d: got (%s,%s) want (%s,%s)", s, got.X.Big(), got.Y.Big(), wantX, wantY)
		}
	}
}

func TestScalarMultAgreesWithVariableTime(t *testing.T) {
	k := u256.FromUint64(0xdeadbeef)
	a := secp256k1.ScalarMult(secp256k1.G, k)
	b := secp256k1.ScalarMultSecret(secp256k1.G, k)
	if a != b {
		t.Fatalf("ScalarMult and ScalarMultSecret disagree: %+v vs %+v", a, b)
	}
}

func TestDecompressYRoundTrip(t *testing.T) {
	k := u256.FromUint64(777)
	p := secp256k1.BaseMultSecret(k)
	yOdd := p.Y.BytesBE()[31]&1 == 1
	y, err := secp256k1.DecompressY(p.X, yOdd)
	if err != nil {
		t.Fatal(err)
	}
	if y != p.Y {
		t.Fatalf("DecompressY mismatch: got %x want %x", y.BytesBE(), p.Y.BytesBE())
	}
}

func TestDecompressYRejectsOffCurve(t *testing.T) {
	// x=0 gives y^2 = 7 mod p, and 7 is not a quadratic residue for
	// secp256k1's prime, so this x never corresponds to a curve point.
	_, err := secp256k1.DecompressY(u256.FromUint64(0), true)
	if err == nil {
		t.Fatal("expected error decompressing non-residue x")
	}
}
