package signer_test

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/ethcore-go/ethcore/pkg/keccak"
	"github.com/ethcore-go/ethcore/pkg/signer"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

func testSecret(t *testing.T, v uint64) u256.U256 {
	t.Helper()
	return u256.FromUint64(v)
}

func hashOf(msg string) [32]byte {
	return sha256.Sum256([]byte(msg))
}

// TestSignDeterministic asserts invariant 4 from spec.md §8: signing the
// same (d, hash) twice yields byte-identical (r, s, v).
func TestSignDeterministic(t *testing.T) {
	d := testSecret(t, 0xdeadbeef)
	h := hashOf("hello ethereum")

	sig1, err := signer.Sign(d, h)
	if err != nil {
		t.Fatal(err)
	}
	sig2, err := signer.Sign(d, h)
	if err != nil {
		t.Fatal(err)
	}
	if sig1 != sig2 {
		t.Fatalf("nondeterministic signature: %+v vs %+v", sig1, sig2)
	}
}

// TestSignRecoverRoundTrip asserts invariant 3: ecrecover(h, sign(d,h)) ==
// address_of(d), and s <= n/2 always.
func TestSignRecoverRoundTrip(t *testing.T) {
	n, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	halfN := new(big.Int).Rsh(n, 1)

	secrets := []uint64{1, 2, 3, 0xdeadbeef, 0xffffffff, 123456789}
	for _, s := range secrets {
		d := testSecret(t, s)
		h := hashOf("message for " + big.NewInt(int64(s)).String())

		sig, err := signer.Sign(d, h)
		if err != nil {
			t.Fatalf("sign secret=%d: %v", s, err)
		}
		if sig.S.Big().Cmp(halfN) > 0 {
			t.Fatalf("secret=%d: s not normalized to lower half", s)
		}

		q, err := signer.Recover(h, sig)
		if err != nil {
			t.Fatalf("recover secret=%d: %v", s, err)
		}
		addr := signer.AddressFromPublicKey(q)

		priv, pub := btcec.PrivKeyFromBytes(mustBytes32(d))
		_ = priv
		wantAddr := addressFromBtcecPubkey(pub)
		if addr != wantAddr {
			t.Fatalf("secret=%d: address mismatch got %x want %x", s, addr, wantAddr)
		}

		gotAddr, err := signer.Ecrecover(h, sig)
		if err != nil || gotAddr != addr {
			t.Fatalf("Ecrecover mismatch: %v, %x vs %x", err, gotAddr, addr)
		}
	}
}

// TestSignMatchesBtcecRecovery cross-checks Sign's output against btcec's
// independent ECDSA verify (ensures R,S form a valid signature over the
// same curve, from an unrelated implementation).
func TestSignMatchesBtcecRecovery(t *testing.T) {
	d := testSecret(t, 999331)
	h := hashOf("cross-check payload")
	sig, err := signer.Sign(d, h)
	if err != nil {
		t.Fatal(err)
	}

	priv, _ := btcec.PrivKeyFromBytes(mustBytes32(d))
	rBytes := sig.R.BytesBE()
	sBytes := sig.S.BytesBE()
	r := new(btcec.ModNScalar)
	r.SetByteSlice(rBytes[:])
	s := new(btcec.ModNScalar)
	s.SetByteSlice(sBytes[:])
	btcSig := ecdsa.NewSignature(r, s)
	if !btcSig.Verify(h[:], priv.PubKey()) {
		t.Fatal("btcec failed to verify our signature")
	}
}

func TestEIP155VEncoding(t *testing.T) {
	// S5: chain id 1, recovery id 0 -> v=37; recovery id 1 -> v=38.
	if v := signer.EIP155V(0, 1); v != 37 {
		t.Fatalf("EIP155V(0,1) = %d, want 37", v)
	}
	if v := signer.EIP155V(1, 1); v != 38 {
		t.Fatalf("EIP155V(1,1) = %d, want 38", v)
	}
	if c := signer.ChainIDFromV(147); c != 56 {
		t.Fatalf("ChainIDFromV(147) = %d, want 56", c)
	}
}

// TestRecoveryIDFromVRoundTrip asserts invariant 6: for every chain id and
// parity bit, recovering the id from the EIP-155 v reproduces it.
func TestRecoveryIDFromVRoundTrip(t *testing.T) {
	chainIDs := []uint64{1, 5, 56, 137, 11155111}
	for _, c := range chainIDs {
		for _, p := range []byte{0, 1} {
			v := signer.EIP155V(p, c)
			got, err := signer.RecoveryIDFromV(v, c)
			if err != nil {
				t.Fatalf("chain %d parity %d: %v", c, p, err)
			}
			if got != p {
				t.Fatalf("chain %d parity %d: got %d", c, p, got)
			}
		}
	}

	// Legacy and canonical forms round-trip regardless of chain id.
	for _, p := range []byte{0, 1} {
		if got, _ := signer.RecoveryIDFromV(signer.LegacyV(p), 0); got != p {
			t.Fatalf("legacy v parity %d: got %d", p, got)
		}
		if got, _ := signer.RecoveryIDFromV(uint64(p), 0); got != p {
			t.Fatalf("canonical v parity %d: got %d", p, got)
		}
	}
}

func TestSignRejectsOutOfRangeSecret(t *testing.T) {
	h := hashOf("x")
	if _, err := signer.Sign(u256.Zero, h); err == nil {
		t.Fatal("expected error signing with zero secret")
	}
}

func mustBytes32(u u256.U256) []byte {
	b := u.BytesBE()
	return b[:]
}

func addressFromBtcecPubkey(pub *btcec.PublicKey) [20]byte {
	x := pub.X().Bytes()
	y := pub.Y().Bytes()
	var xb, yb [32]byte
	copy(xb[32-len(x):], x)
	copy(yb[32-len(y):], y)
	full := append(append([]byte{}, xb[:]...), yb[:]...)
	digest := keccak.Hash256(full)
	var addr [20]byte
	copy(addr[:], digest[12:])
	return addr
}
