package txtypes_test

import (
	"bytes"
	"testing"

	"github.com/ethcore-go/ethcore/pkg/rlp"
	"github.com/ethcore-go/ethcore/pkg/secp256k1"
	"github.com/ethcore-go/ethcore/pkg/signer"
	"github.com/ethcore-go/ethcore/pkg/txtypes"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

func gwei(n uint64) u256.U256 { return u256.FromUint64(n * 1_000_000_000) }

func addrPtr(b byte) *[20]byte {
	var a [20]byte
	a[19] = b
	return &a
}

func addressOf(secret u256.U256) [20]byte {
	q := secp256k1.BaseMultSecret(secret)
	return signer.AddressFromPublicKey(q)
}

func TestLegacySighashPreAndPostEip155(t *testing.T) {
	tx := &txtypes.LegacyTx{
		Nonce:    0,
		GasPrice: gwei(20),
		Gas:      21000,
		To:       addrPtr(1),
		Value:    u256.FromUint64(1),
		Data:     nil,
	}
	preEip155 := tx.SigningHash(0)
	postEip155 := tx.SigningHash(1)
	if preEip155 == postEip155 {
		t.Fatal("pre- and post-EIP-155 sighashes must differ")
	}
}

// decodeV extracts the v field (7th item, index 6) of a signed legacy RLP list.
func decodeV(t *testing.T, enc []byte) uint64 {
	t.Helper()
	val, err := rlp.DecodeExact(enc)
	if err != nil {
		t.Fatal(err)
	}
	items, err := val.Items()
	if err != nil {
		t.Fatal(err)
	}
	v, err := items[6].Uint()
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestLegacySignedVEncoding(t *testing.T) {
	secret := u256.FromUint64(0xabc123)
	tx := &txtypes.LegacyTx{
		Nonce:    5,
		GasPrice: gwei(10),
		Gas:      21000,
		To:       addrPtr(2),
		Value:    u256.FromUint64(100),
	}

	// Pre-EIP-155 (chain id 0): v must be in {27, 28}.
	h0 := tx.SigningHash(0)
	sig0, err := signer.Sign(secret, h0)
	if err != nil {
		t.Fatal(err)
	}
	enc0 := tx.EncodeSigned(sig0, 0)
	v0 := decodeV(t, enc0)
	if v0 != 27 && v0 != 28 {
		t.Fatalf("pre-EIP-155 v = %d, want 27 or 28", v0)
	}

	// EIP-155 with chain id 1: v must be 2*chainID+35+recovery_id.
	h1 := tx.SigningHash(1)
	sig1, err := signer.Sign(secret, h1)
	if err != nil {
		t.Fatal(err)
	}
	enc1 := tx.EncodeSigned(sig1, 1)
	v1 := decodeV(t, enc1)
	wantV := uint64(sig1.RecoveryID) + 1*2 + 35
	if v1 != wantV {
		t.Fatalf("EIP-155 v = %d, want %d", v1, wantV)
	}
}

func TestLegacySignedRecoversToSigner(t *testing.T) {
	secret := u256.FromUint64(777)
	want := addressOf(secret)
	tx := &txtypes.LegacyTx{
		Nonce: 1, GasPrice: gwei(10), Gas: 21000, To: addrPtr(3), Value: u256.FromUint64(5),
	}
	h := tx.SigningHash(1)
	sig, err := signer.Sign(secret, h)
	if err != nil {
		t.Fatal(err)
	}
	got, err := signer.Ecrecover(h, sig)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("recovered address %x, want %x", got, want)
	}
}

func TestEmptyAccessListEncodesAsC0(t *testing.T) {
	got := rlp.EncodeList()
	want := []byte{0xc0}
	if !bytes.Equal(got, want) {
		t.Fatalf("empty RLP list = %x, want %x", got, want)
	}

	al := txtypes.AccessList{}
	tx := &txtypes.AccessListTx{
		ChainID: 1, Nonce: 0, GasPrice: gwei(10), Gas: 21000,
		To: addrPtr(1), Value: u256.Zero, AccessList: al,
	}
	// An AccessListTx with an empty access list must still produce a stable,
	// well-formed sighash, and its signed payload decodes back into an
	// 11-item list (8 fields plus y_parity, r, s).
	h := tx.SigningHash()
	secret := u256.FromUint64(99)
	sig, err := signer.Sign(secret, h)
	if err != nil {
		t.Fatal(err)
	}
	signed := tx.EncodeSigned(sig)
	if signed[0] != byte(txtypes.AccessListTxType) {
		t.Fatalf("type byte = %x, want 0x01", signed[0])
	}
	val, err := rlp.DecodeExact(signed[1:])
	if err != nil {
		t.Fatal(err)
	}
	items, err := val.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 11 {
		t.Fatalf("signed access-list tx has %d items, want 11", len(items))
	}
	alBytes, err := items[7].Bytes()
	_ = alBytes
	if err == nil {
		t.Fatal("access list field should be a nested list, not a byte string")
	}
}

// TestDynamicFeeSighashAndSignedRoundTrip builds the S6 scenario from
// spec.md §8: an EIP-1559 transfer, signed and re-hashed, must be stable
// and must recover back to the signer's own address.
func TestDynamicFeeSighashAndSignedRoundTrip(t *testing.T) {
	secret := u256.FromUint64(0xdeadbeefcafef00d)
	tx := &txtypes.DynamicFeeTx{
		ChainID:    1,
		Nonce:      0,
		GasTipCap:  gwei(1),
		GasFeeCap:  gwei(20),
		Gas:        21000,
		To:         addrPtr(1),
		Value:      u256.FromUint64(1),
		Data:       nil,
		AccessList: nil,
	}

	h1 := tx.SigningHash()
	h2 := tx.SigningHash()
	if h1 != h2 {
		t.Fatal("SigningHash is not deterministic over identical fields")
	}

	sig, err := signer.Sign(secret, h1)
	if err != nil {
		t.Fatal(err)
	}
	signed1 := tx.EncodeSigned(sig)
	signed2 := tx.EncodeSigned(sig)
	if !bytes.Equal(signed1, signed2) {
		t.Fatal("EncodeSigned is not deterministic")
	}
	if signed1[0] != byte(txtypes.DynamicFeeTxType) {
		t.Fatalf("type byte = %x, want 0x02", signed1[0])
	}

	txHash1 := tx.Hash(sig)
	txHash2 := tx.Hash(sig)
	if txHash1 != txHash2 {
		t.Fatal("transaction hash is not stable across re-hashing")
	}

	got, err := signer.Ecrecover(h1, sig)
	if err != nil {
		t.Fatal(err)
	}
	want := addressOf(secret)
	if got != want {
		t.Fatalf("recovered address %x != signer address %x", got, want)
	}
}

func TestDynamicFeeAccessListChangesSighash(t *testing.T) {
	base := &txtypes.DynamicFeeTx{
		ChainID: 1, Nonce: 0, GasTipCap: gwei(1), GasFeeCap: gwei(20), Gas: 21000,
		To: addrPtr(1), Value: u256.Zero,
	}
	withAccessList := *base
	withAccessList.AccessList = txtypes.AccessList{{
		Address:     [20]byte{1},
		StorageKeys: [][32]byte{{2}},
	}}
	if base.SigningHash() == withAccessList.SigningHash() {
		t.Fatal("adding an access list entry did not change the sighash")
	}
}

func TestBlobSighashIncludesMaxFeePerBlobGas(t *testing.T) {
	base := &txtypes.BlobTx{
		ChainID: 1, Nonce: 0, GasTipCap: gwei(1), GasFeeCap: gwei(20), Gas: 21000,
		To: [20]byte{1}, Value: u256.Zero, MaxFeePerBlobGas: gwei(1),
	}
	h1 := base.SigningHash()

	higher := *base
	higher.MaxFeePerBlobGas = gwei(2)
	h2 := higher.SigningHash()

	if h1 == h2 {
		t.Fatal("changing MaxFeePerBlobGas did not change the sighash")
	}
}

func TestBlobTypeByteAndRecover(t *testing.T) {
	secret := u256.FromUint64(42)
	tx := &txtypes.BlobTx{
		ChainID: 1, Nonce: 0, GasTipCap: gwei(1), GasFeeCap: gwei(20), Gas: 21000,
		To: [20]byte{1}, Value: u256.Zero, MaxFeePerBlobGas: gwei(1),
		BlobHashes: [][32]byte{{0x01, 0xaa}},
	}
	h := tx.SigningHash()
	sig, err := signer.Sign(secret, h)
	if err != nil {
		t.Fatal(err)
	}
	signed := tx.EncodeSigned(sig)
	if signed[0] != byte(txtypes.BlobTxType) {
		t.Fatalf("type byte = %x, want 0x03", signed[0])
	}

	got, err := signer.Ecrecover(h, sig)
	if err != nil {
		t.Fatal(err)
	}
	want := addressOf(secret)
	if got != want {
		t.Fatalf("recovered address %x != signer address %x", got, want)
	}
}

func TestBlobHashesChangeSighash(t *testing.T) {
	base := &txtypes.BlobTx{
		ChainID: 1, Nonce: 0, GasTipCap: gwei(1), GasFeeCap: gwei(20), Gas: 21000,
		To: [20]byte{1}, Value: u256.Zero, MaxFeePerBlobGas: gwei(1),
		BlobHashes: [][32]byte{{0x01}},
	}
	other := *base
	other.BlobHashes = [][32]byte{{0x01, 0xff}}
	if base.SigningHash() == other.SigningHash() {
		t.Fatal("different blob hashes produced the same sighash")
	}
}

// TestVersionedHashInvariant checks invariant 7 of spec.md §8: the
// versioned hash's first byte is always 0x01, and the rest matches
// Keccak256(commitment)[1:].
func TestVersionedHashInvariant(t *testing.T) {
	var commitment [48]byte
	for i := range commitment {
		commitment[i] = byte(i * 3)
	}
	vh := txtypes.VersionedHashFromCommitment(commitment)
	if vh[0] != 0x01 {
		t.Fatalf("versioned hash first byte = %x, want 0x01", vh[0])
	}
	if !txtypes.IsWellFormedVersionedHash(vh) {
		t.Fatal("IsWellFormedVersionedHash rejected a well-formed hash")
	}

	malformed := vh
	malformed[0] = 0x02
	if txtypes.IsWellFormedVersionedHash(malformed) {
		t.Fatal("IsWellFormedVersionedHash accepted a malformed hash")
	}
}

func TestVersionedHashDeterministic(t *testing.T) {
	var c [48]byte
	c[0] = 0xAB
	a := txtypes.VersionedHashFromCommitment(c)
	b := txtypes.VersionedHashFromCommitment(c)
	if a != b {
		t.Fatal("VersionedHashFromCommitment is not deterministic")
	}
}
