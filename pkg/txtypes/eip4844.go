package txtypes

import (
	"github.com/ethcore-go/ethcore/pkg/keccak"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// BlobTx is an EIP-4844 typed transaction: a dynamic-fee transaction that
// additionally carries a blob-gas fee cap and the versioned hashes of the
// blobs it commits to, wrapped in the type-0x03 envelope. The blobs and KZG
// commitments themselves are off-protocol sidecar data this package does
// not model — see SPEC_FULL.md's note on why the KZG math is out of scope.
type BlobTx struct {
	ChainID          uint64
	Nonce            uint64
	GasTipCap        u256.U256
	GasFeeCap        u256.U256
	Gas              uint64
	To               [20]byte // blob transactions may not create contracts
	Value            u256.U256
	Data             []byte
	AccessList       AccessList
	MaxFeePerBlobGas u256.U256
	BlobHashes       [][32]byte
}

func (tx *BlobTx) encodeBlobHashes() []byte {
	items := make([][]byte, len(tx.BlobHashes))
	for i, h := range tx.BlobHashes {
		items[i] = encodeBytes(h[:])
	}
	return encodeList(items...)
}

func (tx *BlobTx) unsignedItems() [][]byte {
	return [][]byte{
		encodeUint(tx.ChainID),
		encodeUint(tx.Nonce),
		encodeU256(tx.GasTipCap),
		encodeU256(tx.GasFeeCap),
		encodeUint(tx.Gas),
		encodeBytes(tx.To[:]),
		encodeU256(tx.Value),
		encodeBytes(tx.Data),
		tx.AccessList.encodeRLP(),
		encodeU256(tx.MaxFeePerBlobGas),
		tx.encodeBlobHashes(),
	}
}

func (tx *BlobTx) payload(items [][]byte) []byte {
	return append([]byte{byte(BlobTxType)}, encodeList(items...)...)
}

// SigningHash returns Keccak256(0x03 || rlp(unsigned fields)). The blob
// sidecar (blobs, commitments, proofs) is never part of this hash — only
// the versioned hashes committing to it are, per EIP-4844.
func (tx *BlobTx) SigningHash() [32]byte {
	return keccak.Hash256(tx.payload(tx.unsignedItems()))
}

// EncodeSigned appends (y_parity, r, s) to the unsigned fields.
func (tx *BlobTx) EncodeSigned(sig Signature) []byte {
	items := tx.unsignedItems()
	items = append(items, encodeUint(uint64(sig.RecoveryID)), encodeU256(sig.R), encodeU256(sig.S))
	return tx.payload(items)
}

// Hash returns the Keccak256 hash of the final signed typed payload (the
// "tx hash" form; the network wrapper that bundles the blob sidecar uses a
// different encoding not modeled here, per EIP-4844 §Networking).
func (tx *BlobTx) Hash(sig Signature) [32]byte {
	return keccak.Hash256(tx.EncodeSigned(sig))
}
