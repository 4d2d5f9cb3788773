package txtypes

import (
	"github.com/ethcore-go/ethcore/pkg/keccak"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// LegacyTx is a pre-EIP-2718 transaction: no type byte, RLP-encoded
// directly as a 9-item list once signed.
type LegacyTx struct {
	Nonce    uint64
	GasPrice u256.U256
	Gas      uint64
	To       *[20]byte // nil for contract creation
	Value    u256.U256
	Data     []byte
}

func (tx *LegacyTx) unsignedItems() [][]byte {
	return [][]byte{
		encodeUint(tx.Nonce),
		encodeU256(tx.GasPrice),
		encodeUint(tx.Gas),
		encodeTo(tx.To),
		encodeU256(tx.Value),
		encodeBytes(tx.Data),
	}
}

// SigningHash returns the Keccak256 hash signed to produce this
// transaction's signature. chainID == 0 selects the pre-EIP-155 form
// (6-item list); chainID != 0 appends (chainID, 0, 0) per EIP-155, binding
// the signature to a specific chain.
func (tx *LegacyTx) SigningHash(chainID uint64) [32]byte {
	items := tx.unsignedItems()
	if chainID != 0 {
		items = append(items, encodeUint(chainID), encodeBytes(nil), encodeBytes(nil))
	}
	return keccak.Hash256(encodeList(items...))
}

// EncodeSigned returns the final 9-item RLP-encoded transaction: the
// unsigned fields followed by (v, r, s), with v encoded per EIP-155 when
// chainID != 0 or as the legacy {27,28} form otherwise.
func (tx *LegacyTx) EncodeSigned(sig Signature, chainID uint64) []byte {
	var v uint64
	if chainID != 0 {
		v = uint64(sig.RecoveryID) + chainID*2 + 35
	} else {
		v = uint64(sig.RecoveryID) + 27
	}
	items := tx.unsignedItems()
	items = append(items, encodeUint(v), encodeU256(sig.R), encodeU256(sig.S))
	return encodeList(items...)
}

// Hash returns the Keccak256 hash of the final signed encoding — the
// on-chain transaction hash.
func (tx *LegacyTx) Hash(sig Signature, chainID uint64) [32]byte {
	return keccak.Hash256(tx.EncodeSigned(sig, chainID))
}
