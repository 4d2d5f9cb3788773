package txtypes

import (
	"github.com/ethcore-go/ethcore/pkg/keccak"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// AccessListTx is an EIP-2930 typed transaction: a legacy-shaped fee model
// plus an access list, wrapped in the type-0x01 envelope.
type AccessListTx struct {
	ChainID    uint64
	Nonce      uint64
	GasPrice   u256.U256
	Gas        uint64
	To         *[20]byte
	Value      u256.U256
	Data       []byte
	AccessList AccessList
}

func (tx *AccessListTx) unsignedItems() [][]byte {
	return [][]byte{
		encodeUint(tx.ChainID),
		encodeUint(tx.Nonce),
		encodeU256(tx.GasPrice),
		encodeUint(tx.Gas),
		encodeTo(tx.To),
		encodeU256(tx.Value),
		encodeBytes(tx.Data),
		tx.AccessList.encodeRLP(),
	}
}

// payload returns TxType || rlp(items); the type-prefixed "typed
// transaction" byte string EIP-2718 defines.
func (tx *AccessListTx) payload(items [][]byte) []byte {
	return append([]byte{byte(AccessListTxType)}, encodeList(items...)...)
}

// SigningHash returns Keccak256(0x01 || rlp(unsigned fields)).
func (tx *AccessListTx) SigningHash() [32]byte {
	return keccak.Hash256(tx.payload(tx.unsignedItems()))
}

// EncodeSigned returns the full typed transaction payload with the
// signature's (recovery_id, r, s) appended — EIP-2930 carries the
// canonical {0,1} recovery id directly as "y_parity", not an EIP-155 v.
func (tx *AccessListTx) EncodeSigned(sig Signature) []byte {
	items := tx.unsignedItems()
	items = append(items, encodeUint(uint64(sig.RecoveryID)), encodeU256(sig.R), encodeU256(sig.S))
	return tx.payload(items)
}

// Hash returns the Keccak256 hash of the final signed typed payload.
func (tx *AccessListTx) Hash(sig Signature) [32]byte {
	return keccak.Hash256(tx.EncodeSigned(sig))
}
