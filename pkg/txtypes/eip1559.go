package txtypes

import (
	"github.com/ethcore-go/ethcore/pkg/keccak"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// DynamicFeeTx is an EIP-1559 typed transaction: priority-fee/fee-cap
// pricing replaces a flat gas price, wrapped in the type-0x02 envelope.
type DynamicFeeTx struct {
	ChainID    uint64
	Nonce      uint64
	GasTipCap  u256.U256
	GasFeeCap  u256.U256
	Gas        uint64
	To         *[20]byte
	Value      u256.U256
	Data       []byte
	AccessList AccessList
}

func (tx *DynamicFeeTx) unsignedItems() [][]byte {
	return [][]byte{
		encodeUint(tx.ChainID),
		encodeUint(tx.Nonce),
		encodeU256(tx.GasTipCap),
		encodeU256(tx.GasFeeCap),
		encodeUint(tx.Gas),
		encodeTo(tx.To),
		encodeU256(tx.Value),
		encodeBytes(tx.Data),
		tx.AccessList.encodeRLP(),
	}
}

func (tx *DynamicFeeTx) payload(items [][]byte) []byte {
	return append([]byte{byte(DynamicFeeTxType)}, encodeList(items...)...)
}

// SigningHash returns Keccak256(0x02 || rlp(unsigned fields)).
func (tx *DynamicFeeTx) SigningHash() [32]byte {
	return keccak.Hash256(tx.payload(tx.unsignedItems()))
}

// EncodeSigned appends (y_parity, r, s) to the unsigned fields.
func (tx *DynamicFeeTx) EncodeSigned(sig Signature) []byte {
	items := tx.unsignedItems()
	items = append(items, encodeUint(uint64(sig.RecoveryID)), encodeU256(sig.R), encodeU256(sig.S))
	return tx.payload(items)
}

// Hash returns the Keccak256 hash of the final signed typed payload —
// this is the tx hash exercised by spec.md §8's seed scenario S6.
func (tx *DynamicFeeTx) Hash(sig Signature) [32]byte {
	return keccak.Hash256(tx.EncodeSigned(sig))
}
