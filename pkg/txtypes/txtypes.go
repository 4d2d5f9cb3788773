// Package txtypes implements Ethereum's four transaction envelopes —
// legacy, EIP-2930 access-list, EIP-1559 dynamic-fee, and EIP-4844 blob —
// their canonical RLP sighash preimages, signed encodings, and transaction
// hashes (spec.md §4.7 and §5 "Transaction").
//
// Grounded on the teacher's internal/tx/builder.go transaction lifecycle
// (nonce, fee, sign, broadcast) generalized from its single untyped
// models.Transaction into the four typed envelopes below, built on
// pkg/rlp and pkg/signer the same way hyperledger-firefly-signer's
// pkg/ethsigner layers transaction encoding on top of its RLP and
// secp256k1 packages.
package txtypes

import (
	"github.com/ethcore-go/ethcore/pkg/signer"
)

// TxType identifies which of the four envelopes a transaction uses.
// EIP-7702 set-code transactions are deliberately not added here — see
// DESIGN.md's Open Question 3 decision.
type TxType byte

const (
	LegacyTxType     TxType = 0x00
	AccessListTxType TxType = 0x01
	DynamicFeeTxType TxType = 0x02
	BlobTxType       TxType = 0x03
)

// Kind distinguishes the transaction error classes in spec.md §7.
type Kind int

const (
	KindInvalidRange Kind = iota
	KindMalformedEnvelope
	KindUnsignedTransaction
)

// Error is the typed error every fallible txtypes operation returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "txtypes: " + e.Msg }

// AccessTuple is one entry of an EIP-2930 access list: an address and the
// storage slots within it the transaction declares it will touch.
type AccessTuple struct {
	Address     [20]byte
	StorageKeys [][32]byte
}

// AccessList is the ordered set of access tuples EIP-2930/1559/4844
// transactions carry.
type AccessList []AccessTuple

func (al AccessList) encodeRLP() []byte {
	items := make([][]byte, len(al))
	for i, t := range al {
		keys := make([][]byte, len(t.StorageKeys))
		for j, k := range t.StorageKeys {
			keys[j] = encodeBytes(k[:])
		}
		items[i] = encodeList(encodeBytes(t.Address[:]), encodeList(keys...))
	}
	return encodeList(items...)
}

// Signature is the (r, s, recovery id) every envelope's EncodeSigned takes,
// produced by pkg/signer.Sign.
type Signature = signer.Signature
