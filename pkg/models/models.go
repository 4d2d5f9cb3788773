// Package models holds the small set of plain value types internal/*
// passes between the config, storage, and transaction-builder layers.
// Adapted from the teacher's multi-chain pkg/models/models.go: the
// Network enum (BTC/ETH/TRX) is gone since this repo only ever targets
// Ethereum, and PendingTransaction/DerivedAddress now carry the typed fields
// pkg/txtypes and pkg/hdwallet produce instead of loosely-typed strings.
package models

import "github.com/ethcore-go/ethcore/pkg/u256"

// DerivedAddress holds a generated address with its derivation path.
type DerivedAddress struct {
	Address        [20]byte `json:"address"`
	DerivationPath string   `json:"derivation_path"`
	PublicKeyHex   string   `json:"public_key"`
}

// PendingTransaction is a transaction awaiting or having completed
// signing and broadcast, as tracked by internal/storage and
// internal/txbuilder.
type PendingTransaction struct {
	From      [20]byte  `json:"from"`
	To        *[20]byte `json:"to"`
	Amount    u256.U256 `json:"amount"`
	Nonce     uint64    `json:"nonce"`
	Data      []byte    `json:"data,omitempty"`
	Signed    bool      `json:"signed"`
	TxHash    [32]byte  `json:"tx_hash,omitempty"`
	RawSigned []byte    `json:"-"`
}

// BlockEvent represents a transfer detected by a block listener.
type BlockEvent struct {
	BlockNumber uint64    `json:"block_number"`
	TxHash      [32]byte  `json:"tx_hash"`
	From        [20]byte  `json:"from"`
	To          [20]byte  `json:"to"`
	Amount      u256.U256 `json:"amount"`
	Confirmed   bool      `json:"confirmed"`
	Reorged     bool      `json:"reorged,omitempty"`
}
