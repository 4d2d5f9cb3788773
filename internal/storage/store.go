// Package storage defines the nonce, transaction, and watch-address
// stores internal/txbuilder and a block listener depend on. Adapted from
// the teacher's internal/storage/store.go by dropping its
// models.Transaction (string addresses, *big.Int amounts, Network field)
// in favor of models.PendingTransaction and [20]byte addresses.
package storage

import "github.com/ethcore-go/ethcore/pkg/models"

// NonceStore manages per-address nonce state.
type NonceStore interface {
	// GetAndIncrement atomically returns the current nonce and increments it.
	GetAndIncrement(address [20]byte) (uint64, error)
}

// TxStore provides idempotent transaction storage.
type TxStore interface {
	// Get returns a previously stored transaction by idempotency key, or nil if not found.
	Get(idempotencyKey string) (*models.PendingTransaction, error)
	// Put stores a transaction keyed by idempotency key.
	Put(idempotencyKey string, tx *models.PendingTransaction) error
}

// WatchStore manages the set of watched addresses.
type WatchStore interface {
	// Add adds an address to the watch set.
	Add(address [20]byte) error
	// Remove removes an address from the watch set.
	Remove(address [20]byte) error
	// List returns all currently watched addresses.
	List() ([][20]byte, error)
	// Contains checks if an address is in the watch set.
	Contains(address [20]byte) (bool, error)
}
