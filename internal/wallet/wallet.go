// Package wallet adapts the teacher's internal/wallet Generator/Signer
// interfaces — originally parameterized over BTC/ETH/TRX — down to the
// single Ethereum domain this repository covers, backed by pkg/hdwallet,
// pkg/signer, and pkg/txtypes instead of the teacher's btcec/go-bip32
// calls.
package wallet

import (
	"context"
	"fmt"

	"github.com/ethcore-go/ethcore/pkg/hdwallet"
	"github.com/ethcore-go/ethcore/pkg/models"
	"github.com/ethcore-go/ethcore/pkg/signer"
	"github.com/ethcore-go/ethcore/pkg/txtypes"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// Generator derives Ethereum addresses from an HD seed.
type Generator interface {
	GenerateFromSeed(seed []byte, index uint32) (*models.DerivedAddress, error)
}

// HashSigner signs an arbitrary 32-byte digest — a transaction's sighash,
// an EIP-191 personal-message hash, or an EIP-712 typed-data digest — with
// the given private key.
type HashSigner interface {
	SignHash(ctx context.Context, hash [32]byte, privateKey u256.U256) (signer.Signature, error)
}

// HSMSigner is a placeholder interface showing how HSM integration would
// look in production: wraps PKCS#11 calls or a cloud KMS (AWS CloudHSM,
// GCP Cloud KMS), signing via a key reference that never exposes the
// private key to this process.
type HSMSigner interface {
	SignHashWithHSM(ctx context.Context, hash [32]byte, keyID string) (signer.Signature, error)
}

// Wallet is the single Ethereum-only facade internal/txbuilder and
// cmd/ethctl depend on, composing a seed-derived key hierarchy
// (pkg/hdwallet) with signing (pkg/signer) and the four transaction
// envelopes (pkg/txtypes). It replaces the teacher's per-network
// Generator/Signer pair threaded through a models.Network switch with one
// type that only ever talks about Ethereum.
type Wallet struct {
	seed    []byte
	chainID uint64
	gen     *ETHGenerator
	signer  *ETHSigner
}

// NewWallet returns a Wallet deriving keys from seed and signing
// transactions for chainID.
func NewWallet(seed []byte, chainID uint64) *Wallet {
	return &Wallet{
		seed:    seed,
		chainID: chainID,
		gen:     NewETHGenerator(),
		signer:  NewETHSigner(chainID),
	}
}

// DeriveAccount derives the Ethereum address at m/44'/60'/0'/0/{index}.
func (w *Wallet) DeriveAccount(index uint32) (*models.DerivedAddress, error) {
	return w.gen.GenerateFromSeed(w.seed, index)
}

// privateKeyAt re-derives the private key at index without caching it.
func (w *Wallet) privateKeyAt(index uint32) (u256.U256, error) {
	master, err := hdwallet.NewMasterNode(w.seed)
	if err != nil {
		return u256.U256{}, fmt.Errorf("master node: %w", err)
	}
	child, err := hdwallet.DeriveEthereumKey(master, index)
	if err != nil {
		return u256.U256{}, fmt.Errorf("derive child: %w", err)
	}
	return child.Secret, nil
}

// SignTransaction signs tx with the private key at index, dispatching on
// its concrete envelope type, and returns the final RLP-encoded signed
// transaction plus its hash.
func (w *Wallet) SignTransaction(ctx context.Context, tx any, index uint32) ([]byte, [32]byte, error) {
	priv, err := w.privateKeyAt(index)
	if err != nil {
		return nil, [32]byte{}, err
	}

	switch t := tx.(type) {
	case *txtypes.LegacyTx:
		return w.signer.SignLegacyTx(ctx, t, priv)
	case *txtypes.AccessListTx:
		return w.signer.SignAccessListTx(ctx, t, priv)
	case *txtypes.DynamicFeeTx:
		return w.signer.SignDynamicFeeTx(ctx, t, priv)
	case *txtypes.BlobTx:
		return w.signer.SignBlobTx(ctx, t, priv)
	default:
		return nil, [32]byte{}, fmt.Errorf("wallet: unsupported transaction type %T", tx)
	}
}

// SignHash signs an arbitrary 32-byte digest (EIP-191/712 message hashes)
// with the private key at index.
func (w *Wallet) SignHash(ctx context.Context, hash [32]byte, index uint32) (signer.Signature, error) {
	priv, err := w.privateKeyAt(index)
	if err != nil {
		return signer.Signature{}, err
	}
	return w.signer.SignHash(ctx, hash, priv)
}
