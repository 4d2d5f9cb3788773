package wallet

import (
	"context"
	"fmt"

	"github.com/ethcore-go/ethcore/pkg/hdwallet"
	"github.com/ethcore-go/ethcore/pkg/hexutil"
	"github.com/ethcore-go/ethcore/pkg/models"
	"github.com/ethcore-go/ethcore/pkg/signer"
	"github.com/ethcore-go/ethcore/pkg/txtypes"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// ETHGenerator generates Ethereum addresses using BIP-44 derivation:
// m/44'/60'/0'/0/{index}.
type ETHGenerator struct{}

// NewETHGenerator returns a new Ethereum address generator.
func NewETHGenerator() *ETHGenerator {
	return &ETHGenerator{}
}

// GenerateFromSeed derives an Ethereum address from a BIP-39 seed.
func (g *ETHGenerator) GenerateFromSeed(seed []byte, index uint32) (*models.DerivedAddress, error) {
	master, err := hdwallet.NewMasterNode(seed)
	if err != nil {
		return nil, fmt.Errorf("master node: %w", err)
	}
	child, err := hdwallet.DeriveEthereumKey(master, index)
	if err != nil {
		return nil, fmt.Errorf("derive child: %w", err)
	}

	pub := child.PublicKey()
	addr := signer.AddressFromPublicKey(pub)

	x := pub.X.BytesBE()
	y := pub.Y.BytesBE()
	uncompressed := append([]byte{0x04}, append(append([]byte{}, x[:]...), y[:]...)...)

	return &models.DerivedAddress{
		Address:        addr,
		DerivationPath: fmt.Sprintf("m/44'/60'/0'/0/%d", index),
		PublicKeyHex:   hexutil.Encode(uncompressed),
	}, nil
}

// ETHSigner signs Ethereum transactions across all four envelopes. In
// production, SignHash would delegate to an HSM instead of taking the
// private key directly (see HSMSigner).
type ETHSigner struct {
	chainID uint64
}

// NewETHSigner returns a new Ethereum transaction signer bound to chainID.
func NewETHSigner(chainID uint64) *ETHSigner {
	return &ETHSigner{chainID: chainID}
}

// SignHash implements HashSigner.
func (s *ETHSigner) SignHash(ctx context.Context, hash [32]byte, privateKey u256.U256) (signer.Signature, error) {
	return signer.Sign(privateKey, hash)
}

// SignLegacyTx signs a legacy transaction under EIP-155 (or in the
// pre-EIP-155 form when the signer's chain id is 0), returning its final
// RLP-encoded form and transaction hash.
func (s *ETHSigner) SignLegacyTx(ctx context.Context, tx *txtypes.LegacyTx, privateKey u256.U256) ([]byte, [32]byte, error) {
	h := tx.SigningHash(s.chainID)
	sig, err := signer.Sign(privateKey, h)
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("sign: %w", err)
	}
	return tx.EncodeSigned(sig, s.chainID), tx.Hash(sig, s.chainID), nil
}

// SignAccessListTx signs an EIP-2930 transaction.
func (s *ETHSigner) SignAccessListTx(ctx context.Context, tx *txtypes.AccessListTx, privateKey u256.U256) ([]byte, [32]byte, error) {
	sig, err := signer.Sign(privateKey, tx.SigningHash())
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("sign: %w", err)
	}
	return tx.EncodeSigned(sig), tx.Hash(sig), nil
}

// SignDynamicFeeTx signs an EIP-1559 transaction.
func (s *ETHSigner) SignDynamicFeeTx(ctx context.Context, tx *txtypes.DynamicFeeTx, privateKey u256.U256) ([]byte, [32]byte, error) {
	sig, err := signer.Sign(privateKey, tx.SigningHash())
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("sign: %w", err)
	}
	return tx.EncodeSigned(sig), tx.Hash(sig), nil
}

// SignBlobTx signs an EIP-4844 blob-carrying transaction.
func (s *ETHSigner) SignBlobTx(ctx context.Context, tx *txtypes.BlobTx, privateKey u256.U256) ([]byte, [32]byte, error) {
	sig, err := signer.Sign(privateKey, tx.SigningHash())
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("sign: %w", err)
	}
	return tx.EncodeSigned(sig), tx.Hash(sig), nil
}
