// Package txbuilder builds, signs, and broadcasts Ethereum transactions.
// Adapted from the teacher's internal/tx.Builder: the same idempotency
// check, nonce-store lookup, retrying broadcast and slog instrumentation,
// now driving a real provider.Provider and wallet.Wallet instead of the
// teacher's simulated Signer/broadcast and its map[models.Network]*big.Int
// fee table.
package txbuilder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethcore-go/ethcore/internal/provider"
	"github.com/ethcore-go/ethcore/internal/storage"
	"github.com/ethcore-go/ethcore/internal/wallet"
	"github.com/ethcore-go/ethcore/pkg/models"
	"github.com/ethcore-go/ethcore/pkg/txtypes"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// Config holds configurable parameters for the transaction builder.
type Config struct {
	MaxRetries       int
	ChainID          uint64
	GasTipCapDefault u256.U256
	GasFeeCapDefault u256.U256
	GasLimitDefault  uint64
}

// Builder constructs and manages an EIP-1559 dynamic-fee transaction's
// lifecycle: nonce assignment, fee defaults, signing, idempotent
// broadcast-with-retry. Kept to a single envelope (DynamicFeeTx) since
// that's the envelope every modern wallet defaults to; legacy/2930/blob
// callers sign directly through wallet.Wallet.SignTransaction instead of
// through this convenience layer.
type Builder struct {
	provider   provider.Provider
	w          *wallet.Wallet
	nonceStore storage.NonceStore
	txStore    storage.TxStore
	logger     *slog.Logger
	cfg        Config
}

// NewBuilder creates a new transaction builder.
func NewBuilder(cfg Config, p provider.Provider, w *wallet.Wallet, nonces storage.NonceStore, txs storage.TxStore) *Builder {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.GasLimitDefault == 0 {
		cfg.GasLimitDefault = 21_000
	}
	return &Builder{
		provider:   p,
		w:          w,
		nonceStore: nonces,
		txStore:    txs,
		logger:     slog.Default().With("component", "tx_builder"),
		cfg:        cfg,
	}
}

// SendRequest represents a request to send a value transfer or contract
// call from the account at KeyIndex.
type SendRequest struct {
	IdempotencyKey string // prevents duplicate sends
	KeyIndex       uint32
	From           [20]byte
	To             *[20]byte
	Amount         u256.U256
	Data           []byte
	GasLimit       uint64
}

// Send builds, signs, and broadcasts a dynamic-fee transaction with
// idempotency, mirroring the teacher's Builder.Send shape.
func (b *Builder) Send(ctx context.Context, req SendRequest) (*models.PendingTransaction, error) {
	existing, err := b.txStore.Get(req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("tx store get: %w", err)
	}
	if existing != nil {
		b.logger.Info("duplicate request, returning existing tx",
			"idempotency_key", req.IdempotencyKey,
			"tx_hash", existing.TxHash,
		)
		return existing, nil
	}

	nonce, err := b.nonceStore.GetAndIncrement(req.From)
	if err != nil {
		return nil, fmt.Errorf("nonce store: %w", err)
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit = b.cfg.GasLimitDefault
	}

	tx := &txtypes.DynamicFeeTx{
		ChainID:   b.cfg.ChainID,
		Nonce:     nonce,
		GasTipCap: b.cfg.GasTipCapDefault,
		GasFeeCap: b.cfg.GasFeeCapDefault,
		Gas:       gasLimit,
		To:        req.To,
		Value:     req.Amount,
		Data:      req.Data,
	}

	b.logger.Info("building transaction",
		"from", req.From,
		"to", req.To,
		"amount", req.Amount,
		"nonce", nonce,
	)

	raw, hash, err := b.w.SignTransaction(ctx, tx, req.KeyIndex)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}

	pending := &models.PendingTransaction{
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
		Nonce:     nonce,
		Data:      req.Data,
		Signed:    true,
		TxHash:    hash,
		RawSigned: raw,
	}

	if err := b.broadcastWithRetry(ctx, pending, b.cfg.MaxRetries); err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}

	if err := b.txStore.Put(req.IdempotencyKey, pending); err != nil {
		return nil, fmt.Errorf("tx store put: %w", err)
	}

	return pending, nil
}

func (b *Builder) broadcastWithRetry(ctx context.Context, tx *models.PendingTransaction, maxRetries int) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		_, err := b.provider.SendRawTransaction(ctx, tx.RawSigned)
		if err == nil {
			b.logger.Info("transaction broadcast successful",
				"tx_hash", tx.TxHash,
				"attempt", attempt,
			)
			return nil
		}

		lastErr = err
		b.logger.Warn("broadcast attempt failed",
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		select {
		case <-time.After(time.Duration(attempt*attempt) * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("all %d broadcast attempts failed: %w", maxRetries, lastErr)
}
