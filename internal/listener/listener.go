// Package listener watches Ethereum addresses for incoming and outgoing
// transactions by polling block data, tracking confirmations and chain reorgs.
// Adapted from the teacher's internal/listener/listener.go: the
// per-network Manager/BlockListener map keyed by models.Network is gone
// (this repo only ever targets one chain), and addresses/amounts are now
// [20]byte/u256.U256 instead of strings and *big.Int.
package listener

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethcore-go/ethcore/internal/storage"
	"github.com/ethcore-go/ethcore/pkg/models"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// EventHandler processes detected blockchain events.
// In production: update balances, send notifications, trigger webhooks.
type EventHandler func(event models.BlockEvent) error

// BlockData represents the data returned by a block fetcher.
type BlockData struct {
	Number uint64
	Hash   [32]byte
	Txs    []BlockTx
}

// BlockTx represents a transaction within a block.
type BlockTx struct {
	Hash   [32]byte
	From   [20]byte
	To     [20]byte
	Amount u256.U256
}

// BlockFetcher abstracts the chain RPC calls for block data, implemented
// in production by internal/provider.Provider-backed adapters wrapping
// eth_blockNumber + eth_getBlockByNumber.
type BlockFetcher interface {
	// LatestBlockNumber returns the current chain head.
	LatestBlockNumber(ctx context.Context) (uint64, error)
	// GetBlock returns block data (hash + transactions) by block number.
	GetBlock(ctx context.Context, number uint64) (*BlockData, error)
}

// PollingConfig holds configuration for the polling listener.
type PollingConfig struct {
	ConfirmationDepth uint64 // blocks required before marking tx as confirmed
}

// PollingListener watches addresses for transactions using periodic block
// polling, tracking block hashes to detect chain reorganizations.
type PollingListener struct {
	pollInterval time.Duration
	events       chan models.BlockEvent
	watchStore   storage.WatchStore
	fetcher      BlockFetcher
	cfg          PollingConfig
	lastBlock    uint64
	// blockHashes tracks recent block number -> hash for reorg detection.
	// Kept for the last confirmationDepth+1 blocks.
	blockHashes map[uint64][32]byte
	// pendingEvents stores unconfirmed events keyed by block number for reorg rollback.
	pendingEvents map[uint64][]models.BlockEvent
	logger        *slog.Logger
	cancel        context.CancelFunc
	done          chan struct{}
}

// NewPollingListener returns a listener polling fetcher every pollInterval,
// matching transactions against ws's watch set.
func NewPollingListener(pollInterval time.Duration, ws storage.WatchStore, fetcher BlockFetcher, cfg PollingConfig) *PollingListener {
	if cfg.ConfirmationDepth == 0 {
		cfg.ConfirmationDepth = 12
	}
	return &PollingListener{
		pollInterval:  pollInterval,
		events:        make(chan models.BlockEvent, 100),
		watchStore:    ws,
		fetcher:       fetcher,
		cfg:           cfg,
		blockHashes:   make(map[uint64][32]byte),
		pendingEvents: make(map[uint64][]models.BlockEvent),
		done:          make(chan struct{}),
		logger:        slog.Default().With("component", "listener"),
	}
}

// Start begins listening for transactions to or from watched addresses.
func (l *PollingListener) Start(ctx context.Context) error {
	ctx, l.cancel = context.WithCancel(ctx)

	l.logger.Info("starting block listener",
		"poll_interval", l.pollInterval,
		"confirmation_depth", l.cfg.ConfirmationDepth,
	)

	go l.pollLoop(ctx)
	return nil
}

// Stop gracefully shuts down the listener.
func (l *PollingListener) Stop() error {
	if l.cancel != nil {
		l.cancel()
	}
	<-l.done // wait for pollLoop to exit
	close(l.events)
	l.logger.Info("listener stopped")
	return nil
}

// WatchAddress adds an address to the watch list.
func (l *PollingListener) WatchAddress(address [20]byte) error {
	if err := l.watchStore.Add(address); err != nil {
		return err
	}
	l.logger.Info("watching address", "address", address)
	return nil
}

// UnwatchAddress removes an address from the watch list.
func (l *PollingListener) UnwatchAddress(address [20]byte) error {
	if err := l.watchStore.Remove(address); err != nil {
		return err
	}
	l.logger.Info("unwatched address", "address", address)
	return nil
}

// Events returns a channel of detected block events.
func (l *PollingListener) Events() <-chan models.BlockEvent {
	return l.events
}

func (l *PollingListener) pollLoop(ctx context.Context) {
	defer close(l.done)
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.poll(ctx); err != nil {
				l.logger.Error("poll failed", "error", err)
			}
		}
	}
}

func (l *PollingListener) poll(ctx context.Context) error {
	latest, err := l.fetcher.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("latest block: %w", err)
	}

	// Process all blocks from lastBlock+1 to latest
	for num := l.lastBlock + 1; num <= latest; num++ {
		if err := l.processBlock(ctx, num); err != nil {
			return fmt.Errorf("process block %d: %w", num, err)
		}
	}

	// Check for newly confirmed events
	l.checkConfirmations(ctx, latest)

	return nil
}

func (l *PollingListener) processBlock(ctx context.Context, number uint64) error {
	block, err := l.fetcher.GetBlock(ctx, number)
	if err != nil {
		return fmt.Errorf("get block: %w", err)
	}

	// Reorg detection: check if stored hash differs from what we just fetched
	if prevHash, ok := l.blockHashes[number]; ok && prevHash != block.Hash {
		l.logger.Warn("chain reorganization detected",
			"block", number,
			"old_hash", prevHash,
			"new_hash", block.Hash,
		)
		// Invalidate all pending events from this block onward.
		// Use the highest block we have hashes for as upper bound.
		var maxStored uint64
		for bn := range l.blockHashes {
			if bn > maxStored {
				maxStored = bn
			}
		}
		l.handleReorg(ctx, number, maxStored)
	}

	// Store this block's hash
	l.blockHashes[number] = block.Hash
	l.lastBlock = number

	// Prune old block hashes beyond confirmation window
	if number > l.cfg.ConfirmationDepth+1 {
		delete(l.blockHashes, number-l.cfg.ConfirmationDepth-1)
	}

	// Match transactions against watched addresses
	addrs, err := l.watchStore.List()
	if err != nil {
		return fmt.Errorf("list watched: %w", err)
	}
	addrSet := make(map[[20]byte]bool, len(addrs))
	for _, a := range addrs {
		addrSet[a] = true
	}

	for _, tx := range block.Txs {
		if addrSet[tx.To] || addrSet[tx.From] {
			event := models.BlockEvent{
				BlockNumber: number,
				TxHash:      tx.Hash,
				From:        tx.From,
				To:          tx.To,
				Amount:      tx.Amount,
				Confirmed:   false,
			}

			l.pendingEvents[number] = append(l.pendingEvents[number], event)

			l.logger.Info("detected transaction",
				"block", number,
				"tx", tx.Hash,
				"to", tx.To,
				"confirmed", false,
			)

			select {
			case l.events <- event:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return nil
}

// handleReorg emits Reorged=true events for all pending events from reorgBlock to upTo,
// then removes them from pendingEvents so re-processing can produce fresh events.
func (l *PollingListener) handleReorg(ctx context.Context, reorgBlock uint64, upTo uint64) {
	for blockNum := reorgBlock; blockNum <= upTo; blockNum++ {
		events, ok := l.pendingEvents[blockNum]
		if !ok {
			continue
		}
		for _, ev := range events {
			ev.Reorged = true
			ev.Confirmed = false
			l.logger.Warn("reorg: invalidating event",
				"block", ev.BlockNumber,
				"tx", ev.TxHash,
			)
			select {
			case l.events <- ev:
			case <-ctx.Done():
				return
			}
		}
		delete(l.pendingEvents, blockNum)
		delete(l.blockHashes, blockNum)
	}
}

// checkConfirmations promotes pending events to confirmed once they have enough depth.
func (l *PollingListener) checkConfirmations(ctx context.Context, currentBlock uint64) {
	for blockNum, events := range l.pendingEvents {
		if currentBlock >= blockNum+l.cfg.ConfirmationDepth {
			for _, ev := range events {
				ev.Confirmed = true
				l.logger.Info("transaction confirmed",
					"block", ev.BlockNumber,
					"tx", ev.TxHash,
					"depth", currentBlock-blockNum,
				)
				select {
				case l.events <- ev:
				case <-ctx.Done():
					return
				}
			}
			delete(l.pendingEvents, blockNum)
		}
	}
}
