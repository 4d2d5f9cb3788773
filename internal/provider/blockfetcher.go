package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethcore-go/ethcore/internal/listener"
	"github.com/ethcore-go/ethcore/pkg/hexutil"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// rpcCaller is satisfied by HTTPProvider and WSProvider's unexported call
// method. Because the method is unexported, only types declared in this
// package can implement it, so a *BlockFetcher built from an rpcCaller is
// guaranteed to reuse one of this package's own transports rather than
// some unrelated Provider implementation.
type rpcCaller interface {
	call(ctx context.Context, method string, params []any) (json.RawMessage, error)
}

// BlockFetcher adapts a dialed HTTPProvider/WSProvider to
// internal/listener.BlockFetcher by calling eth_blockNumber and
// eth_getBlockByNumber(..., true) directly: listener needs full
// transaction objects (hash/from/to/value) per block, which the
// hash-only rpctypes.Block used by Provider.Call's callers doesn't carry.
type BlockFetcher struct {
	caller rpcCaller
}

// NewBlockFetcher returns a BlockFetcher that issues block-fetching RPCs
// over p's existing connection. p must be an *HTTPProvider or a
// *WSProvider (the only types in this package that implement rpcCaller).
func NewBlockFetcher(p Provider) (*BlockFetcher, error) {
	caller, ok := p.(rpcCaller)
	if !ok {
		return nil, fmt.Errorf("provider: %T cannot back a block fetcher", p)
	}
	return &BlockFetcher{caller: caller}, nil
}

// LatestBlockNumber implements listener.BlockFetcher.
func (f *BlockFetcher) LatestBlockNumber(ctx context.Context) (uint64, error) {
	raw, err := f.caller.call(ctx, "eth_blockNumber", []any{})
	if err != nil {
		return 0, err
	}
	return decodeQuantityResult(raw)
}

type rpcBlockTx struct {
	Hash  string `json:"hash"`
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

type rpcBlock struct {
	Hash         string       `json:"hash"`
	Transactions []rpcBlockTx `json:"transactions"`
}

// GetBlock implements listener.BlockFetcher.
func (f *BlockFetcher) GetBlock(ctx context.Context, number uint64) (*listener.BlockData, error) {
	raw, err := f.caller.call(ctx, "eth_getBlockByNumber", []any{hexutil.EncodeQuantity(number), true})
	if err != nil {
		return nil, err
	}

	var blk rpcBlock
	if err := json.Unmarshal(raw, &blk); err != nil {
		return nil, fmt.Errorf("provider: decode block %d: %w", number, err)
	}

	hashBytes, err := hexutil.DecodeFixed(blk.Hash, 32)
	if err != nil {
		return nil, fmt.Errorf("provider: block %d hash: %w", number, err)
	}
	data := &listener.BlockData{Number: number}
	copy(data.Hash[:], hashBytes)

	for _, tx := range blk.Transactions {
		bt, err := decodeBlockTx(tx)
		if err != nil {
			return nil, fmt.Errorf("provider: block %d tx %s: %w", number, tx.Hash, err)
		}
		data.Txs = append(data.Txs, bt)
	}
	return data, nil
}

func decodeBlockTx(tx rpcBlockTx) (listener.BlockTx, error) {
	var out listener.BlockTx

	hashBytes, err := hexutil.DecodeFixed(tx.Hash, 32)
	if err != nil {
		return out, fmt.Errorf("hash: %w", err)
	}
	copy(out.Hash[:], hashBytes)

	fromBytes, err := hexutil.DecodeFixed(tx.From, 20)
	if err != nil {
		return out, fmt.Errorf("from: %w", err)
	}
	copy(out.From[:], fromBytes)

	// "to" is the JSON null literal on contract-creation transactions;
	// json.Unmarshal leaves tx.To at its zero value ("") for those, which
	// we carry through as the zero address.
	if tx.To != "" {
		toBytes, err := hexutil.DecodeFixed(tx.To, 20)
		if err != nil {
			return out, fmt.Errorf("to: %w", err)
		}
		copy(out.To[:], toBytes)
	}

	amount, err := parseQuantityU256(tx.Value)
	if err != nil {
		return out, fmt.Errorf("value: %w", err)
	}
	out.Amount = amount

	return out, nil
}

// parseQuantityU256 parses a JSON-RPC quantity string (minimal-nibble
// hex, e.g. "0x3e8") into a U256. hexutil.Decode can't be reused directly
// since quantities, unlike byte strings, are not padded to even length.
func parseQuantityU256(s string) (u256.U256, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return u256.U256{}, hexutil.ErrInvalidHex
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return u256.U256{}, hexutil.ErrInvalidHex
	}
	return u256.FromBig(n), nil
}
