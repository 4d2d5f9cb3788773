// Package provider defines the narrow JSON-RPC transport contract
// internal/txbuilder, internal/contract, and internal/ens depend on, and
// two concrete implementations of it: HTTPProvider (net/http) and
// WSProvider (gorilla/websocket, subscription-capable).
//
// The request/response envelope is grounded in popsigner's
// internal/handler/jsonrpc/types.go (Request/Response/Error shape, the
// same -32000-range Ethereum error codes), mirrored here for the client
// side of the same protocol instead of the server side popsigner
// implements. Quantity/hex marshaling follows spec.md §6.
package provider

import "context"

// Provider is the single abstraction internal/txbuilder, internal/contract
// and internal/ens need from a live Ethereum node: read a contract's
// return data, look up account/chain state, and publish a signed
// transaction. Everything else (subscriptions, batching) is an
// implementation detail of the concrete Provider.
type Provider interface {
	// Call performs an eth_call against to with calldata at the latest
	// block and returns the raw return data.
	Call(ctx context.Context, to [20]byte, calldata []byte) ([]byte, error)

	// SendRawTransaction submits a signed, RLP-encoded transaction via
	// eth_sendRawTransaction and returns its hash.
	SendRawTransaction(ctx context.Context, raw []byte) ([32]byte, error)

	// NonceAt returns the next nonce for address via
	// eth_getTransactionCount(address, "pending").
	NonceAt(ctx context.Context, address [20]byte) (uint64, error)

	// ChainID returns the chain id advertised by the node.
	ChainID(ctx context.Context) (uint64, error)

	// SuggestGasTipCap returns the node's suggested EIP-1559 priority fee
	// via eth_maxPriorityFeePerGas.
	SuggestGasTipCap(ctx context.Context) (uint64, error)
}

// rpcRequest is the JSON-RPC 2.0 request envelope, shaped after
// popsigner's jsonrpc.Request.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

// rpcResponse is the JSON-RPC 2.0 response envelope, shaped after
// popsigner's jsonrpc.Response.
type rpcResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	Result  any           `json:"result,omitempty"`
	Error   *rpcError     `json:"error,omitempty"`
	ID      int           `json:"id"`
}

// rpcError mirrors popsigner's jsonrpc.Error shape.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return e.Message }
