package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethcore-go/ethcore/pkg/hexutil"
)

// HTTPProvider implements Provider over a plain JSON-RPC HTTP endpoint
// using only net/http and encoding/json, the same way the teacher's
// internal/tx.Builder.broadcast would talk to a node if it weren't
// simulated.
type HTTPProvider struct {
	endpoint string
	client   *http.Client
	nextID   int
}

// NewHTTPProvider returns an HTTPProvider dialing endpoint, using client
// if non-nil or http.DefaultClient otherwise.
func NewHTTPProvider(endpoint string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{endpoint: endpoint, client: client}
}

func (p *HTTPProvider) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	p.nextID++
	req := rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: p.nextID}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("provider: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("provider: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider: %s: %w", method, err)
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("provider: decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("provider: %s: %w", method, rpcResp.Error)
	}

	raw, ok := rpcResp.Result.(json.RawMessage)
	if ok {
		return raw, nil
	}
	// Result was already unmarshaled into an any (string/number/etc); round
	// trip it back through json so callers can unmarshal into a concrete type.
	return json.Marshal(rpcResp.Result)
}

func (p *HTTPProvider) Call(ctx context.Context, to [20]byte, calldata []byte) ([]byte, error) {
	params := []any{
		map[string]string{"to": hexutil.Encode(to[:]), "data": hexutil.Encode(calldata)},
		"latest",
	}
	raw, err := p.call(ctx, "eth_call", params)
	if err != nil {
		return nil, err
	}
	var hexResult string
	if err := json.Unmarshal(raw, &hexResult); err != nil {
		return nil, fmt.Errorf("provider: eth_call result: %w", err)
	}
	return hexutil.Decode(hexResult)
}

func (p *HTTPProvider) SendRawTransaction(ctx context.Context, raw []byte) ([32]byte, error) {
	result, err := p.call(ctx, "eth_sendRawTransaction", []any{hexutil.Encode(raw)})
	if err != nil {
		return [32]byte{}, err
	}
	var hexHash string
	if err := json.Unmarshal(result, &hexHash); err != nil {
		return [32]byte{}, fmt.Errorf("provider: eth_sendRawTransaction result: %w", err)
	}
	hashBytes, err := hexutil.DecodeFixed(hexHash, 32)
	if err != nil {
		return [32]byte{}, fmt.Errorf("provider: tx hash: %w", err)
	}
	var hash [32]byte
	copy(hash[:], hashBytes)
	return hash, nil
}

func (p *HTTPProvider) NonceAt(ctx context.Context, address [20]byte) (uint64, error) {
	raw, err := p.call(ctx, "eth_getTransactionCount", []any{hexutil.Encode(address[:]), "pending"})
	if err != nil {
		return 0, err
	}
	return decodeQuantityResult(raw)
}

func (p *HTTPProvider) ChainID(ctx context.Context) (uint64, error) {
	raw, err := p.call(ctx, "eth_chainId", []any{})
	if err != nil {
		return 0, err
	}
	return decodeQuantityResult(raw)
}

func (p *HTTPProvider) SuggestGasTipCap(ctx context.Context) (uint64, error) {
	raw, err := p.call(ctx, "eth_maxPriorityFeePerGas", []any{})
	if err != nil {
		return 0, err
	}
	return decodeQuantityResult(raw)
}

func decodeQuantityResult(raw json.RawMessage) (uint64, error) {
	var hexQuantity string
	if err := json.Unmarshal(raw, &hexQuantity); err != nil {
		return 0, fmt.Errorf("provider: quantity result: %w", err)
	}
	return hexutil.DecodeQuantity(hexQuantity)
}
