package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ethcore-go/ethcore/pkg/hexutil"
)

// WSProvider implements Provider over a persistent JSON-RPC WebSocket
// connection, adapted from the dial/Subscribe/listen shape of
// gipsh-polymarket-bot-go's internal/ws.UserClient, and from
// internal/listener.PollingListener for the context-cancellation and slog
// conventions. Unlike HTTPProvider it can also push subscription
// notifications (eth_subscribe "newHeads") to a caller-supplied
// channel.
type WSProvider struct {
	conn   *websocket.Conn
	logger *slog.Logger

	mu      sync.Mutex
	nextID  int
	pending map[int]chan rpcResponse
	subs    map[string]chan json.RawMessage
}

// DialWS opens a WebSocket JSON-RPC connection to endpoint (a "ws://" or
// "wss://" URL) and starts its read loop.
func DialWS(ctx context.Context, endpoint string) (*WSProvider, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("provider: dial %s: %w", endpoint, err)
	}

	p := &WSProvider{
		conn:    conn,
		logger:  slog.Default().With("component", "ws_provider"),
		pending: make(map[int]chan rpcResponse),
		subs:    make(map[string]chan json.RawMessage),
	}
	go p.readLoop()
	return p, nil
}

// Close terminates the underlying connection.
func (p *WSProvider) Close() error {
	return p.conn.Close()
}

// wsFrame is a superset of rpcResponse that also matches an unsolicited
// eth_subscription push: those carry "method"/"params" instead of
// "id"/"result" and never match a pending call.
type wsFrame struct {
	rpcResponse
	Method string            `json:"method"`
	Params *subscriptionPush `json:"params"`
}

// subscriptionPush is the params payload of an eth_subscription
// notification: the subscription id returned by eth_subscribe, and the
// raw per-event payload (a block header for "newHeads").
type subscriptionPush struct {
	Subscription string          `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

func (p *WSProvider) readLoop() {
	for {
		var frame wsFrame
		if err := p.conn.ReadJSON(&frame); err != nil {
			p.logger.Warn("ws read loop exiting", "error", err)
			p.failAllPending(err)
			p.closeAllSubscriptions()
			return
		}

		if frame.Method == "eth_subscription" && frame.Params != nil {
			p.routeNotification(frame.Params)
			continue
		}

		p.mu.Lock()
		ch, ok := p.pending[frame.ID]
		if ok {
			delete(p.pending, frame.ID)
		}
		p.mu.Unlock()

		if ok {
			ch <- frame.rpcResponse
		}
	}
}

// routeNotification delivers an eth_subscription push to the channel
// SubscribeNewHeads returned for its subscription id, dropping it with a
// warning if the consumer isn't keeping up or the subscription is unknown
// (already unsubscribed, or a subscription kind this provider doesn't
// track).
func (p *WSProvider) routeNotification(push *subscriptionPush) {
	p.mu.Lock()
	ch, ok := p.subs[push.Subscription]
	p.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- push.Result:
	default:
		p.logger.Warn("dropping subscription notification: consumer not keeping up",
			"subscription", push.Subscription)
	}
}

func (p *WSProvider) failAllPending(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, ch := range p.pending {
		ch <- rpcResponse{ID: id, Error: &rpcError{Code: -32000, Message: err.Error()}}
		delete(p.pending, id)
	}
}

func (p *WSProvider) closeAllSubscriptions() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, ch := range p.subs {
		close(ch)
		delete(p.subs, id)
	}
}

func (p *WSProvider) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	ch := make(chan rpcResponse, 1)
	p.pending[id] = ch
	p.mu.Unlock()

	req := rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: id}
	if err := p.conn.WriteJSON(req); err != nil {
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()
		return nil, fmt.Errorf("provider: write %s: %w", method, err)
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return nil, fmt.Errorf("provider: %s: %w", method, resp.Error)
		}
		raw, ok := resp.Result.(json.RawMessage)
		if ok {
			return raw, nil
		}
		return json.Marshal(resp.Result)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *WSProvider) Call(ctx context.Context, to [20]byte, calldata []byte) ([]byte, error) {
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

func (p *WSProvider) SendRawTransaction(ctx context.Context, raw []byte) ([32]byte, error) {
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

func (p *WSProvider) NonceAt(ctx context.Context, address [20]byte) (uint64, error) {
	raw, err := p.call(ctx, "eth_getTransactionCount", []any{hexutil.Encode(address[:]), "pending"})
	if err != nil {
		return 0, err
	}
	return decodeQuantityResult(raw)
}

func (p *WSProvider) ChainID(ctx context.Context) (uint64, error) {
	raw, err := p.call(ctx, "eth_chainId", []any{})
	if err != nil {
		return 0, err
	}
	return decodeQuantityResult(raw)
}

func (p *WSProvider) SuggestGasTipCap(ctx context.Context) (uint64, error) {
	raw, err := p.call(ctx, "eth_maxPriorityFeePerGas", []any{})
	if err != nil {
		return 0, err
	}
	return decodeQuantityResult(raw)
}

// SubscribeNewHeads opens an eth_subscribe("newHeads") subscription and
// returns a channel of raw block-header JSON payloads. readLoop demuxes
// eth_subscription notifications by their params.subscription id and
// forwards the matching ones to the channel registered here; the channel
// is closed when the connection drops or UnsubscribeNewHeads is called.
func (p *WSProvider) SubscribeNewHeads(ctx context.Context) (<-chan json.RawMessage, error) {
	raw, err := p.call(ctx, "eth_subscribe", []any{"newHeads"})
	if err != nil {
		return nil, err
	}
	var subID string
	if err := json.Unmarshal(raw, &subID); err != nil {
		return nil, fmt.Errorf("provider: subscription id: %w", err)
	}

	out := make(chan json.RawMessage, 16)
	p.mu.Lock()
	p.subs[subID] = out
	p.mu.Unlock()
	p.logger.Info("subscribed to newHeads", "subscription", subID)
	return out, nil
}

// UnsubscribeNewHeads sends eth_unsubscribe for subID and closes its
// notification channel. subID is the value logged by SubscribeNewHeads.
func (p *WSProvider) UnsubscribeNewHeads(ctx context.Context, subID string) error {
	p.mu.Lock()
	ch, ok := p.subs[subID]
	delete(p.subs, subID)
	p.mu.Unlock()
	if ok {
		close(ch)
	}
	_, err := p.call(ctx, "eth_unsubscribe", []any{subID})
	return err
}
