package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethcore-go/ethcore/internal/provider"
)

func rpcServer(t *testing.T, handler func(method string, params []any) (any, *jsonRPCError)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JSONRPC string `json:"jsonrpc"`
			Method  string `json:"method"`
			Params  []any  `json:"params"`
			ID      int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		result, rpcErr := handler(req.Method, req.Params)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func TestHTTPProviderChainID(t *testing.T) {
	srv := rpcServer(t, func(method string, params []any) (any, *jsonRPCError) {
		if method != "eth_chainId" {
			t.Fatalf("unexpected method %q", method)
		}
		return "0x1", nil
	})
	defer srv.Close()

	p := provider.NewHTTPProvider(srv.URL, nil)
	got, err := p.ChainID(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("ChainID = %d, want 1", got)
	}
}

func TestHTTPProviderNonceAt(t *testing.T) {
	srv := rpcServer(t, func(method string, params []any) (any, *jsonRPCError) {
		if method != "eth_getTransactionCount" {
			t.Fatalf("unexpected method %q", method)
		}
		if len(params) != 2 || params[1] != "pending" {
			t.Fatalf("unexpected params %+v", params)
		}
		return "0x5", nil
	})
	defer srv.Close()

	p := provider.NewHTTPProvider(srv.URL, nil)
	got, err := p.NonceAt(context.Background(), [20]byte{0x01})
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Fatalf("NonceAt = %d, want 5", got)
	}
}

func TestHTTPProviderCall(t *testing.T) {
	srv := rpcServer(t, func(method string, params []any) (any, *jsonRPCError) {
		if method != "eth_call" {
			t.Fatalf("unexpected method %q", method)
		}
		return "0xdeadbeef", nil
	})
	defer srv.Close()

	p := provider.NewHTTPProvider(srv.URL, nil)
	got, err := p.Call(context.Background(), [20]byte{0x01}, []byte{0x01, 0x02})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	if len(got) != len(want) {
		t.Fatalf("Call result = %x, want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Call result = %x, want %x", got, want)
		}
	}
}

func TestHTTPProviderSendRawTransaction(t *testing.T) {
	wantHash := "0xab" + strings.Repeat("00", 31)
	srv := rpcServer(t, func(method string, params []any) (any, *jsonRPCError) {
		if method != "eth_sendRawTransaction" {
			t.Fatalf("unexpected method %q", method)
		}
		return wantHash, nil
	})
	defer srv.Close()

	p := provider.NewHTTPProvider(srv.URL, nil)
	got, err := p.SendRawTransaction(context.Background(), []byte{0xaa, 0xbb})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0xab {
		t.Fatalf("tx hash = %x, want first byte 0xab", got)
	}
}

func TestHTTPProviderPropagatesRPCError(t *testing.T) {
	srv := rpcServer(t, func(method string, params []any) (any, *jsonRPCError) {
		return nil, &jsonRPCError{Code: -32000, Message: "execution reverted"}
	})
	defer srv.Close()

	p := provider.NewHTTPProvider(srv.URL, nil)
	_, err := p.ChainID(context.Background())
	if err == nil {
		t.Fatal("expected an error from the RPC error response")
	}
}
