// Package ens resolves ENS names to addresses as a pure composition of
// pkg/abi (the resolver's ABI), pkg/keccak (the EIP-137 namehash
// algorithm), and a provider.Provider — exactly the assembly spec.md §1
// describes ENS support as, with no code of its own inside pkg/*.
package ens

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethcore-go/ethcore/internal/contract"
	"github.com/ethcore-go/ethcore/internal/provider"
	"github.com/ethcore-go/ethcore/pkg/abi"
	"github.com/ethcore-go/ethcore/pkg/keccak"
)

// Namehash computes the EIP-137 namehash of a dotted ENS name ("foo.eth"),
// recursively hashing labels from the root outward.
func Namehash(name string) [32]byte {
	var node [32]byte // the empty node, all zero
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := keccak.Hash256([]byte(labels[i]))
		node = keccak.Hash256(append(append([]byte{}, node[:]...), labelHash[:]...))
	}
	return node
}

// addressType is the sole return type of a resolver's addr(bytes32) call.
var addressType = abi.Type{Kind: abi.KindAddress}

// bytes32Type describes namehash arguments.
var bytes32Type = abi.Type{Kind: abi.KindFixedBytes, Size: 32}

// Resolver resolves ENS names to Ethereum addresses via a public resolver
// contract reachable through a Provider.
type Resolver struct {
	resolver *contract.Contract
}

// NewResolver returns a Resolver that calls the resolver contract at
// resolverAddress through p.
func NewResolver(resolverAddress [20]byte, p provider.Provider) *Resolver {
	return &Resolver{resolver: contract.New(resolverAddress, p)}
}

// Resolve looks up the address a resolver's addr(bytes32) record returns
// for name, per the ENS public resolver ABI.
func (r *Resolver) Resolve(ctx context.Context, name string) ([20]byte, error) {
	node := Namehash(name)

	results, err := r.resolver.Call(
		ctx,
		"addr(bytes32)",
		[]abi.Type{bytes32Type},
		[]abi.Value{{Kind: abi.KindFixedBytes, FixedBytes: node[:]}},
		[]abi.Type{addressType},
	)
	if err != nil {
		return [20]byte{}, fmt.Errorf("ens: resolve %s: %w", name, err)
	}
	if len(results) != 1 {
		return [20]byte{}, fmt.Errorf("ens: resolve %s: unexpected result count %d", name, len(results))
	}
	return results[0].Address, nil
}
