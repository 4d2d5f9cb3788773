// Package contract pairs pkg/abi with a provider.Provider to make a
// contract call and decode its return data in one step — the "Contract"
// facade spec.md §1 names as out of scope for the core library but
// expects calling code to assemble from the core's pieces.
package contract

import (
	"context"
	"fmt"

	"github.com/ethcore-go/ethcore/internal/provider"
	"github.com/ethcore-go/ethcore/pkg/abi"
)

// Contract binds an ABI-described method set to a deployed address,
// reachable through a Provider.
type Contract struct {
	address  [20]byte
	provider provider.Provider
}

// New returns a Contract at address, calling out through p.
func New(address [20]byte, p provider.Provider) *Contract {
	return &Contract{address: address, provider: p}
}

// Call encodes a call to the method identified by canonicalSignature
// (e.g. "balanceOf(address)") with args, invokes it via the provider, and
// decodes the return data per returnTypes.
func (c *Contract) Call(ctx context.Context, canonicalSignature string, argTypes []abi.Type, args []abi.Value, returnTypes []abi.Type) ([]abi.Value, error) {
	selector := abi.Selector(canonicalSignature)

	encodedArgs, err := abi.Encode(argTypes, args)
	if err != nil {
		return nil, fmt.Errorf("contract: encode args: %w", err)
	}

	calldata := append(append([]byte{}, selector[:]...), encodedArgs...)

	result, err := c.provider.Call(ctx, c.address, calldata)
	if err != nil {
		return nil, fmt.Errorf("contract: call %s: %w", canonicalSignature, err)
	}

	decoded, err := abi.Decode(returnTypes, result)
	if err != nil {
		return nil, fmt.Errorf("contract: decode %s result: %w", canonicalSignature, err)
	}
	return decoded, nil
}
