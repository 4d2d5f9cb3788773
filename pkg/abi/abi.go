// Package abi implements Solidity Contract ABI encoding and decoding: the
// head/tail layout for static and dynamic types, function selector
// derivation, and event topic derivation (spec.md §4.7).
//
// Type and Value follow the Kind-tagged-union shape go-ethereum's
// accounts/abi.Type uses (see other_examples' signer-core-signed_data.go.go
// for the sibling EIP-712 encoder built the same way): a Kind discriminator
// plus the one set of fields valid for that Kind, rather than one
// flat record with every field always present — the redesign this
// specification calls for over a single bag-of-fields record.
package abi

import "math/big"

// Kind discriminates the ABI value variants this codec supports: the
// integer, boolean, address, fixed-bytes, dynamic-bytes, string, fixed
// array, dynamic array, and tuple families, each with its own encoding
// rule (spec.md §4.7). Solidity's fixed/ufixed types are not supported —
// no deployed contract ABI uses them.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindBool
	KindAddress
	KindFixedBytes
	KindBytes
	KindString
	KindFixedArray
	KindArray
	KindTuple
)

// Type describes a single Solidity ABI type.
type Type struct {
	Kind  Kind
	Bits  int    // bit width for KindUint/KindInt (8..256, multiple of 8)
	Size  int    // byte width for KindFixedBytes (1..32), or length for KindFixedArray
	Elem  *Type  // element type for KindFixedArray/KindArray
	Tuple []Type // component types for KindTuple
}

// IsDynamic reports whether t's encoding requires a tail slot: bytes,
// string, any array whose element is dynamic, a dynamic-length array of
// any element type, or a tuple containing a dynamic component.
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case KindBytes, KindString, KindArray:
		return true
	case KindFixedArray:
		return t.Elem.IsDynamic()
	case KindTuple:
		for _, c := range t.Tuple {
			if c.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Value is a single decoded or to-be-encoded ABI value, tagged by Kind the
// same way as Type; only the fields matching Kind are meaningful.
type Value struct {
	Kind       Kind
	Uint       *big.Int // unsigned magnitude, KindUint
	Int        *big.Int // signed value (may be negative), KindInt
	Bool       bool
	Address    [20]byte
	FixedBytes []byte // length == the Type's Size, KindFixedBytes
	Bytes      []byte // KindBytes
	Str        string // KindString
	Array      []Value
	Tuple      []Value
}

// ErrKind distinguishes the ABI error classes in spec.md §7.
type ErrKind int

const (
	ErrKindOffsetOutOfBounds ErrKind = iota
	ErrKindLengthOverrun
	ErrKindNonZeroPadding
	ErrKindTypeMismatch
)

// Error is the typed error every fallible abi operation returns.
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string { return "abi: " + e.Msg }

// Word-level helpers shared by encode.go and decode.go.
const wordSize = 32
