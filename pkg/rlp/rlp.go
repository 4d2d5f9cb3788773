// Package rlp implements Recursive-Length-Prefix encoding, Ethereum's
// canonical serialization for tree-shaped byte data (spec.md §4.4).
//
// Grounded on the hand-rolled list/string RLP walkers in
// hiero-ledger-hiero-hederium's internal/util/rlp.go and
// lukepuplett-evoq-ethereum's RLP encoder example, both pack members that
// implement this exact codec from scratch rather than importing an engine.
package rlp

import (
	"errors"
	"fmt"
)

// Kind distinguishes the RLP error classes in spec.md §7.
type Kind int

const (
	KindTruncated Kind = iota
	KindNonCanonical
	KindNestedOverrun
)

// Error is the typed error every fallible rlp operation returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "rlp: " + e.Msg }

var ErrTruncated = &Error{Kind: KindTruncated, Msg: "truncated input"}

// Value is a decoded RLP node: either a byte string or a list of Values.
// Decoded byte strings borrow slices of the original input buffer.
type Value struct {
	IsList bool
	Str    []byte
	List   []Value
}

const (
	offsetShortString = 0x80
	offsetLongString  = 0xb7
	offsetShortList   = 0xc0
	offsetLongList    = 0xf7
)

// EncodeBytes returns the canonical RLP encoding of a single byte string.
func EncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < offsetShortString {
		return []byte{b[0]}
	}
	return append(encodeHeader(offsetShortString, offsetLongString, len(b)), b...)
}

// EncodeList returns the canonical RLP encoding of a list of pre-encoded
// items concatenated together.
func EncodeList(items ...[]byte) []byte {
	var body []byte
	for _, it := range items {
		body = append(body, it...)
	}
	return append(encodeHeader(offsetShortList, offsetLongList, len(body)), body...)
}

// EncodeUint returns the RLP encoding of v as its shortest big-endian byte
// string with no leading zero byte; zero encodes as the empty string.
func EncodeUint(v uint64) []byte {
	if v == 0 {
		return EncodeBytes(nil)
	}
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	i := 0
	for i < 8 && buf[i] == 0 {
		i++
	}
	return EncodeBytes(buf[i:])
}

func encodeHeader(shortBase, longBase byte, n int) []byte {
	if n < 56 {
		return []byte{shortBase + byte(n)}
	}
	lenBytes := minimalBE(uint64(n))
	header := make([]byte, 0, 1+len(lenBytes))
	header = append(header, longBase+byte(len(lenBytes)))
	header = append(header, lenBytes...)
	return header
}

func minimalBE(n uint64) []byte {
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(n)
		n >>= 8
	}
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// Decode parses a single RLP value from the front of input and returns it
// together with the number of bytes consumed. It rejects any input whose
// length prefix is not minimal/canonical.
func Decode(input []byte) (Value, int, error) {
	if len(input) == 0 {
		return Value{}, 0, ErrTruncated
	}
	b0 := input[0]
	switch {
	case b0 < offsetShortString:
		return Value{Str: input[0:1]}, 1, nil

	case b0 <= offsetLongString:
		n := int(b0 - offsetShortString)
		if n == 1 {
			// A single byte >= 0x80 is allowed; a single byte < 0x80 must
			// never be wrapped in a length prefix.
			if len(input) < 2 {
				return Value{}, 0, ErrTruncated
			}
			if input[1] < offsetShortString {
				return Value{}, 0, &Error{Kind: KindNonCanonical, Msg: "single byte < 0x80 wrapped in a length prefix"}
			}
		}
		if 1+n > len(input) {
			return Value{}, 0, ErrTruncated
		}
		return Value{Str: input[1 : 1+n]}, 1 + n, nil

	case b0 < offsetShortList:
		lenOfLen := int(b0 - offsetLongString)
		n, consumed, err := decodeLongLength(input[1:], lenOfLen)
		if err != nil {
			return Value{}, 0, err
		}
		start := 1 + consumed
		if start+n > len(input) {
			return Value{}, 0, ErrTruncated
		}
		return Value{Str: input[start : start+n]}, start + n, nil

	case b0 <= offsetLongList:
		n := int(b0 - offsetShortList)
		if 1+n > len(input) {
			return Value{}, 0, ErrTruncated
		}
		items, err := decodeListBody(input[1 : 1+n])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{IsList: true, List: items}, 1 + n, nil

	default:
		lenOfLen := int(b0 - offsetLongList)
		n, consumed, err := decodeLongLength(input[1:], lenOfLen)
		if err != nil {
			return Value{}, 0, err
		}
		start := 1 + consumed
		if start+n > len(input) {
			return Value{}, 0, ErrTruncated
		}
		items, err := decodeListBody(input[start : start+n])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{IsList: true, List: items}, start + n, nil
	}
}

func decodeLongLength(rest []byte, lenOfLen int) (n int, consumed int, err error) {
	if lenOfLen == 0 || lenOfLen > 8 {
		return 0, 0, &Error{Kind: KindNonCanonical, Msg: "invalid length-of-length"}
	}
	if lenOfLen > len(rest) {
		return 0, 0, ErrTruncated
	}
	if rest[0] == 0 {
		return 0, 0, &Error{Kind: KindNonCanonical, Msg: "leading zero in length prefix"}
	}
	var v uint64
	for i := 0; i < lenOfLen; i++ {
		v = v<<8 | uint64(rest[i])
	}
	if v < 56 {
		return 0, 0, &Error{Kind: KindNonCanonical, Msg: "long-form length below the short-form threshold"}
	}
	if v > 0x7fffffff {
		return 0, 0, &Error{Kind: KindNestedOverrun, Msg: "length exceeds supported range"}
	}
	return int(v), lenOfLen, nil
}

func decodeListBody(body []byte) ([]Value, error) {
	var items []Value
	for len(body) > 0 {
		v, n, err := Decode(body)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		body = body[n:]
	}
	return items, nil
}

// DecodeExact decodes a single value and requires it to consume all of
// input (no trailing bytes).
func DecodeExact(input []byte) (Value, error) {
	v, n, err := Decode(input)
	if err != nil {
		return Value{}, err
	}
	if n != len(input) {
		return Value{}, &Error{Kind: KindNestedOverrun, Msg: "trailing bytes after RLP value"}
	}
	return v, nil
}

// Bytes returns the decoded byte string, failing if v is a list.
func (v Value) Bytes() ([]byte, error) {
	if v.IsList {
		return nil, errors.New("rlp: expected string, got list")
	}
	return v.Str, nil
}

// Uint decodes the byte string as a canonical big-endian unsigned integer
// (no leading zero byte, empty string == 0).
func (v Value) Uint() (uint64, error) {
	if v.IsList {
		return 0, errors.New("rlp: expected string, got list")
	}
	if len(v.Str) > 0 && v.Str[0] == 0 {
		return 0, &Error{Kind: KindNonCanonical, Msg: "integer has a leading zero byte"}
	}
	if len(v.Str) > 8 {
		return 0, fmt.Errorf("rlp: integer too large for uint64 (%d bytes)", len(v.Str))
	}
	var out uint64
	for _, b := range v.Str {
		out = out<<8 | uint64(b)
	}
	return out, nil
}

// Items returns the decoded list elements, failing if v is a string.
func (v Value) Items() ([]Value, error) {
	if !v.IsList {
		return nil, errors.New("rlp: expected list, got string")
	}
	return v.List, nil
}
