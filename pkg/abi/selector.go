package abi

import "github.com/ethcore-go/ethcore/pkg/keccak"

// Selector returns the 4-byte function selector: the first 4 bytes of
// Keccak256 of the canonical signature text (spec.md §4.2's "selector
// derivation": no spaces, no parameter names, uintN/intN spelled exactly
// as named). Scenario S1: Selector("transfer(address,uint256)") ==
// 0xa9059cbb.
func Selector(canonicalSignature string) [4]byte {
	h := keccak.Hash256([]byte(canonicalSignature))
	var sel [4]byte
	copy(sel[:], h[:4])
	return sel
}

// EventTopic0 returns topic0: Keccak256 of the canonical event signature
// text, in full (not truncated to 4 bytes, unlike a function selector).
// Scenario S2: EventTopic0("Transfer(address,address,uint256)") ==
// 0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef.
func EventTopic0(canonicalSignature string) [32]byte {
	return keccak.Hash256([]byte(canonicalSignature))
}

// IndexedTopic returns the 32-byte value an indexed event parameter
// contributes to its topic slot (spec.md §4.7). Static types contribute
// their ordinary 32-byte padded encoding. Dynamic types contribute
// Keccak256 of a value that differs by kind: `bytes`/`string` hash their
// raw, unpadded, unprefixed content (Solidity never ABI-encodes an
// indexed dynamic value before hashing it — the length word and padding
// encodeLeaf/encodeBytesTail produce for ordinary calldata are not part of
// a topic), while indexed arrays/tuples hash their packed head-and-tail
// encoding.
func IndexedTopic(t Type, v Value) ([32]byte, error) {
	if !t.IsDynamic() {
		enc, err := encodeLeaf(t, v)
		if err != nil {
			return [32]byte{}, err
		}
		var out [32]byte
		copy(out[:], enc)
		return out, nil
	}
	switch t.Kind {
	case KindBytes:
		return keccak.Hash256(v.Bytes), nil
	case KindString:
		return keccak.Hash256([]byte(v.Str)), nil
	default:
		enc, err := encodeLeaf(t, v)
		if err != nil {
			return [32]byte{}, err
		}
		return keccak.Hash256(enc), nil
	}
}
