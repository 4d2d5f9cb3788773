package abi

import "math/big"

// Encode returns the canonical ABI encoding of values against types: the
// same head/tail algorithm Solidity uses for a tuple, exposed directly so
// it doubles as the function-argument encoder (spec.md §4.7:
// "calldata = selector(sig) || encode(tuple(arguments))").
func Encode(types []Type, values []Value) ([]byte, error) {
	return encodeFields(types, values)
}

// encodeFields implements the head/tail split for an ordered field list —
// a tuple's components, a function's arguments, or an array's elements.
func encodeFields(types []Type, values []Value) ([]byte, error) {
	headLen := 0
	for _, t := range types {
		if t.IsDynamic() {
			headLen += wordSize
		} else {
			headLen += staticWords(t) * wordSize
		}
	}

	var head, tail []byte
	for i, t := range types {
		v := values[i]
		if t.IsDynamic() {
			enc, err := encodeLeaf(t, v)
			if err != nil {
				return nil, err
			}
			offset := headLen + len(tail)
			head = append(head, encodeUintWord(big.NewInt(int64(offset)))...)
			tail = append(tail, enc...)
			continue
		}
		enc, err := encodeLeaf(t, v)
		if err != nil {
			return nil, err
		}
		head = append(head, enc...)
	}
	return append(head, tail...), nil
}

// encodeLeaf encodes a single value of type t: its static word(s) if t is
// static, or its tail payload (length-prefixed where applicable) if t is
// dynamic.
func encodeLeaf(t Type, v Value) ([]byte, error) {
	switch t.Kind {
	case KindUint:
		if v.Uint == nil {
			return nil, &Error{Kind: ErrKindTypeMismatch, Msg: "nil uint value"}
		}
		return encodeUintWord(v.Uint), nil

	case KindInt:
		if v.Int == nil {
			return nil, &Error{Kind: ErrKindTypeMismatch, Msg: "nil int value"}
		}
		return encodeIntWord(v.Int), nil

	case KindBool:
		out := make([]byte, wordSize)
		if v.Bool {
			out[wordSize-1] = 1
		}
		return out, nil

	case KindAddress:
		out := make([]byte, wordSize)
		copy(out[12:], v.Address[:])
		return out, nil

	case KindFixedBytes:
		if len(v.FixedBytes) != t.Size {
			return nil, &Error{Kind: ErrKindTypeMismatch, Msg: "fixed bytes length mismatch"}
		}
		out := make([]byte, wordSize)
		copy(out, v.FixedBytes) // left-aligned
		return out, nil

	case KindBytes:
		return encodeBytesTail(v.Bytes), nil

	case KindString:
		return encodeBytesTail([]byte(v.Str)), nil

	case KindFixedArray:
		if len(v.Array) != t.Size {
			return nil, &Error{Kind: ErrKindTypeMismatch, Msg: "fixed array length mismatch"}
		}
		return encodeArrayBody(*t.Elem, v.Array)

	case KindArray:
		body, err := encodeArrayBody(*t.Elem, v.Array)
		if err != nil {
			return nil, err
		}
		out := encodeUintWord(big.NewInt(int64(len(v.Array))))
		return append(out, body...), nil

	case KindTuple:
		if len(v.Tuple) != len(t.Tuple) {
			return nil, &Error{Kind: ErrKindTypeMismatch, Msg: "tuple arity mismatch"}
		}
		return encodeFields(t.Tuple, v.Tuple)

	default:
		return nil, &Error{Kind: ErrKindTypeMismatch, Msg: "unknown type kind"}
	}
}

// encodeArrayBody encodes n elements of elemType as if they were a tuple's
// fields: the standard head/tail algorithm, with no length prefix (the
// caller prepends one for dynamic-length arrays).
func encodeArrayBody(elemType Type, elems []Value) ([]byte, error) {
	types := make([]Type, len(elems))
	for i := range types {
		types[i] = elemType
	}
	return encodeFields(types, elems)
}

// encodeBytesTail returns length || zero-padded payload, the tail form of
// a dynamic byte string.
func encodeBytesTail(b []byte) []byte {
	out := encodeUintWord(big.NewInt(int64(len(b))))
	padded := make([]byte, ceilToWord(len(b)))
	copy(padded, b)
	return append(out, padded...)
}

func ceilToWord(n int) int {
	return (n + wordSize - 1) / wordSize * wordSize
}

// encodeUintWord left-pads an unsigned magnitude to one 32-byte word.
func encodeUintWord(v *big.Int) []byte {
	b := v.Bytes()
	out := make([]byte, wordSize)
	copy(out[wordSize-len(b):], b)
	return out
}

// encodeIntWord encodes a signed integer in two's complement, sign
// extended to 256 bits.
func encodeIntWord(v *big.Int) []byte {
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	wrapped := new(big.Int).Mod(v, mod)
	b := wrapped.Bytes()
	out := make([]byte, wordSize)
	copy(out[wordSize-len(b):], b)
	return out
}
