package abi

import "math/big"

var (
	errOffsetOOB  = &Error{Kind: ErrKindOffsetOutOfBounds, Msg: "tail offset points outside the input"}
	errOverrun    = &Error{Kind: ErrKindLengthOverrun, Msg: "declared length exceeds remaining input"}
	errNonZeroPad = &Error{Kind: ErrKindNonZeroPadding, Msg: "padding bytes that must be zero are non-zero"}
)

// Decode parses data against types strictly: a tail offset outside data, a
// length that would overrun the input, or non-zero padding where padding
// is required to be zero are all rejected (spec.md §4.7). For any type
// list and value list produced by Encode, Decode(types, Encode(types,
// values)) reproduces values (spec.md §8 invariant 2).
func Decode(types []Type, data []byte) ([]Value, error) {
	return decodeFields(types, data)
}

// decodeFields decodes an ordered field list (a tuple's components, a
// function's arguments, or an array's elements) out of data. data must
// extend from this field list's head through the rest of the overall
// buffer, since a dynamic field's tail offset is measured from the start
// of data and may reach arbitrarily far into it.
func decodeFields(types []Type, data []byte) ([]Value, error) {
	values := make([]Value, len(types))
	pos := 0
	for i, t := range types {
		if t.IsDynamic() {
			if pos+wordSize > len(data) {
				return nil, errOverrun
			}
			offset, err := readOffset(data[pos : pos+wordSize])
			if err != nil {
				return nil, err
			}
			if offset > len(data) {
				return nil, errOffsetOOB
			}
			v, err := decodeLeaf(t, data[offset:])
			if err != nil {
				return nil, err
			}
			values[i] = v
			pos += wordSize
			continue
		}
		n := staticWords(t) * wordSize
		if pos+n > len(data) {
			return nil, errOverrun
		}
		v, err := decodeLeaf(t, data[pos:])
		if err != nil {
			return nil, err
		}
		values[i] = v
		pos += n
	}
	return values, nil
}

// readOffset parses a head offset word as a bounded int, rejecting values
// that cannot possibly be a valid in-buffer offset.
func readOffset(word []byte) (int, error) {
	v := new(big.Int).SetBytes(word)
	if !v.IsUint64() || v.Uint64() > 1<<32 {
		return 0, errOffsetOOB
	}
	return int(v.Uint64()), nil
}

// decodeLeaf decodes a single value of type t whose own encoding begins at
// the start of data (already offset-resolved for dynamic types). data may
// extend beyond this value's own content to the end of the overall
// buffer.
func decodeLeaf(t Type, data []byte) (Value, error) {
	switch t.Kind {
	case KindUint:
		if len(data) < wordSize {
			return Value{}, errOverrun
		}
		word := data[:wordSize]
		if err := checkUintPadding(word, t.Bits); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindUint, Uint: new(big.Int).SetBytes(word)}, nil

	case KindInt:
		if len(data) < wordSize {
			return Value{}, errOverrun
		}
		word := data[:wordSize]
		if err := checkIntPadding(word, t.Bits); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindInt, Int: decodeSigned(word)}, nil

	case KindBool:
		if len(data) < wordSize {
			return Value{}, errOverrun
		}
		for _, b := range data[:wordSize-1] {
			if b != 0 {
				return Value{}, errNonZeroPad
			}
		}
		last := data[wordSize-1]
		if last != 0 && last != 1 {
			return Value{}, errNonZeroPad
		}
		return Value{Kind: KindBool, Bool: last == 1}, nil

	case KindAddress:
		if len(data) < wordSize {
			return Value{}, errOverrun
		}
		for _, b := range data[:12] {
			if b != 0 {
				return Value{}, errNonZeroPad
			}
		}
		var addr [20]byte
		copy(addr[:], data[12:32])
		return Value{Kind: KindAddress, Address: addr}, nil

	case KindFixedBytes:
		if len(data) < wordSize {
			return Value{}, errOverrun
		}
		for _, b := range data[t.Size:wordSize] {
			if b != 0 {
				return Value{}, errNonZeroPad
			}
		}
		fb := make([]byte, t.Size)
		copy(fb, data[:t.Size])
		return Value{Kind: KindFixedBytes, FixedBytes: fb}, nil

	case KindBytes, KindString:
		b, err := decodeBytesTail(data)
		if err != nil {
			return Value{}, err
		}
		if t.Kind == KindString {
			return Value{Kind: KindString, Str: string(b)}, nil
		}
		return Value{Kind: KindBytes, Bytes: b}, nil

	case KindFixedArray:
		items, err := decodeFields(repeatType(*t.Elem, t.Size), data)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindFixedArray, Array: items}, nil

	case KindArray:
		if len(data) < wordSize {
			return Value{}, errOverrun
		}
		n, err := readOffset(data[:wordSize])
		if err != nil {
			return Value{}, err
		}
		rest := data[wordSize:]
		items, err := decodeFields(repeatType(*t.Elem, n), rest)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindArray, Array: items}, nil

	case KindTuple:
		items, err := decodeFields(t.Tuple, data)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindTuple, Tuple: items}, nil

	default:
		return Value{}, &Error{Kind: ErrKindTypeMismatch, Msg: "unknown type kind"}
	}
}

func repeatType(t Type, n int) []Type {
	out := make([]Type, n)
	for i := range out {
		out[i] = t
	}
	return out
}

// decodeBytesTail parses length || payload, rejecting a length that would
// overrun data and non-zero trailing padding.
func decodeBytesTail(data []byte) ([]byte, error) {
	if len(data) < wordSize {
		return nil, errOverrun
	}
	n, err := readOffset(data[:wordSize])
	if err != nil {
		return nil, err
	}
	payloadEnd := wordSize + n
	if payloadEnd > len(data) {
		return nil, errOverrun
	}
	padEnd := wordSize + ceilToWord(n)
	if padEnd <= len(data) {
		for _, b := range data[payloadEnd:padEnd] {
			if b != 0 {
				return nil, errNonZeroPad
			}
		}
	}
	out := make([]byte, n)
	copy(out, data[wordSize:payloadEnd])
	return out, nil
}

// checkUintPadding rejects a uint<bits> word whose bits above the declared
// width are set.
func checkUintPadding(word []byte, bits int) error {
	if bits <= 0 || bits >= 256 {
		return nil
	}
	usedBytes := bits / 8
	for _, b := range word[:wordSize-usedBytes] {
		if b != 0 {
			return errNonZeroPad
		}
	}
	return nil
}

// checkIntPadding rejects an int<bits> word whose bits above the declared
// width don't all equal the sign bit (i.e. it isn't validly sign-extended).
func checkIntPadding(word []byte, bits int) error {
	if bits <= 0 || bits >= 256 {
		return nil
	}
	usedBytes := bits / 8
	signByte := word[wordSize-usedBytes]
	var want byte
	if signByte&0x80 != 0 {
		want = 0xff
	}
	for _, b := range word[:wordSize-usedBytes] {
		if b != want {
			return errNonZeroPad
		}
	}
	return nil
}

// decodeSigned interprets a 32-byte word as a two's complement integer.
func decodeSigned(word []byte) *big.Int {
	v := new(big.Int).SetBytes(word)
	if word[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 256)
		v.Sub(v, mod)
	}
	return v
}
