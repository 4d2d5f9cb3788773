// Package eip712 implements EIP-712 typed structured data hashing: domain
// separator and struct-hash derivation over a user-supplied type schema,
// per spec.md §4.9.
//
// The recursive encode/hash walk is grounded on the same ABI head/tail
// encoding rules pkg/abi implements (spec.md's own cross-reference: "encode
// follows the ABI encoding rules with bytes and string replaced by their
// Keccak256"), transcribed here rather than imported from pkg/abi so typed
// data's struct/array recursion — which ABI function-call encoding never
// needs — stays out of the plain ABI codec.
package eip712

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethcore-go/ethcore/pkg/keccak"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// FieldType is one member of a struct type's schema: its name and Solidity
// type string (e.g. "address", "uint256", "Person[]").
type FieldType struct {
	Name string
	Type string
}

// Types maps a struct type name to its ordered field list.
type Types map[string][]FieldType

// TypedData is the full EIP-712 payload: the type schema, which type is
// being signed, the domain values, and the message values.
type TypedData struct {
	Types       Types
	PrimaryType string
	Domain      map[string]any
	Message     map[string]any
}

// Kind distinguishes the EIP-712 error classes in spec.md §7.
type Kind int

const (
	KindUnknownType Kind = iota
	KindMalformedValue
)

// Error is the typed error every fallible eip712 operation returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "eip712: " + e.Msg }

// Hash returns the final EIP-712 digest:
// Keccak256(0x19 || 0x01 || domain_separator || struct_hash).
func (td TypedData) Hash() ([32]byte, error) {
	domainHash, err := hashStruct("EIP712Domain", td.Domain, td.Types)
	if err != nil {
		return [32]byte{}, err
	}
	msgHash, err := hashStruct(td.PrimaryType, td.Message, td.Types)
	if err != nil {
		return [32]byte{}, err
	}
	buf := make([]byte, 0, 2+64)
	buf = append(buf, 0x19, 0x01)
	buf = append(buf, domainHash[:]...)
	buf = append(buf, msgHash[:]...)
	return keccak.Hash256(buf), nil
}

// DomainSeparator returns Keccak256(encode(EIP712Domain, domain)) alone.
func (td TypedData) DomainSeparator() ([32]byte, error) {
	return hashStruct("EIP712Domain", td.Domain, td.Types)
}

// hashStruct returns Keccak256(typeHash || encodeData(...)).
func hashStruct(typeName string, data map[string]any, types Types) ([32]byte, error) {
	enc, err := encodeData(typeName, data, types)
	if err != nil {
		return [32]byte{}, err
	}
	return keccak.Hash256(enc), nil
}

// encodeData returns typeHash(typeName) followed by each field's encoded
// 32-byte word, concatenated in schema order.
func encodeData(typeName string, data map[string]any, types Types) ([]byte, error) {
	fields, ok := types[typeName]
	if !ok {
		return nil, &Error{Kind: KindUnknownType, Msg: "unknown type: " + typeName}
	}
	th := typeHash(typeName, types)
	out := append([]byte{}, th[:]...)
	for _, f := range fields {
		word, err := encodeValue(f.Type, data[f.Name], types)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		out = append(out, word...)
	}
	return out, nil
}

// typeHash returns Keccak256(encodeType(typeName)).
func typeHash(typeName string, types Types) [32]byte {
	return keccak.Hash256([]byte(encodeType(typeName, types)))
}

// encodeType serializes typeName's field schema as
// "Name(type1 name1,type2 name2,...)" followed by the same rendering of
// every custom type it references (transitively), sorted alphabetically by
// name, per EIP-712's canonical type-string rule.
func encodeType(typeName string, types Types) string {
	deps := collectDeps(typeName, types, map[string]bool{})
	sort.Strings(deps)

	var b strings.Builder
	writeOne := func(name string) {
		b.WriteString(name)
		b.WriteByte('(')
		for i, f := range types[name] {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.Type)
			b.WriteByte(' ')
			b.WriteString(f.Name)
		}
		b.WriteByte(')')
	}
	writeOne(typeName)
	for _, d := range deps {
		if d == typeName {
			continue
		}
		writeOne(d)
	}
	return b.String()
}

// collectDeps returns every custom type name reachable from typeName's
// fields (typeName itself included), ignoring array brackets.
func collectDeps(typeName string, types Types, seen map[string]bool) []string {
	if seen[typeName] {
		return nil
	}
	seen[typeName] = true
	var out []string
	if _, ok := types[typeName]; !ok {
		return out
	}
	out = append(out, typeName)
	for _, f := range types[typeName] {
		base := baseType(f.Type)
		if _, ok := types[base]; ok {
			out = append(out, collectDeps(base, types, seen)...)
		}
	}
	return out
}

// baseType strips any trailing "[]" or "[N]" array suffix.
func baseType(t string) string {
	if i := strings.IndexByte(t, '['); i >= 0 {
		return t[:i]
	}
	return t
}

func isArray(t string) bool { return strings.IndexByte(t, '[') >= 0 }

// encodeValue returns the 32-byte encoded word for a single field value,
// per spec.md §4.9: atomic types encode directly, bytes/string are
// replaced by their Keccak256, structs by their struct hash, and arrays by
// the Keccak256 of their concatenated element encodings.
func encodeValue(fieldType string, value any, types Types) ([]byte, error) {
	if isArray(fieldType) {
		elemType := baseType(fieldType)
		items, ok := value.([]any)
		if !ok {
			return nil, &Error{Kind: KindMalformedValue, Msg: "expected array value for " + fieldType}
		}
		var concat []byte
		for _, item := range items {
			w, err := encodeValue(elemType, item, types)
			if err != nil {
				return nil, err
			}
			concat = append(concat, w...)
		}
		h := keccak.Hash256(concat)
		return h[:], nil
	}

	if _, ok := types[fieldType]; ok {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, &Error{Kind: KindMalformedValue, Msg: "expected struct value for " + fieldType}
		}
		h, err := hashStruct(fieldType, m, types)
		if err != nil {
			return nil, err
		}
		return h[:], nil
	}

	switch {
	case fieldType == "string":
		s, _ := value.(string)
		h := keccak.Hash256([]byte(s))
		return h[:], nil
	case fieldType == "bytes":
		b, _ := value.([]byte)
		h := keccak.Hash256(b)
		return h[:], nil
	case fieldType == "bool":
		out := make([]byte, 32)
		if v, _ := value.(bool); v {
			out[31] = 1
		}
		return out, nil
	case fieldType == "address":
		addr, ok := value.([20]byte)
		if !ok {
			return nil, &Error{Kind: KindMalformedValue, Msg: "expected [20]byte address"}
		}
		out := make([]byte, 32)
		copy(out[12:], addr[:])
		return out, nil
	case strings.HasPrefix(fieldType, "bytes"):
		b, ok := value.([]byte)
		if !ok {
			return nil, &Error{Kind: KindMalformedValue, Msg: "expected []byte for " + fieldType}
		}
		out := make([]byte, 32)
		copy(out, b) // right-padded, per Solidity's fixed-bytesN ABI encoding
		return out, nil
	case strings.HasPrefix(fieldType, "uint"):
		v, err := toU256(value)
		if err != nil {
			return nil, err
		}
		b := v.BytesBE()
		return b[:], nil
	case strings.HasPrefix(fieldType, "int"):
		v, err := toBigInt(value)
		if err != nil {
			return nil, err
		}
		word := new(big.Int).Mod(v, new(big.Int).Lsh(big.NewInt(1), 256))
		u := u256.FromBig(word)
		b := u.BytesBE()
		return b[:], nil
	default:
		return nil, &Error{Kind: KindUnknownType, Msg: "unsupported field type: " + fieldType}
	}
}

func toU256(value any) (u256.U256, error) {
	switch v := value.(type) {
	case u256.U256:
		return v, nil
	case uint64:
		return u256.FromUint64(v), nil
	case int:
		return u256.FromUint64(uint64(v)), nil
	case *big.Int:
		return u256.FromBig(v), nil
	case string:
		return u256.ParseDecimal(v)
	default:
		return u256.U256{}, &Error{Kind: KindMalformedValue, Msg: "unsupported numeric value"}
	}
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return v, nil
	case int64:
		return big.NewInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case string:
		b, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, &Error{Kind: KindMalformedValue, Msg: "malformed signed integer: " + v}
		}
		return b, nil
	default:
		return nil, &Error{Kind: KindMalformedValue, Msg: "unsupported numeric value"}
	}
}
