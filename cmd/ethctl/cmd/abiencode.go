package cmd

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ethcore-go/ethcore/pkg/abi"
	"github.com/ethcore-go/ethcore/pkg/address"
	"github.com/ethcore-go/ethcore/pkg/hexutil"
)

var abiEncodeCmd = &cobra.Command{
	Use:   "abi-encode <signature> [args...]",
	Short: "Encode a contract call's calldata",
	Long: `Derives the 4-byte selector from the canonical function signature and
ABI-encodes the trailing arguments against its parameter list, printing
the full calldata (selector || encoded arguments).

  $ ethctl abi-encode "transfer(address,uint256)" 0xfB69...5d359 1000000000000000000

Supported parameter types: uintN, intN, bool, address, bytesN, bytes,
string, and T[] / T[N] arrays of any of the above (elements are given as
one comma-separated positional argument, e.g. "1,2,3").`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sig := args[0]
		params, err := parseParamTypes(sig)
		if err != nil {
			return fmt.Errorf("parse signature: %w", err)
		}
		argStrs := args[1:]
		if len(argStrs) != len(params) {
			return fmt.Errorf("%s expects %d argument(s), got %d", sig, len(params), len(argStrs))
		}

		values := make([]abi.Value, len(params))
		for i, t := range params {
			v, err := parseValue(t, argStrs[i])
			if err != nil {
				return fmt.Errorf("argument %d: %w", i+1, err)
			}
			values[i] = v
		}

		encodedArgs, err := abi.Encode(params, values)
		if err != nil {
			return fmt.Errorf("abi encode: %w", err)
		}
		selector := abi.Selector(sig)
		calldata := append(append([]byte{}, selector[:]...), encodedArgs...)

		if jsonOut {
			return printJSON(struct {
				Selector string `json:"selector"`
				Calldata string `json:"calldata"`
			}{Selector: hexutil.Encode(selector[:]), Calldata: hexutil.Encode(calldata)})
		}
		fmt.Printf("selector: %s\n", hexutil.Encode(selector[:]))
		fmt.Printf("calldata: %s\n", hexutil.Encode(calldata))
		return nil
	},
}

// parseParamTypes extracts and parses the comma-separated parameter list
// between a canonical signature's outermost parentheses.
func parseParamTypes(sig string) ([]abi.Type, error) {
	open := strings.IndexByte(sig, '(')
	closeIdx := strings.LastIndexByte(sig, ')')
	if open < 0 || closeIdx < open {
		return nil, fmt.Errorf("%q is not a canonical function signature", sig)
	}
	inner := sig[open+1 : closeIdx]
	if inner == "" {
		return nil, nil
	}
	parts := splitTopLevel(inner)
	types := make([]abi.Type, len(parts))
	for i, p := range parts {
		t, err := parseType(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

// splitTopLevel splits a comma-separated type list, respecting nested
// tuple parentheses (so "(uint256,bool),address" splits into two parts).
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// parseType parses a single Solidity ABI type fragment, recursively
// handling "T[]" and "T[N]" array suffixes. Tuple component types
// ("(...)") are not supported by this CLI helper — only the core
// pkg/abi.Type tree they'd decode into is.
func parseType(s string) (abi.Type, error) {
	if strings.HasSuffix(s, "]") {
		open := strings.LastIndexByte(s, '[')
		if open < 0 {
			return abi.Type{}, fmt.Errorf("malformed array type %q", s)
		}
		elem, err := parseType(s[:open])
		if err != nil {
			return abi.Type{}, err
		}
		sizeStr := s[open+1 : len(s)-1]
		if sizeStr == "" {
			return abi.Type{Kind: abi.KindArray, Elem: &elem}, nil
		}
		n, err := strconv.Atoi(sizeStr)
		if err != nil {
			return abi.Type{}, fmt.Errorf("malformed array length %q", sizeStr)
		}
		return abi.Type{Kind: abi.KindFixedArray, Size: n, Elem: &elem}, nil
	}

	switch {
	case s == "bool":
		return abi.Type{Kind: abi.KindBool}, nil
	case s == "address":
		return abi.Type{Kind: abi.KindAddress}, nil
	case s == "bytes":
		return abi.Type{Kind: abi.KindBytes}, nil
	case s == "string":
		return abi.Type{Kind: abi.KindString}, nil
	case strings.HasPrefix(s, "uint"):
		bits, err := parseBitWidth(s, "uint")
		if err != nil {
			return abi.Type{}, err
		}
		return abi.Type{Kind: abi.KindUint, Bits: bits}, nil
	case strings.HasPrefix(s, "int"):
		bits, err := parseBitWidth(s, "int")
		if err != nil {
			return abi.Type{}, err
		}
		return abi.Type{Kind: abi.KindInt, Bits: bits}, nil
	case strings.HasPrefix(s, "bytes"):
		n, err := strconv.Atoi(s[len("bytes"):])
		if err != nil || n < 1 || n > 32 {
			return abi.Type{}, fmt.Errorf("malformed fixed-bytes type %q", s)
		}
		return abi.Type{Kind: abi.KindFixedBytes, Size: n}, nil
	default:
		return abi.Type{}, fmt.Errorf("unsupported or malformed type %q", s)
	}
}

func parseBitWidth(s, prefix string) (int, error) {
	rest := s[len(prefix):]
	if rest == "" {
		return 256, nil
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 8 || n > 256 || n%8 != 0 {
		return 0, fmt.Errorf("malformed bit width in %q", s)
	}
	return n, nil
}

// parseValue converts a single command-line argument into an abi.Value
// matching t. Array elements are given as one comma-separated argument.
func parseValue(t abi.Type, s string) (abi.Value, error) {
	switch t.Kind {
	case abi.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return abi.Value{}, fmt.Errorf("invalid bool %q", s)
		}
		return abi.Value{Kind: abi.KindBool, Bool: b}, nil

	case abi.KindAddress:
		addr, err := address.Parse(s)
		if err != nil {
			return abi.Value{}, err
		}
		return abi.Value{Kind: abi.KindAddress, Address: addr}, nil

	case abi.KindBytes:
		b, err := hexutil.Decode(s)
		if err != nil {
			return abi.Value{}, err
		}
		return abi.Value{Kind: abi.KindBytes, Bytes: b}, nil

	case abi.KindFixedBytes:
		b, err := hexutil.DecodeFixed(s, t.Size)
		if err != nil {
			return abi.Value{}, err
		}
		return abi.Value{Kind: abi.KindFixedBytes, FixedBytes: b}, nil

	case abi.KindString:
		return abi.Value{Kind: abi.KindString, Str: s}, nil

	case abi.KindUint:
		n, ok := new(big.Int).SetString(s, 0)
		if !ok || n.Sign() < 0 {
			return abi.Value{}, fmt.Errorf("invalid uint %q", s)
		}
		return abi.Value{Kind: abi.KindUint, Uint: n}, nil

	case abi.KindInt:
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return abi.Value{}, fmt.Errorf("invalid int %q", s)
		}
		return abi.Value{Kind: abi.KindInt, Int: n}, nil

	case abi.KindArray, abi.KindFixedArray:
		var elems []string
		if s != "" {
			elems = strings.Split(s, ",")
		}
		vals := make([]abi.Value, len(elems))
		for i, e := range elems {
			v, err := parseValue(*t.Elem, strings.TrimSpace(e))
			if err != nil {
				return abi.Value{}, err
			}
			vals[i] = v
		}
		return abi.Value{Kind: t.Kind, Array: vals}, nil

	default:
		return abi.Value{}, fmt.Errorf("unsupported argument type")
	}
}

func init() {
	rootCmd.AddCommand(abiEncodeCmd)
}
