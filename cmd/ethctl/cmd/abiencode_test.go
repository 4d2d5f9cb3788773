package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethcore-go/ethcore/pkg/abi"
)

func TestParseParamTypes_Simple(t *testing.T) {
	types, err := parseParamTypes("transfer(address,uint256)")
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, abi.KindAddress, types[0].Kind)
	assert.Equal(t, abi.KindUint, types[1].Kind)
	assert.Equal(t, 256, types[1].Bits)
}

func TestParseParamTypes_NoArgs(t *testing.T) {
	types, err := parseParamTypes("increment()")
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestParseParamTypes_Array(t *testing.T) {
	types, err := parseParamTypes("batch(uint256[],address[3])")
	require.NoError(t, err)
	assert.Equal(t, abi.KindArray, types[0].Kind)
	assert.Equal(t, abi.KindUint, types[0].Elem.Kind)
	assert.Equal(t, abi.KindFixedArray, types[1].Kind)
	assert.Equal(t, 3, types[1].Size)
	assert.Equal(t, abi.KindAddress, types[1].Elem.Kind)
}

func TestParseParamTypes_Malformed(t *testing.T) {
	_, err := parseParamTypes("transfer(address,uint256")
	assert.Error(t, err)
}

func TestParseType_UintVariants(t *testing.T) {
	cases := map[string]int{"uint": 256, "uint8": 8, "uint256": 256, "uint160": 160}
	for s, want := range cases {
		ty, err := parseType(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, ty.Bits, s)
	}
}

func TestParseType_BadBitWidth(t *testing.T) {
	_, err := parseType("uint7")
	assert.Error(t, err, "non-multiple-of-8 bit width should be rejected")
	_, err = parseType("uint264")
	assert.Error(t, err, "bit width over 256 should be rejected")
}

func TestParseType_FixedBytes(t *testing.T) {
	ty, err := parseType("bytes32")
	require.NoError(t, err)
	assert.Equal(t, abi.KindFixedBytes, ty.Kind)
	assert.Equal(t, 32, ty.Size)
}

func TestParseValue_Uint(t *testing.T) {
	ty := abi.Type{Kind: abi.KindUint, Bits: 256}
	v, err := parseValue(ty, "1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.Uint.String())
}

func TestParseValue_HexUint(t *testing.T) {
	ty := abi.Type{Kind: abi.KindUint, Bits: 256}
	v, err := parseValue(ty, "0x64")
	require.NoError(t, err)
	assert.EqualValues(t, 100, v.Uint.Int64())
}

func TestParseValue_Address(t *testing.T) {
	ty := abi.Type{Kind: abi.KindAddress}
	v, err := parseValue(ty, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
	require.NoError(t, err)
	assert.Equal(t, byte(0xfb), v.Address[0])
}

func TestParseValue_BoolAndString(t *testing.T) {
	bv, err := parseValue(abi.Type{Kind: abi.KindBool}, "true")
	require.NoError(t, err)
	assert.True(t, bv.Bool)

	sv, err := parseValue(abi.Type{Kind: abi.KindString}, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", sv.Str)
}

func TestParseValue_Array(t *testing.T) {
	elem := abi.Type{Kind: abi.KindUint, Bits: 256}
	ty := abi.Type{Kind: abi.KindArray, Elem: &elem}
	v, err := parseValue(ty, "1,2,3")
	require.NoError(t, err)
	require.Len(t, v.Array, 3)
	assert.EqualValues(t, 2, v.Array[1].Uint.Int64())
}

func TestSelectorMatchesSeedScenario(t *testing.T) {
	sel := abi.Selector("transfer(address,uint256)")
	assert.Equal(t, [4]byte{0xa9, 0x05, 0x9c, 0xbb}, sel)
}
