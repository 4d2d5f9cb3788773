package txtypes

import (
	"github.com/ethcore-go/ethcore/pkg/rlp"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

func encodeBytes(b []byte) []byte { return rlp.EncodeBytes(b) }

func encodeList(items ...[]byte) []byte { return rlp.EncodeList(items...) }

func encodeUint(v uint64) []byte { return rlp.EncodeUint(v) }

// encodeU256 RLP-encodes a u256.U256 as its minimal big-endian byte string.
func encodeU256(v u256.U256) []byte {
	b := v.BytesBE()
	i := 0
	for i < 32 && b[i] == 0 {
		i++
	}
	return rlp.EncodeBytes(b[i:])
}

// encodeTo encodes the optional "to" address: empty string for contract
// creation, the 20-byte address otherwise.
func encodeTo(to *[20]byte) []byte {
	if to == nil {
		return rlp.EncodeBytes(nil)
	}
	return rlp.EncodeBytes(to[:])
}
