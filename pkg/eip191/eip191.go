// Package eip191 implements EIP-191's "personal_sign" message hashing:
// prefixing arbitrary data with a length-annotated banner before hashing,
// so a signature over it can never be replayed as a signature over a raw
// transaction or typed-data hash.
package eip191

import (
	"strconv"

	"github.com/ethcore-go/ethcore/pkg/keccak"
)

const prefix = "\x19Ethereum Signed Message:\n"

// Hash returns Keccak256("\x19Ethereum Signed Message:\n" || len(msg) ||
// msg), where len(msg) is the ASCII decimal length of msg.
func Hash(msg []byte) [32]byte {
	banner := prefix + strconv.Itoa(len(msg))
	buf := make([]byte, 0, len(banner)+len(msg))
	buf = append(buf, banner...)
	buf = append(buf, msg...)
	return keccak.Hash256(buf)
}
