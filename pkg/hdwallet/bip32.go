package hdwallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/ethcore-go/ethcore/pkg/secp256k1"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

// HardenedOffset marks a hardened child index (spec.md §4.6: index >= 2^31).
const HardenedOffset uint32 = 0x80000000

// Node is a BIP-32 extended private key: a secret scalar paired with its
// chain code (spec.md §3 "HD Node"). The secret is always in [1, n).
type Node struct {
	ChainCode [32]byte
	Secret    u256.U256
}

var masterKey = []byte("Bitcoin seed")

// NewMasterNode derives the BIP-32 master node from a BIP-39 seed: split
// HMAC-SHA512(key="Bitcoin seed", msg=seed) into secret (left half) and
// chain code (right half).
func NewMasterNode(seed []byte) (Node, error) {
	mac := hmac.New(sha512.New, masterKey)
	mac.Write(seed)
	i := mac.Sum(nil)

	secret := u256.MustFromBytesBE(i[:32])
	if secret.IsZero() || secret.Cmp(secp256k1.N) >= 0 {
		return Node{}, &Error{Kind: KindInvalidDerivation, Msg: "master secret out of range"}
	}
	var node Node
	copy(node.ChainCode[:], i[32:])
	node.Secret = secret
	return node, nil
}

// PublicKey returns the node's public key point.
func (n Node) PublicKey() secp256k1.Point {
	return secp256k1.BaseMultSecret(n.Secret)
}

// compressedPubKey serializes a point as the 33-byte SEC1 compressed
// public key BIP-32 feeds into the HMAC for non-hardened derivation.
func compressedPubKey(p secp256k1.Point) [33]byte {
	var out [33]byte
	x := p.X.BytesBE()
	if p.Y[0]&1 == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	copy(out[1:], x[:])
	return out
}

// DeriveChild derives the child node at the given index. Hardened
// derivation (index >= HardenedOffset) uses 0x00 || secret || index;
// normal derivation uses the serialized compressed public key || index.
// If the resulting secret would be zero or out of range, the index is
// advanced and derivation retried, per spec.md §4.6.
func (n Node) DeriveChild(index uint32) (Node, error) {
	for {
		var data []byte
		if index >= HardenedOffset {
			secretBytes := n.Secret.BytesBE()
			data = append([]byte{0x00}, secretBytes[:]...)
		} else {
			pub := compressedPubKey(n.PublicKey())
			data = append([]byte{}, pub[:]...)
		}
		var idxBytes [4]byte
		binary.BigEndian.PutUint32(idxBytes[:], index)
		data = append(data, idxBytes[:]...)

		mac := hmac.New(sha512.New, n.ChainCode[:])
		mac.Write(data)
		i := mac.Sum(nil)

		il := u256.MustFromBytesBE(i[:32])
		if il.Cmp(secp256k1.N) >= 0 {
			if index == ^uint32(0) {
				return Node{}, &Error{Kind: KindInvalidDerivation, Msg: "derivation index exhausted"}
			}
			index++
			continue
		}
		childSecret := il.ModAdd(n.Secret, secp256k1.N)
		if childSecret.IsZero() {
			if index == ^uint32(0) {
				return Node{}, &Error{Kind: KindInvalidDerivation, Msg: "derivation index exhausted"}
			}
			index++
			continue
		}

		var child Node
		child.Secret = childSecret
		copy(child.ChainCode[:], i[32:])
		return child, nil
	}
}

// DerivePath walks a sequence of child indices from n in order.
func (n Node) DerivePath(path []uint32) (Node, error) {
	cur := n
	for _, idx := range path {
		var err error
		cur, err = cur.DeriveChild(idx)
		if err != nil {
			return Node{}, err
		}
	}
	return cur, nil
}
