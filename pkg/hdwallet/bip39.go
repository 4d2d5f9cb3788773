// Package hdwallet implements BIP-32 hierarchical-deterministic key
// derivation, BIP-39 mnemonic/seed conversion, and the BIP-44 Ethereum
// derivation path (spec.md §4.6), grounded on the teacher's
// internal/wallet/eth.go deriveKey walk, generalized from its single
// hardcoded five-level call chain into a reusable path-walking API.
package hdwallet

import (
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// Kind distinguishes the mnemonic/derivation error classes in spec.md §7.
type Kind int

const (
	KindInvalidMnemonic Kind = iota
	KindInvalidDerivation
)

// Error is the typed error every fallible hdwallet operation returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "hdwallet: " + e.Msg }

// entropyBitsToWordCount maps supported entropy lengths (bits) to mnemonic
// word counts, per spec.md §4.6 (128..256 bits in 32-bit steps).
var entropyBitsToWordCount = map[int]int{128: 12, 160: 15, 192: 18, 224: 21, 256: 24}

// EntropyToMnemonic maps entropy (16, 20, 24, 28 or 32 bytes) to a mnemonic
// over the given 2048-word list: the checksum is entropy_bits/32 bits of
// SHA-256(entropy), appended before splitting into 11-bit word indices.
//
// wordlist must contain exactly 2048 entries in BIP-39 order. This package
// does not embed the canonical English list itself, so the caller
// supplies one (e.g. loaded from a vetted
// data file at startup). MnemonicToSeed, the function the signer actually
// depends on, does not need a wordlist at all.
func EntropyToMnemonic(entropy []byte, wordlist []string) (string, error) {
	if err := checkWordlist(wordlist); err != nil {
		return "", err
	}
	bits := len(entropy) * 8
	wordCount, ok := entropyBitsToWordCount[bits]
	if !ok {
		return "", &Error{Kind: KindInvalidMnemonic, Msg: "unsupported entropy length"}
	}
	sum := sha256.Sum256(entropy)
	bitstream := newBitReader(append(append([]byte{}, entropy...), sum[:]...))

	words := make([]string, wordCount)
	for i := 0; i < wordCount; i++ {
		idx := bitstream.readBits(11)
		words[i] = wordlist[idx]
	}
	return joinWords(words), nil
}

// MnemonicToEntropy reverses EntropyToMnemonic and verifies the checksum.
func MnemonicToEntropy(mnemonic string, wordlist []string) ([]byte, error) {
	if err := checkWordlist(wordlist); err != nil {
		return nil, err
	}
	words := splitWords(mnemonic)
	index := make(map[string]int, len(wordlist))
	for i, w := range wordlist {
		index[w] = i
	}

	totalBits := len(words) * 11
	entropyBits := 0
	for bits, count := range entropyBitsToWordCount {
		if count == len(words) {
			entropyBits = bits
			break
		}
	}
	if entropyBits == 0 {
		return nil, &Error{Kind: KindInvalidMnemonic, Msg: "unsupported word count"}
	}
	checksumBits := totalBits - entropyBits

	bw := newBitWriter(totalBits)
	for _, w := range words {
		idx, ok := index[w]
		if !ok {
			return nil, &Error{Kind: KindInvalidMnemonic, Msg: "unknown word: " + w}
		}
		bw.writeBits(uint32(idx), 11)
	}
	full := bw.bytes()
	entropy := full[:entropyBits/8]

	sum := sha256.Sum256(entropy)
	gotChecksum := newBitReader(sum[:]).readBits(checksumBits)
	wantChecksum := newBitReader(full[entropyBits/8:]).readBits(checksumBits)
	if gotChecksum != wantChecksum {
		return nil, &Error{Kind: KindInvalidMnemonic, Msg: "checksum mismatch"}
	}
	return entropy, nil
}

// ValidateMnemonic checks word count, word membership, and checksum.
func ValidateMnemonic(mnemonic string, wordlist []string) error {
	_, err := MnemonicToEntropy(mnemonic, wordlist)
	return err
}

// MnemonicToSeed derives the 64-byte BIP-39 seed via PBKDF2-HMAC-SHA512
// over the mnemonic text itself with 2048 iterations, salted with
// "mnemonic" || passphrase. This does not require a wordlist: the mnemonic
// is hashed as UTF-8 text, not re-derived from word indices (spec.md §4.6,
// exercised by seed scenario S3).
func MnemonicToSeed(mnemonic, passphrase string) [64]byte {
	salt := "mnemonic" + passphrase
	derived := pbkdf2.Key([]byte(mnemonic), []byte(salt), 2048, 64, sha512.New)
	var out [64]byte
	copy(out[:], derived)
	return out
}

func checkWordlist(wordlist []string) error {
	if len(wordlist) != 2048 {
		return &Error{Kind: KindInvalidMnemonic, Msg: "wordlist must contain exactly 2048 words"}
	}
	return nil
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func splitWords(mnemonic string) []string {
	var words []string
	start := -1
	for i := 0; i <= len(mnemonic); i++ {
		if i < len(mnemonic) && mnemonic[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, mnemonic[start:i])
			start = -1
		}
	}
	return words
}
