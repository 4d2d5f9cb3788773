package hdwallet_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/ethcore-go/ethcore/pkg/hdwallet"
	"github.com/ethcore-go/ethcore/pkg/signer"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// TestBip39SeedVector checks S3 of spec.md §8: the canonical all-"abandon"
// mnemonic's seed (empty passphrase) begins with 0x5eb00bbddcf06908.
func TestBip39SeedVector(t *testing.T) {
	seed := hdwallet.MnemonicToSeed(testMnemonic, "")
	want, _ := hex.DecodeString("5eb00bbddcf06908")
	if !bytes.Equal(seed[:8], want) {
		t.Fatalf("seed[:8] = %x, want %x", seed[:8], want)
	}
}

// TestBip39SeedMatchesOracle cross-checks MnemonicToSeed against
// tyler-smith/go-bip39's independent PBKDF2 implementation.
func TestBip39SeedMatchesOracle(t *testing.T) {
	cases := []struct{ mnemonic, passphrase string }{
		{testMnemonic, ""},
		{testMnemonic, "TREZOR"},
	}
	for _, c := range cases {
		got := hdwallet.MnemonicToSeed(c.mnemonic, c.passphrase)
		want := bip39.NewSeed(c.mnemonic, c.passphrase)
		if !bytes.Equal(got[:], want) {
			t.Fatalf("seed mismatch for passphrase %q: got %x want %x", c.passphrase, got, want)
		}
	}
}

// TestEthereumAddressVector checks S3: deriving m/44'/60'/0'/0/0 from the
// canonical mnemonic's seed must produce the documented address.
func TestEthereumAddressVector(t *testing.T) {
	seed := hdwallet.MnemonicToSeed(testMnemonic, "")
	master, err := hdwallet.NewMasterNode(seed[:])
	if err != nil {
		t.Fatal(err)
	}
	child, err := hdwallet.DeriveEthereumKey(master, 0)
	if err != nil {
		t.Fatal(err)
	}
	pub := child.PublicKey()
	addr := signer.AddressFromPublicKey(pub)

	want := "9858EfFD232B4033E47d90003D41EC34EcaEda94"
	got := hex.EncodeToString(addr[:])
	// Compare case-insensitively; the spec's literal is EIP-55 checksummed.
	if !bytesEqualFold(got, want) {
		t.Fatalf("address = %s, want %s (case-insensitive)", got, want)
	}
}

// TestMasterNodeMatchesBip32Oracle cross-checks master-node and child
// derivation against tyler-smith/go-bip32's independent implementation.
func TestMasterNodeMatchesBip32Oracle(t *testing.T) {
	seed := hdwallet.MnemonicToSeed(testMnemonic, "")

	ours, err := hdwallet.NewMasterNode(seed[:])
	if err != nil {
		t.Fatal(err)
	}
	theirs, err := bip32.NewMasterKey(seed[:])
	if err != nil {
		t.Fatal(err)
	}

	ourSecret := ours.Secret.BytesBE()
	if !bytes.Equal(ourSecret[:], theirs.Key) {
		t.Fatalf("master secret mismatch: got %x want %x", ourSecret, theirs.Key)
	}
	if !bytes.Equal(ours.ChainCode[:], theirs.ChainCode) {
		t.Fatalf("master chain code mismatch: got %x want %x", ours.ChainCode, theirs.ChainCode)
	}

	path := hdwallet.EthereumPath(0)
	ourChild, err := ours.DerivePath(path)
	if err != nil {
		t.Fatal(err)
	}

	theirChild := theirs
	for _, idx := range path {
		theirChild, err = theirChild.NewChildKey(idx)
		if err != nil {
			t.Fatal(err)
		}
	}

	ourChildSecret := ourChild.Secret.BytesBE()
	if !bytes.Equal(ourChildSecret[:], theirChild.Key) {
		t.Fatalf("child secret mismatch: got %x want %x", ourChildSecret, theirChild.Key)
	}
}

// TestMnemonicRoundTrip exercises EntropyToMnemonic/MnemonicToEntropy
// against the real English wordlist, using go-bip39's exported list so this
// package doesn't need to embed its own 2048-word transcription.
func TestMnemonicRoundTrip(t *testing.T) {
	wordlist := bip39.GetWordList()

	entropy := make([]byte, 16) // 128 bits -> 12 words
	for i := range entropy {
		entropy[i] = byte(i)
	}

	mnemonic, err := hdwallet.EntropyToMnemonic(entropy, wordlist)
	if err != nil {
		t.Fatal(err)
	}

	theirMnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		t.Fatal(err)
	}
	if mnemonic != theirMnemonic {
		t.Fatalf("mnemonic mismatch: got %q want %q", mnemonic, theirMnemonic)
	}

	back, err := hdwallet.MnemonicToEntropy(mnemonic, wordlist)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, entropy) {
		t.Fatalf("entropy round trip mismatch: got %x want %x", back, entropy)
	}
}

func TestMnemonicChecksumRejected(t *testing.T) {
	wordlist := bip39.GetWordList()
	words := splitForTest(testMnemonic)
	// Swap the last word for a different valid word, breaking the checksum.
	if words[len(words)-1] == wordlist[0] {
		words[len(words)-1] = wordlist[1]
	} else {
		words[len(words)-1] = wordlist[0]
	}
	tampered := joinForTest(words)
	if err := hdwallet.ValidateMnemonic(tampered, wordlist); err == nil {
		t.Fatal("expected checksum failure on tampered mnemonic")
	}
}

func TestWrongWordlistSizeRejected(t *testing.T) {
	_, err := hdwallet.EntropyToMnemonic(make([]byte, 16), []string{"only", "a", "few", "words"})
	if err == nil {
		t.Fatal("expected error for undersized wordlist")
	}
}

func splitForTest(s string) []string {
	var out []string
	cur := ""
	for _, c := range s {
		if c == ' ' {
			out = append(out, cur)
			cur = ""
			continue
		}
		cur += string(c)
	}
	out = append(out, cur)
	return out
}

func joinForTest(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func bytesEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
