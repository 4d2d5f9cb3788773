package rlp_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/ethcore-go/ethcore/pkg/rlp"
)

// TestKnownVectors checks the textbook RLP vectors from the Ethereum wiki.
func TestKnownVectors(t *testing.T) {
	cases := []struct {
		in   []byte
		want string
	}{
		{[]byte("dog"), "83646f67"},
		{[]byte(""), "80"},
		{[]byte{0x00}, "00"},
		{[]byte{0x0f}, "0f"},
		{[]byte{0x04, 0x00}, "820400"},
	}
	for _, c := range cases {
		got := rlp.EncodeBytes(c.in)
		want, _ := hex.DecodeString(c.want)
		if !bytes.Equal(got, want) {
			t.Fatalf("EncodeBytes(%x) = %x, want %x", c.in, got, want)
		}
	}
}

func TestEncodeListEmptyAndNested(t *testing.T) {
	empty := rlp.EncodeList()
	if !bytes.Equal(empty, []byte{0xc0}) {
		t.Fatalf("empty list = %x, want c0", empty)
	}

	catDog := rlp.EncodeList(rlp.EncodeBytes([]byte("cat")), rlp.EncodeBytes([]byte("dog")))
	want, _ := hex.DecodeString("c88363617483646f67")
	if !bytes.Equal(catDog, want) {
		t.Fatalf("[cat,dog] = %x, want %x", catDog, want)
	}
}

func TestEncodeLongString(t *testing.T) {
	s := bytes.Repeat([]byte("a"), 56)
	enc := rlp.EncodeBytes(s)
	// 56 bytes -> 0xb7+1 length-of-length byte, then 1 length byte, then data.
	if enc[0] != 0xb8 || enc[1] != 56 {
		t.Fatalf("long string header = %x", enc[:2])
	}
	if !bytes.Equal(enc[2:], s) {
		t.Fatal("long string payload mismatch")
	}
}

func TestRoundTripBytes(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0x00},
		{0x7f},
		{0x80},
		{0x01, 0x02, 0x03},
		bytes.Repeat([]byte{0xAB}, 55),
		bytes.Repeat([]byte{0xCD}, 56),
		bytes.Repeat([]byte{0xEF}, 1000),
	}
	for _, in := range inputs {
		enc := rlp.EncodeBytes(in)
		v, err := rlp.DecodeExact(enc)
		if err != nil {
			t.Fatalf("decode(%x): %v", enc, err)
		}
		got, err := v.Bytes()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, in) && !(len(got) == 0 && len(in) == 0) {
			t.Fatalf("round trip mismatch: got %x want %x", got, in)
		}
	}
}

func TestRoundTripNestedList(t *testing.T) {
	inner := rlp.EncodeList(rlp.EncodeBytes([]byte("a")), rlp.EncodeBytes([]byte("bc")))
	outer := rlp.EncodeList(inner, rlp.EncodeBytes([]byte("tail")))

	v, err := rlp.DecodeExact(outer)
	if err != nil {
		t.Fatal(err)
	}
	items, err := v.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	innerItems, err := items[0].Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(innerItems) != 2 {
		t.Fatalf("expected 2 inner items, got %d", len(innerItems))
	}
	b0, _ := innerItems[0].Bytes()
	if string(b0) != "a" {
		t.Fatalf("inner[0] = %q, want %q", b0, "a")
	}
	tailBytes, _ := items[1].Bytes()
	if string(tailBytes) != "tail" {
		t.Fatalf("tail = %q", tailBytes)
	}
}

func TestEncodeUint(t *testing.T) {
	cases := []struct {
		v    uint64
		want string
	}{
		{0, "80"},
		{1, "01"},
		{127, "7f"},
		{128, "8180"},
		{256, "820100"},
		{0xffffffff, "84ffffffff"},
	}
	for _, c := range cases {
		got := rlp.EncodeUint(c.v)
		want, _ := hex.DecodeString(c.want)
		if !bytes.Equal(got, want) {
			t.Fatalf("EncodeUint(%d) = %x, want %x", c.v, got, want)
		}
		v, err := rlp.DecodeExact(got)
		if err != nil {
			t.Fatal(err)
		}
		u, err := v.Uint()
		if err != nil {
			t.Fatal(err)
		}
		if u != c.v {
			t.Fatalf("round trip %d -> %d", c.v, u)
		}
	}
}

// TestRejectsNonCanonicalSingleByte asserts that a single byte < 0x80 must
// never be wrapped in a length-prefix form.
func TestRejectsNonCanonicalSingleByte(t *testing.T) {
	_, err := rlp.DecodeExact([]byte{0x81, 0x00})
	if err == nil {
		t.Fatal("expected rejection of non-canonical single-byte wrapping")
	}
}

func TestRejectsLeadingZeroLengthPrefix(t *testing.T) {
	// length-of-length = 1, but the length byte itself is 0x00.
	_, err := rlp.DecodeExact([]byte{0xb8, 0x00})
	if err == nil {
		t.Fatal("expected rejection of leading-zero length prefix")
	}
}

func TestRejectsNonMinimalLongForm(t *testing.T) {
	// Declares a long-form string of length 10 (< 56), which must use the
	// short form instead.
	body := bytes.Repeat([]byte{0x01}, 10)
	bad := append([]byte{0xb8, 0x0a}, body...)
	_, err := rlp.DecodeExact(bad)
	if err == nil {
		t.Fatal("expected rejection of non-minimal long-form length")
	}
}

func TestRejectsTruncatedInput(t *testing.T) {
	_, _, err := rlp.Decode([]byte{0x83, 0x61, 0x62}) // declares 3 bytes, has 2
	if err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestDecodeExactRejectsTrailingBytes(t *testing.T) {
	enc := rlp.EncodeBytes([]byte("a"))
	_, err := rlp.DecodeExact(append(enc, 0xff))
	if err == nil {
		t.Fatal("expected trailing-byte rejection")
	}
}

func TestUintRejectsLeadingZeroByte(t *testing.T) {
	v := rlp.Value{Str: []byte{0x00, 0x01}}
	if _, err := v.Uint(); err == nil {
		t.Fatal("expected rejection of leading zero byte in integer encoding")
	}
}
