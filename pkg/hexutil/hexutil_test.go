package hexutil_test

import (
	"bytes"
	"testing"

	"github.com/ethcore-go/ethcore/pkg/hexutil"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cases := [][]byte{nil, {0x00}, {0xde, 0xad, 0xbe, 0xef}, bytes.Repeat([]byte{0xAB}, 40)}
	for _, b := range cases {
		s := hexutil.Encode(b)
		got, err := hexutil.Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("round trip mismatch: %x vs %x", got, b)
		}
	}
}

func TestDecodeAcceptsUppercasePrefix(t *testing.T) {
	got, err := hexutil.Decode("0XDEADBEEF")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestDecodeWithoutPrefix(t *testing.T) {
	got, err := hexutil.Decode("deadbeef")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestDecodeRejectsOddLength(t *testing.T) {
	if _, err := hexutil.Decode("0xabc"); err != hexutil.ErrInvalidHex {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}

func TestDecodeRejectsNonHexChar(t *testing.T) {
	if _, err := hexutil.Decode("0xzz"); err != hexutil.ErrInvalidHex {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}

func TestDecodeFixedLengthMismatch(t *testing.T) {
	if _, err := hexutil.DecodeFixed("0xdead", 4); err != hexutil.ErrInvalidHex {
		t.Fatalf("expected ErrInvalidHex for length mismatch, got %v", err)
	}
	got, err := hexutil.DecodeFixed("0xdeadbeef", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("got %x", got)
	}
}

func TestEncodeQuantityZero(t *testing.T) {
	if got := hexutil.EncodeQuantity(0); got != "0x0" {
		t.Fatalf("EncodeQuantity(0) = %q, want 0x0", got)
	}
}

func TestEncodeQuantityNoLeadingZeros(t *testing.T) {
	cases := map[uint64]string{
		0:          "0x0",
		1:          "0x1",
		255:        "0xff",
		256:        "0x100",
		0x7fffffff: "0x7fffffff",
	}
	for v, want := range cases {
		if got := hexutil.EncodeQuantity(v); got != want {
			t.Fatalf("EncodeQuantity(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestDecodeQuantityRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 255, 256, 1234567890}
	for _, v := range values {
		s := hexutil.EncodeQuantity(v)
		got, err := hexutil.DecodeQuantity(s)
		if err != nil {
			t.Fatalf("DecodeQuantity(%q): %v", s, err)
		}
		if got != v {
			t.Fatalf("round trip: got %d, want %d", got, v)
		}
	}
}

func TestDecodeQuantityRejectsLeadingZero(t *testing.T) {
	if _, err := hexutil.DecodeQuantity("0x01"); err != hexutil.ErrInvalidHex {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}

func TestDecodeQuantityRejectsEmpty(t *testing.T) {
	if _, err := hexutil.DecodeQuantity("0x"); err != hexutil.ErrInvalidHex {
		t.Fatalf("expected ErrInvalidHex for empty quantity, got %v", err)
	}
}

func TestHasPrefix(t *testing.T) {
	if !hexutil.HasPrefix("0xab") || !hexutil.HasPrefix("0XAB") {
		t.Fatal("expected both 0x and 0X to be recognized")
	}
	if hexutil.HasPrefix("ab") {
		t.Fatal("unprefixed string should not report a prefix")
	}
	if hexutil.HasPrefix("0") {
		t.Fatal("single character should not report a prefix")
	}
}
