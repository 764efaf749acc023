package aessiv

import (
	"bytes"
	"testing"
)

func TestGenerateKeyLengths(t *testing.T) {
	for _, size := range []int{32, 48, 64} {
		key, err := GenerateKey(size)
		if err != nil {
			t.Fatalf("GenerateKey(%d): %v", size, err)
		}
		if len(key) != size {
			t.Fatalf("GenerateKey(%d): got %d bytes", size, len(key))
		}

		if _, err := New(key); err != nil {
			t.Fatalf("GenerateKey(%d) produced an unusable key: %v", size, err)
		}
	}
}

func TestGenerateKeyRejectsBadSize(t *testing.T) {
	if _, err := GenerateKey(16); err != ErrInvalidKeyLength {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
}

func TestGenerateKeyIsRandom(t *testing.T) {
	a, err := GenerateKey(32)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	b, err := GenerateKey(32)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two generated keys were identical")
	}
}

func TestHexRoundTrip(t *testing.T) {
	want := []byte{0x00, 0x01, 0xfe, 0xff, 0x42}
	s := StringifyHex(want)
	got, err := ParseHex(s)
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: got %x want %x", got, want)
	}
}

func TestParseHexRejectsMalformedInput(t *testing.T) {
	if _, err := ParseHex("not hex at all!!"); err != ErrMalformedHex {
		t.Fatalf("expected ErrMalformedHex, got %v", err)
	}
	if _, err := ParseHex("abc"); err != ErrMalformedHex {
		t.Fatalf("expected ErrMalformedHex for odd-length input, got %v", err)
	}
}
