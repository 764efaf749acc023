package aessiv

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ErrMalformedHex is returned by ParseHex when its input is not valid
// hex (odd length or non-hex characters).
var ErrMalformedHex = fmt.Errorf("aessiv: malformed hex input")

// GenerateKey returns a cryptographically random key of the requested
// size (32, 48 or 64 bytes), suitable for New.
func GenerateKey(size int) ([]byte, error) {
	switch size {
	case 32, 48, 64:
	default:
		return nil, ErrInvalidKeyLength
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// ParseHex decodes a lowercase or uppercase hex string into bytes.
func ParseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrMalformedHex
	}
	return b, nil
}

// StringifyHex encodes b as lowercase hex.
func StringifyHex(b []byte) string {
	return hex.EncodeToString(b)
}
