// Copyright (c) 2023 Paweł Rybak
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package aessiv implements deterministic, nonce-misuse-resistant
// authenticated encryption as described in RFC 5297 (AES-SIV): a
// two-operation AEAD built from an AES block cipher, AES-CTR, AES-CMAC
// and the S2V string-to-vector construction.
//
// https://www.rfc-editor.org/rfc/rfc5297
package aessiv

import (
	"errors"

	"github.com/kagesiv/aessiv/internal/aesblock"
	"github.com/kagesiv/aessiv/internal/ctr"
	"github.com/kagesiv/aessiv/internal/s2v"
	"github.com/kagesiv/aessiv/internal/wordarray"
)

var (
	// ErrInvalidKeyLength is returned by New when the key is not 32, 48
	// or 64 bytes.
	ErrInvalidKeyLength = errors.New("aessiv: key must be 32, 48 or 64 bytes")
	// ErrInputTooShort is returned by Decrypt when the input is shorter
	// than one AES block and cannot hold a tag.
	ErrInputTooShort = errors.New("aessiv: input shorter than the tag size")
	// ErrAuthenticationFailed is returned by Decrypt when the recovered
	// tag does not match the one presented by the caller.
	ErrAuthenticationFailed = errors.New("aessiv: authentication failed")
)

// SIV is a deterministic AEAD built from one key split into an S2V
// half and a CTR half. It is immutable after construction and safe
// for concurrent use; independent SIV values never share mutable
// state.
type SIV struct {
	s2vCipher *aesblock.Cipher
	ctrCipher *aesblock.Cipher
}

// New splits key into its S2V and CTR halves (by byte count, not bit
// count) and builds an SIV instance. key must be 32, 48 or 64 bytes.
func New(key []byte) (*SIV, error) {
	var half int
	switch len(key) {
	case 32:
		half = 16
	case 48:
		half = 24
	case 64:
		half = 32
	default:
		return nil, ErrInvalidKeyLength
	}

	s2vCipher, err := aesblock.NewCipher(key[:half])
	if err != nil {
		return nil, err
	}
	ctrCipher, err := aesblock.NewCipher(key[half:])
	if err != nil {
		return nil, err
	}

	return &SIV{s2vCipher: s2vCipher, ctrCipher: ctrCipher}, nil
}

// Encrypt authenticates ad (in order) and plaintext, and encrypts
// plaintext deterministically. The returned slice is tag(16) ||
// ciphertext(len(plaintext)).
func (s *SIV) Encrypt(ad [][]byte, plaintext []byte) ([]byte, error) {
	v, err := s.syntheticIV(ad, plaintext)
	if err != nil {
		return nil, err
	}

	q, err := maskIV(v)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(plaintext))
	if err := ctr.XORKeyStream(s.ctrCipher, q, ciphertext, plaintext); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(v)+len(ciphertext))
	out = append(out, v...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decrypt verifies input's tag against ad and, on success, returns the
// recovered plaintext. On any authentication failure it returns
// ErrAuthenticationFailed and a nil plaintext; it never returns a
// partially-trusted plaintext to the caller.
func (s *SIV) Decrypt(ad [][]byte, input []byte) ([]byte, error) {
	if len(input) < aesblock.BlockSize {
		return nil, ErrInputTooShort
	}

	v := input[:aesblock.BlockSize]
	ciphertext := input[aesblock.BlockSize:]

	q, err := maskIV(v)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	if err := ctr.XORKeyStream(s.ctrCipher, q, plaintext, ciphertext); err != nil {
		return nil, err
	}

	vPrime, err := s.syntheticIV(ad, plaintext)
	if err != nil {
		return nil, err
	}

	if !wordarray.ConstantTimeEqual(v, vPrime) {
		zero(plaintext)
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

func (s *SIV) syntheticIV(ad [][]byte, plaintext []byte) ([]byte, error) {
	acc, err := s2v.New(s.s2vCipher)
	if err != nil {
		return nil, err
	}
	for _, a := range ad {
		if err := acc.Add(a); err != nil {
			return nil, err
		}
	}
	return acc.Finalize(plaintext)
}

// maskIV clears bit 31 of the 8th and 12th bytes of v, per RFC 5297
// §2.6, turning the synthetic IV into a valid CTR counter block.
func maskIV(v []byte) ([]byte, error) {
	q := wordarray.FromBytes(v).Clone()
	if err := wordarray.BitAnd(q, wordarray.NonMSB); err != nil {
		return nil, err
	}
	return q.Bytes(), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
