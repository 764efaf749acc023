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

// Package ctr implements the counter-mode keystream used to encrypt
// and decrypt the payload half of a SIV construction: a full 16-byte
// block is used as the initial counter value, and only its last 32-bit
// word is incremented, wrapping modulo 2^32, for every block after the
// first.
//
// https://en.wikipedia.org/wiki/Block_cipher_mode_of_operation#Counter_(CTR)
package ctr

import (
	"encoding/binary"

	"github.com/kagesiv/aessiv/internal/aesblock"
)

// XORKeyStream encrypts or decrypts src into dst by XORing it with the
// AES-CTR keystream seeded from iv. iv must be exactly one AES block
// (16 bytes) and is never mutated. dst and src may be the same slice
// but must be the same length; dst may also be shorter or longer than
// a multiple of the block size, the trailing partial block is handled
// with a truncated keystream block.
func XORKeyStream(cipher *aesblock.Cipher, iv []byte, dst, src []byte) error {
	if len(iv) != aesblock.BlockSize {
		return errInvalidIVSize
	}
	if len(dst) != len(src) {
		return errLengthMismatch
	}

	counter := make([]byte, aesblock.BlockSize)
	copy(counter, iv)

	keystream := make([]byte, aesblock.BlockSize)
	for i := 0; i < len(src); i += aesblock.BlockSize {
		if err := cipher.EncryptBlock(keystream, counter); err != nil {
			return err
		}

		end := i + aesblock.BlockSize
		if end > len(src) {
			end = len(src)
		}
		for j := i; j < end; j++ {
			dst[j] = src[j] ^ keystream[j-i]
		}

		incrementLastWord(counter)
	}

	return nil
}

// incrementLastWord increments only the final 32-bit word of a
// 16-byte counter block, wrapping on overflow. The leading 12 bytes
// (the start of the SIV, whose last two words each had their top bit
// cleared by the caller) stay fixed for the life of the keystream.
func incrementLastWord(counter []byte) {
	v := binary.BigEndian.Uint32(counter[12:16])
	v++
	binary.BigEndian.PutUint32(counter[12:16], v)
}
