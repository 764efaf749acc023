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

package aesblock

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidKeySize is returned by NewCipher for any key length other
// than 16, 24 or 32 bytes.
var ErrInvalidKeySize = errors.New("aesblock: key must be 16, 24 or 32 bytes")

// Cipher is a single AES key's schedule, reusable across any number of
// blocks. It is immutable after construction and safe to read from
// multiple goroutines concurrently.
type Cipher struct {
	schedule    []uint32
	invSchedule []uint32
	rounds      int
}

// NewCipher builds the forward and inverse key schedules for key.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, ErrInvalidKeySize
	}

	schedule, _, nr := expandKey(key)
	return &Cipher{
		schedule:    schedule,
		invSchedule: invertSchedule(schedule),
		rounds:      nr,
	}, nil
}

// BlockSize reports the AES block size (always 16).
func (c *Cipher) BlockSize() int { return BlockSize }

// EncryptBlock encrypts exactly one 16-byte block from src into dst.
// src and dst may overlap completely or not at all.
func (c *Cipher) EncryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) != BlockSize {
		return errors.New("aesblock: block must be 16 bytes")
	}

	s0 := binary.BigEndian.Uint32(src[0:4])
	s1 := binary.BigEndian.Uint32(src[4:8])
	s2 := binary.BigEndian.Uint32(src[8:12])
	s3 := binary.BigEndian.Uint32(src[12:16])

	t0, t1, t2, t3 := c.cryptRounds(s0, s1, s2, s3, c.schedule, &subMix0, &subMix1, &subMix2, &subMix3, &sbox)

	binary.BigEndian.PutUint32(dst[0:4], t0)
	binary.BigEndian.PutUint32(dst[4:8], t1)
	binary.BigEndian.PutUint32(dst[8:12], t2)
	binary.BigEndian.PutUint32(dst[12:16], t3)
	return nil
}

// DecryptBlock decrypts exactly one 16-byte block from src into dst.
//
// The 2nd/4th word swap before and after the round function compensates
// for invertSchedule's column layout and must be kept for decryption to
// invert EncryptBlock correctly.
func (c *Cipher) DecryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) != BlockSize {
		return errors.New("aesblock: block must be 16 bytes")
	}

	s0 := binary.BigEndian.Uint32(src[0:4])
	s1 := binary.BigEndian.Uint32(src[4:8])
	s2 := binary.BigEndian.Uint32(src[8:12])
	s3 := binary.BigEndian.Uint32(src[12:16])

	s1, s3 = s3, s1

	t0, t1, t2, t3 := c.cryptRounds(s0, s1, s2, s3, c.invSchedule, &invSubMix0, &invSubMix1, &invSubMix2, &invSubMix3, &invSbox)

	t1, t3 = t3, t1

	binary.BigEndian.PutUint32(dst[0:4], t0)
	binary.BigEndian.PutUint32(dst[4:8], t1)
	binary.BigEndian.PutUint32(dst[8:12], t2)
	binary.BigEndian.PutUint32(dst[12:16], t3)
	return nil
}

// cryptRounds is the shared T-table round function: nRounds-1 full
// rounds through the sub/shift/mix fused tables, then a final round
// that substitutes bytes directly from box (no mixing).
func (c *Cipher) cryptRounds(
	s0, s1, s2, s3 uint32,
	schedule []uint32,
	mix0, mix1, mix2, mix3 *[256]uint32,
	box *[256]byte,
) (uint32, uint32, uint32, uint32) {
	s0 ^= schedule[0]
	s1 ^= schedule[1]
	s2 ^= schedule[2]
	s3 ^= schedule[3]

	ksRow := 4
	for round := 1; round < c.rounds; round++ {
		t0 := mix0[s0>>24] ^ mix1[(s1>>16)&0xff] ^ mix2[(s2>>8)&0xff] ^ mix3[s3&0xff] ^ schedule[ksRow]
		t1 := mix0[s1>>24] ^ mix1[(s2>>16)&0xff] ^ mix2[(s3>>8)&0xff] ^ mix3[s0&0xff] ^ schedule[ksRow+1]
		t2 := mix0[s2>>24] ^ mix1[(s3>>16)&0xff] ^ mix2[(s0>>8)&0xff] ^ mix3[s1&0xff] ^ schedule[ksRow+2]
		t3 := mix0[s3>>24] ^ mix1[(s0>>16)&0xff] ^ mix2[(s1>>8)&0xff] ^ mix3[s2&0xff] ^ schedule[ksRow+3]
		s0, s1, s2, s3 = t0, t1, t2, t3
		ksRow += 4
	}

	t0 := (uint32(box[s0>>24])<<24 | uint32(box[(s1>>16)&0xff])<<16 | uint32(box[(s2>>8)&0xff])<<8 | uint32(box[s3&0xff])) ^ schedule[ksRow]
	t1 := (uint32(box[s1>>24])<<24 | uint32(box[(s2>>16)&0xff])<<16 | uint32(box[(s3>>8)&0xff])<<8 | uint32(box[s0&0xff])) ^ schedule[ksRow+1]
	t2 := (uint32(box[s2>>24])<<24 | uint32(box[(s3>>16)&0xff])<<16 | uint32(box[(s0>>8)&0xff])<<8 | uint32(box[s1&0xff])) ^ schedule[ksRow+2]
	t3 := (uint32(box[s3>>24])<<24 | uint32(box[(s0>>16)&0xff])<<16 | uint32(box[(s1>>8)&0xff])<<8 | uint32(box[s2&0xff])) ^ schedule[ksRow+3]

	return t0, t1, t2, t3
}
