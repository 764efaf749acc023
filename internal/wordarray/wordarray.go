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

// Package wordarray implements a word-packed byte buffer (a ByteBlock)
// and the GF(2^128) primitives built on top of it. It plays the role
// that the consts/galois/sbox split plays for the AES side: the small
// shared arithmetic layer every other package in this module is built
// from.
package wordarray

import "errors"

// ByteBlock is a byte sequence packed four bytes per 32-bit big-endian
// word, the way CryptoJS's WordArray (and, by extension, this engine's
// S2V/CMAC buffers) represents a message in progress. Byte i of the
// block lives in Words[i/4] at bit offset 24-8*(i%4).
type ByteBlock struct {
	Words    []uint32
	SigBytes int
}

var errSigByteMismatch = errors.New("wordarray: sigBytes mismatch")

// New returns a zero-valued ByteBlock able to hold sigBytes bytes.
func New(sigBytes int) *ByteBlock {
	b := &ByteBlock{
		Words:    make([]uint32, wordsFor(sigBytes)),
		SigBytes: sigBytes,
	}
	return b
}

func wordsFor(sigBytes int) int {
	return (sigBytes + 3) / 4
}

// FromBytes packs a raw byte slice into a ByteBlock.
func FromBytes(b []byte) *ByteBlock {
	blk := New(len(b))
	for i, v := range b {
		blk.Words[i/4] |= uint32(v) << uint(24-8*(i%4))
	}
	return blk
}

// Bytes unpacks the significant bytes of the block.
func (b *ByteBlock) Bytes() []byte {
	out := make([]byte, b.SigBytes)
	for i := range out {
		out[i] = byte(b.Words[i/4] >> uint(24-8*(i%4)))
	}
	return out
}

// Clone makes an independent copy; ByteBlocks must never be shared
// mutably between instances.
func (b *ByteBlock) Clone() *ByteBlock {
	w := make([]uint32, len(b.Words))
	copy(w, b.Words)
	return &ByteBlock{Words: w, SigBytes: b.SigBytes}
}

// Concat appends other's significant bytes to b in place.
func (b *ByteBlock) Concat(other *ByteBlock) {
	b.Clamp()

	if b.SigBytes%4 == 0 {
		b.Words = append(b.Words, other.Words...)
	} else {
		for i := 0; i < other.SigBytes; i++ {
			thatByte := byte(other.Words[i/4] >> uint(24-8*(i%4)))
			idx := b.SigBytes + i
			for len(b.Words) <= idx/4 {
				b.Words = append(b.Words, 0)
			}
			b.Words[idx/4] |= uint32(thatByte) << uint(24-8*(idx%4))
		}
	}

	b.SigBytes += other.SigBytes
	b.Clamp()
}

// Clamp zeroes the bits past SigBytes and truncates Words to the
// minimum length needed to hold them.
func (b *ByteBlock) Clamp() {
	nWords := wordsFor(b.SigBytes)
	if nWords == 0 {
		b.Words = nil
		return
	}
	for len(b.Words) < nWords {
		b.Words = append(b.Words, 0)
	}
	b.Words = b.Words[:nWords]

	rem := b.SigBytes % 4
	if rem != 0 {
		mask := uint32(0xffffffff) << uint(32-8*rem)
		b.Words[nWords-1] &= mask
	}
}

// BitShift shifts the block in place by n bits; positive shifts left,
// negative shifts right. Word-boundary crossings are handled; any
// carry off the high end is dropped.
func (b *ByteBlock) BitShift(n int) {
	if n == 0 {
		return
	}
	if n > 0 {
		b.shiftLeft(n)
	} else {
		b.shiftRight(-n)
	}
}

func (b *ByteBlock) shiftLeft(n int) {
	wordShift := n / 32
	bitShift := uint(n % 32)

	out := make([]uint32, len(b.Words))
	for i := range out {
		src := i + wordShift
		var hi, lo uint32
		if src < len(b.Words) {
			hi = b.Words[src] << bitShift
		}
		if bitShift != 0 && src+1 < len(b.Words) {
			lo = b.Words[src+1] >> (32 - bitShift)
		}
		out[i] = hi | lo
	}
	b.Words = out
}

func (b *ByteBlock) shiftRight(n int) {
	wordShift := n / 32
	bitShift := uint(n % 32)

	out := make([]uint32, len(b.Words))
	for i := range out {
		src := i - wordShift
		var hi, lo uint32
		if src >= 0 && src < len(b.Words) {
			lo = b.Words[src] >> bitShift
		}
		if bitShift != 0 && src-1 >= 0 {
			hi = b.Words[src-1] << (32 - bitShift)
		}
		out[i] = hi | lo
	}
	b.Words = out
}

// Xor XORs src into dst in place. Both blocks must share SigBytes.
func Xor(dst, src *ByteBlock) error {
	if dst.SigBytes != src.SigBytes {
		return errSigByteMismatch
	}
	for i := range dst.Words {
		dst.Words[i] ^= src.Words[i]
	}
	return nil
}

// BitAnd ANDs src into dst in place, word by word.
func BitAnd(dst, src *ByteBlock) error {
	if dst.SigBytes != src.SigBytes {
		return errSigByteMismatch
	}
	for i := range dst.Words {
		dst.Words[i] &= src.Words[i]
	}
	return nil
}

// Neg complements every word of b in place.
func (b *ByteBlock) Neg() {
	for i := range b.Words {
		b.Words[i] = ^b.Words[i]
	}
	b.Clamp()
}

// Equals reports whether a and b hold the same significant bytes,
// using a word-wise XOR-OR reduction so the comparison does not
// short-circuit on the first differing word.
func Equals(a, b *ByteBlock) bool {
	if a.SigBytes != b.SigBytes {
		return false
	}
	var acc uint32
	for i := range a.Words {
		acc |= a.Words[i] ^ b.Words[i]
	}
	return acc == 0
}

// ConstantTimeEqual compares two raw byte slices the same way, for
// callers (SIV tag verification) that never built a ByteBlock.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// ShiftBytes destructively removes the first n bytes of b, shrinking b
// by n bytes, and returns them as a new ByteBlock.
func (b *ByteBlock) ShiftBytes(n int) *ByteBlock {
	all := b.Bytes()
	head := FromBytes(all[:n])
	*b = *FromBytes(all[n:])
	return head
}

// PopWords destructively removes the first n words of b and returns
// them as a new ByteBlock of 4*n significant bytes.
func (b *ByteBlock) PopWords(n int) *ByteBlock {
	head := &ByteBlock{Words: append([]uint32(nil), b.Words[:n]...), SigBytes: 4 * n}
	b.Words = b.Words[n:]
	b.SigBytes -= 4 * n
	return head
}

// LeftmostBytes returns a non-destructive copy of b's first n bytes.
func LeftmostBytes(b *ByteBlock, n int) *ByteBlock {
	return FromBytes(b.Bytes()[:n])
}

// RightmostBytes returns a non-destructive copy of b's last n bytes.
func RightmostBytes(b *ByteBlock, n int) *ByteBlock {
	raw := b.Bytes()
	return FromBytes(raw[len(raw)-n:])
}

// XorendBytes returns leftmost(a, |a|-|b|) || (rightmost(a, |b|) xor b).
func XorendBytes(a, b *ByteBlock) *ByteBlock {
	araw := a.Bytes()
	braw := b.Bytes()
	out := make([]byte, len(araw))
	copy(out, araw)
	diff := len(araw) - len(braw)
	for i, v := range braw {
		out[diff+i] ^= v
	}
	return FromBytes(out)
}
