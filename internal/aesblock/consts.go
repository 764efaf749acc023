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

// Package aesblock implements the AES block cipher (key schedule,
// round transform, T-table encrypt/decrypt) for all three standard key
// sizes, 128, 192 and 256 bits, selected purely from the length of the
// key passed to NewCipher.
//
// The encrypt/decrypt path is table-driven (subMix/invSubMix), not a
// state-matrix SubBytes/ShiftRows/MixColumns sequence: table lookups
// are data-dependent, so this is not a constant-time implementation.
package aesblock

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// WordSize is the number of bytes in one key-schedule word.
	WordSize = 4
)

// RCON holds the round constants used by the key schedule, indexed by
// round-constant position. RCON[0] is unused; the schedule always
// indexes from 1.
var RCON = [11]byte{
	0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36,
}
