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

import "encoding/binary"

func rotWord(t uint32) uint32 {
	return (t << 8) | (t >> 24)
}

func subWord(t uint32, box *[256]byte) uint32 {
	return uint32(box[t>>24])<<24 |
		uint32(box[(t>>16)&0xff])<<16 |
		uint32(box[(t>>8)&0xff])<<8 |
		uint32(box[t&0xff])
}

// expandKey builds the forward key schedule for a key of Nk words.
func expandKey(key []byte) (schedule []uint32, nk, nr int) {
	nk = len(key) / WordSize
	nr = nk + 6
	ksRows := 4 * (nr + 1)

	keyWords := make([]uint32, nk)
	for i := 0; i < nk; i++ {
		keyWords[i] = binary.BigEndian.Uint32(key[4*i : 4*i+4])
	}

	schedule = make([]uint32, ksRows)
	for i := 0; i < ksRows; i++ {
		if i < nk {
			schedule[i] = keyWords[i]
			continue
		}

		t := schedule[i-1]
		switch {
		case i%nk == 0:
			t = subWord(rotWord(t), &sbox)
			t ^= uint32(RCON[i/nk]) << 24
		case nk > 6 && i%nk == 4:
			t = subWord(t, &sbox)
		}
		schedule[i] = schedule[i-nk] ^ t
	}

	return schedule, nk, nr
}

// invertSchedule derives the decryption key schedule from the forward
// one, folding each round's SubBytes through the inverse T-tables so
// DecryptBlock can use the same table-driven round function as
// EncryptBlock.
func invertSchedule(schedule []uint32) []uint32 {
	ksRows := len(schedule)
	inv := make([]uint32, ksRows)

	for j := 0; j < ksRows; j++ {
		r := ksRows - j

		var t uint32
		if j%4 != 0 {
			t = schedule[r]
		} else {
			t = schedule[r-4]
		}

		if j < 4 || r <= 4 {
			inv[j] = t
			continue
		}

		inv[j] = invSubMix0[sbox[t>>24]] ^
			invSubMix1[sbox[(t>>16)&0xff]] ^
			invSubMix2[sbox[(t>>8)&0xff]] ^
			invSubMix3[sbox[t&0xff]]
	}

	return inv
}
