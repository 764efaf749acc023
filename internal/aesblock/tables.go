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

// sbox and invSbox are the Rijndael substitution boxes. subMixN and
// invSubMixN are the T-tables that fuse SubBytes, ShiftRows and
// MixColumns (and their inverses) into four 256-entry, 32-bit lookup
// tables per round, the classic T-table optimization. All of it is
// generated once, here, by walking GF(2^8) with a multiplicative
// generator rather than being hardcoded.
var (
	sbox    [256]byte
	invSbox [256]byte

	subMix0, subMix1, subMix2, subMix3         [256]uint32
	invSubMix0, invSubMix1, invSubMix2, invSubMix3 [256]uint32
)

func init() {
	buildTables()
}

func buildTables() {
	// Doubling table in GF(2^8) modulo the Rijndael polynomial 0x11b.
	var d [256]byte
	for i := 0; i < 256; i++ {
		if i < 128 {
			d[i] = byte(i << 1)
		} else {
			d[i] = byte((i << 1) ^ 0x11b)
		}
	}

	var x, xi byte
	for i := 0; i < 256; i++ {
		sx32 := uint32(xi) ^ (uint32(xi) << 1) ^ (uint32(xi) << 2) ^ (uint32(xi) << 3) ^ (uint32(xi) << 4)
		sx32 = (sx32 >> 8) ^ (sx32 & 0xff) ^ 0x63
		sx := byte(sx32)

		sbox[x] = sx
		invSbox[sx] = x

		x2 := d[x]
		x4 := d[x2]
		x8 := d[x4]

		t := (uint32(d[sx]) * 0x101) ^ (uint32(sx) * 0x1010100)
		subMix0[x] = (t << 24) | (t >> 8)
		subMix1[x] = (t << 16) | (t >> 16)
		subMix2[x] = (t << 8) | (t >> 24)
		subMix3[x] = t

		it := (uint32(x8) * 0x1010101) ^ (uint32(x4) * 0x10001) ^ (uint32(x2) * 0x101) ^ (uint32(x) * 0x1010100)
		invSubMix0[sx] = (it << 24) | (it >> 8)
		invSubMix1[sx] = (it << 16) | (it >> 16)
		invSubMix2[sx] = (it << 8) | (it >> 24)
		invSubMix3[sx] = it

		if x == 0 {
			x, xi = 1, 1
		} else {
			x = x2 ^ d[d[d[x8^x2]]]
			xi ^= d[d[xi]]
		}
	}
}
