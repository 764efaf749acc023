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

package wordarray

// rbByte is the low byte of Rb, the reduction constant for doubling in
// GF(2^128) modulo x^128 + x^7 + x^2 + x + 1.
const rbByte = 0x87

// rbShiftedByte is the low byte of Rb already shifted right one bit,
// used by Inv.
const rbShiftedByte = 0x43

// Zero, One, Rb, RbShifted and NonMSB are the fixed 16-byte blocks the
// S2V/SIV algorithms are built from. They are constructed once and
// must never be mutated in place; callers that need to modify one
// clone it first.
var (
	Zero      = FromBytes(make([]byte, 16))
	One       = mustOne()
	Rb        = mustRb()
	RbShifted = mustRbShifted()
	NonMSB    = mustNonMSB()
)

func mustOne() *ByteBlock {
	b := make([]byte, 16)
	b[15] = 1
	return FromBytes(b)
}

func mustRb() *ByteBlock {
	b := make([]byte, 16)
	b[15] = rbByte
	return FromBytes(b)
}

func mustRbShifted() *ByteBlock {
	b := make([]byte, 16)
	b[0] = 0x80
	b[15] = rbShiftedByte
	return FromBytes(b)
}

func mustNonMSB() *ByteBlock {
	b := []byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x7f, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff,
	}
	return FromBytes(b)
}

// Dbl doubles a 128-bit block in GF(2^128): left-shift by one bit,
// then XOR with Rb if the bit shifted out was set. x is modified in
// place and also returned for chaining.
func Dbl(x *ByteBlock) *ByteBlock {
	carry := x.Words[0]>>31 != 0
	x.BitShift(1)
	x.Clamp()
	if carry {
		Xor(x, Rb)
	}
	return x
}

// Inv is the inverse of Dbl, used only by the OMAC2 CMAC variant: a
// one-bit right shift, XORing in RbShifted when the bit shifted out
// (the low bit of the last word) was set. The carry bit is read from
// the actual last word of x, not a fixed offset, so it works for any
// block length Dbl also accepts.
func Inv(x *ByteBlock) *ByteBlock {
	last := len(x.Words) - 1
	carry := x.Words[last]&1 != 0
	x.BitShift(-1)
	x.Clamp()
	if carry {
		Xor(x, RbShifted)
	}
	return x
}
