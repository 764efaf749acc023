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

// Package cmac implements the Cipher-based Message Authentication Code
// (RFC 4493, NIST SP 800-38B) over the aesblock cipher, plus the OMAC2
// subkey variant used by some SIV implementations.
//
//	+-----+     +-----+     +-----+     +-----+     +-----+     +---+----+
//	| M_1 |     | M_2 |     | M_n |     | M_1 |     | M_2 |     |M_n|10^i|
//	+-----+     +-----+     +-----+     +-----+     +-----+     +---+----+
//	   |           |           |   +--+    |           |           |   +--+
//	   |     +--->(+)    +--->(+)<-|K1|    |     +--->(+)    +--->(+)<-|K2|
//	   |     |     |     |     |   +--+    |     |     |     |     |   +--+
//	+-----+  |  +-----+  |  +-----+     +-----+  |  +-----+  |  +-----+
//	|AES_K|  |  |AES_K|  |  |AES_K|     |AES_K|  |  |AES_K|  |  |AES_K|
//	+-----+  |  +-----+  |  +-----+     +-----+  |  +-----+  |  +-----+
//	   |     |     |     |     |           |     |     |     |     |
//	   +-----+     +-----+     |           +-----+     +-----+     |
//	                           |                                   |
//	                        +-----+                              +-----+
//	                        |  T  |                              |  T  |
//	                        +-----+                              +-----+
package cmac

import (
	"github.com/kagesiv/aessiv/internal/aesblock"
	"github.com/kagesiv/aessiv/internal/wordarray"
)

// Variant selects how the second subkey K2 is derived from K1.
type Variant int

const (
	// OMAC1 derives K2 = Dbl(K1), the standard RFC 4493 / NIST CMAC
	// construction.
	OMAC1 Variant = iota
	// OMAC2 derives K2 = Inv(L) directly from the base key L instead of
	// doubling K1.
	OMAC2
)

// CMAC holds one cipher's subkeys plus the running state of a single
// MAC computation. Call Update any number of times to feed message
// bytes, then Finalize exactly once to absorb whatever is left and
// produce the 16-byte tag. It is not safe for concurrent use: the
// running block and pending-byte buffer are mutated in place.
type CMAC struct {
	cipher *aesblock.Cipher
	k1, k2 *wordarray.ByteBlock

	mac     []byte
	pending []byte
}

// New derives the CMAC subkeys for cipher under the given variant and
// readies the streaming state for a first message.
func New(cipher *aesblock.Cipher, variant Variant) (*CMAC, error) {
	zero := make([]byte, aesblock.BlockSize)
	l := make([]byte, aesblock.BlockSize)
	if err := cipher.EncryptBlock(l, zero); err != nil {
		return nil, err
	}
	lBlock := wordarray.FromBytes(l)

	k1 := wordarray.Dbl(lBlock.Clone())

	var k2 *wordarray.ByteBlock
	switch variant {
	case OMAC2:
		k2 = wordarray.Inv(wordarray.FromBytes(l))
	default:
		k2 = wordarray.Dbl(k1.Clone())
	}

	c := &CMAC{cipher: cipher, k1: k1, k2: k2}
	c.reset()
	return c, nil
}

func (c *CMAC) reset() {
	c.mac = make([]byte, aesblock.BlockSize)
	c.pending = nil
}

// Update feeds more message bytes into the running MAC. It buffers
// and processes every complete block it can, but always holds back the
// last, possibly partial block (up to sixteen bytes): its padding and
// subkey depend on whether more data follows, which only Finalize
// knows for certain.
func (c *CMAC) Update(msg []byte) error {
	bs := aesblock.BlockSize
	c.pending = append(c.pending, msg...)

	for len(c.pending) > bs {
		block := c.pending[:bs]
		xorInto(c.mac, block)
		if err := c.cipher.EncryptBlock(c.mac, c.mac); err != nil {
			return err
		}
		c.pending = c.pending[bs:]
	}
	return nil
}

// Finalize absorbs any trailing bytes in msg (nil is fine), processes
// whatever full blocks that leaves buffered, then closes out the
// final block against K1 (complete block) or K2 (padded block) and
// returns the 16-byte tag. It must be called exactly once per
// message; the CMAC is reset and ready for a new message afterward.
func (c *CMAC) Finalize(msg []byte) ([]byte, error) {
	bs := aesblock.BlockSize
	c.pending = append(c.pending, msg...)

	for len(c.pending) > bs {
		block := c.pending[:bs]
		xorInto(c.mac, block)
		if err := c.cipher.EncryptBlock(c.mac, c.mac); err != nil {
			return nil, err
		}
		c.pending = c.pending[bs:]
	}

	complete := len(c.pending) == bs
	out, err := c.finalBlockWithMAC(c.mac, c.pending, complete)
	c.reset()
	return out, err
}

// Sum computes the CMAC tag over message in one shot: a reset
// followed by a single Finalize call, reusable across independent
// messages on the same CMAC instance.
func (c *CMAC) Sum(message []byte) ([]byte, error) {
	c.reset()
	return c.Finalize(message)
}

func (c *CMAC) finalBlockWithMAC(mac, last []byte, complete bool) ([]byte, error) {
	bs := aesblock.BlockSize
	padded := make([]byte, bs)
	copy(padded, last)

	var subkey []byte
	if complete {
		subkey = c.k1.Bytes()
	} else {
		padded[len(last)] = 0x80
		subkey = c.k2.Bytes()
	}

	xorInto(mac, padded)
	xorInto(mac, subkey)

	out := make([]byte, bs)
	if err := c.cipher.EncryptBlock(out, mac); err != nil {
		return nil, err
	}
	return out, nil
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
