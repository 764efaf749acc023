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

// Package s2v implements the string-to-vector pseudorandom function
// from RFC 5297 section 2.4: it folds a vector of associated-data
// strings plus a final payload string into one synthetic IV block
// using CMAC and GF(2^128) doubling.
package s2v

import (
	"github.com/kagesiv/aessiv/internal/aesblock"
	"github.com/kagesiv/aessiv/internal/cmac"
	"github.com/kagesiv/aessiv/internal/wordarray"
)

// phase tracks where in the RFC 5297 string-to-vector protocol an S2V
// value currently is. Once streaming begins, no further associated
// data may be folded in.
type phase int

const (
	phaseAddingAD phase = iota
	phaseStreamingPT
	phaseDone
)

// S2V accumulates a vector of associated-data strings followed by one
// payload string and produces the RFC 5297 synthetic IV. It is
// single-use: once Finalize returns, the value is done and must be
// discarded.
type S2V struct {
	mac   *cmac.CMAC
	d     *wordarray.ByteBlock
	buf   []byte
	phase phase
	empty bool
}

// New derives the S2V state for cipher. Callers drive it through
// UpdateAAD (zero or more times), then Update (zero or more times) to
// stream the payload, then exactly one Finalize call.
func New(cipher *aesblock.Cipher) (*S2V, error) {
	mac, err := cmac.New(cipher, cmac.OMAC1)
	if err != nil {
		return nil, err
	}

	zero := make([]byte, aesblock.BlockSize)
	d, err := mac.Sum(zero)
	if err != nil {
		return nil, err
	}

	return &S2V{mac: mac, d: wordarray.FromBytes(d), empty: true}, nil
}

// UpdateAAD folds one associated-data string into the running
// accumulator. Once the payload has started streaming (Update or
// Finalize has been called), UpdateAAD is a silent no-op: it must not
// corrupt the accumulator or be rejected with an error.
func (s *S2V) UpdateAAD(ad []byte) error {
	if s.phase != phaseAddingAD {
		return nil
	}

	tagged, err := s.mac.Sum(ad)
	if err != nil {
		return err
	}

	s.d = wordarray.Dbl(s.d)
	if err := wordarray.Xor(s.d, wordarray.FromBytes(tagged)); err != nil {
		return err
	}
	s.empty = false
	return nil
}

// Update streams a chunk of the payload string. It may be called any
// number of times before Finalize; it never folds an associated-data
// string. Calling Update ends the AD-adding phase.
func (s *S2V) Update(chunk []byte) error {
	s.phase = phaseStreamingPT
	s.buf = append(s.buf, chunk...)
	return nil
}

// Accumulator returns the current value of the running d accumulator,
// for tests that check intermediate S2V checkpoints. It is read-only:
// the returned bytes are a copy and mutating them has no effect on s.
func (s *S2V) Accumulator() []byte {
	return s.d.Bytes()
}

// Finalize absorbs any remaining payload tail and returns the 16-byte
// synthetic IV. It must be called exactly once.
func (s *S2V) Finalize(tail []byte) ([]byte, error) {
	s.phase = phaseDone
	payload := append(s.buf, tail...)

	if s.empty && len(payload) == 0 {
		return s.mac.Sum(wordarray.One.Bytes())
	}

	var t []byte
	if len(payload) >= aesblock.BlockSize {
		t = wordarray.XorendBytes(wordarray.FromBytes(payload), s.d).Bytes()
	} else {
		s.d = wordarray.Dbl(s.d)
		padded := make([]byte, aesblock.BlockSize)
		copy(padded, payload)
		padded[len(payload)] = 0x80
		paddedBlock := wordarray.FromBytes(padded)
		if err := wordarray.Xor(paddedBlock, s.d); err != nil {
			return nil, err
		}
		t = paddedBlock.Bytes()
	}

	return s.mac.Sum(t)
}

// Add is a convenience alias for UpdateAAD, used by callers (such as
// the root SIV type) that fold a whole AD vector before ever touching
// the payload.
func (s *S2V) Add(ad []byte) error {
	return s.UpdateAAD(ad)
}

// Vector computes S2V over a complete, known-in-advance vector of
// associated-data strings followed by a payload string, matching the
// convenience form most callers need. strings[len(strings)-1] is
// treated as the payload (SP in RFC 5297's notation); all preceding
// entries are associated data.
func Vector(cipher *aesblock.Cipher, strings ...[]byte) ([]byte, error) {
	if len(strings) == 0 {
		return emptyVector(cipher)
	}

	s, err := New(cipher)
	if err != nil {
		return nil, err
	}

	for _, ad := range strings[:len(strings)-1] {
		if err := s.UpdateAAD(ad); err != nil {
			return nil, err
		}
	}

	return s.Finalize(strings[len(strings)-1])
}

// emptyVector handles RFC 5297's degenerate n=0 case: S2V(<>) =
// AES-CMAC(K, 1). It goes through the same New/Finalize path Vector
// uses for any other vector, so the empty-vector special case lives
// in exactly one place.
func emptyVector(cipher *aesblock.Cipher) ([]byte, error) {
	s, err := New(cipher)
	if err != nil {
		return nil, err
	}
	return s.Finalize(nil)
}
