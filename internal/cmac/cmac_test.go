package cmac

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/kagesiv/aessiv/internal/aesblock"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

const (
	block1 = "6bc1bee22e409f96e93d7e117393172a"
	block2 = "ae2d8a571e03ac9c9eb76fac45af8e51"
	block3 = "30c81c46a35ce411e5fbc1191a0a52ef"
	block4 = "f69f2445df4f9b17ad2b417be66c3710"
)

// NIST SP 800-38B Appendix D.2, AES-128 CMAC known-answer vectors.
func TestSumAES128KAT(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	cipher, err := aesblock.NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	mac, err := New(cipher, OMAC1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"empty", "", "bb1d6929e95937287fa37d129b756746"},
		{"oneBlock", block1, "070a16b46b4d4144f79bdd9dd04a287c"},
		{"twoAndAHalfBlocks", block1 + block2 + "30c81c46a35ce411", "dfa66747de9ae63030ca32611497c827"},
		{"fourBlocks", block1 + block2 + block3 + block4, "51f0bebf7e3b9d92fc49741779363cfe"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			message := mustHex(t, c.message)
			got, err := mac.Sum(message)
			if err != nil {
				t.Fatalf("Sum: %v", err)
			}
			want := mustHex(t, c.want)
			if !bytes.Equal(got, want) {
				t.Fatalf("mac mismatch: got %x want %x", got, want)
			}
		})
	}
}

func TestSumDeterministic(t *testing.T) {
	cipher, err := aesblock.NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	mac, err := New(cipher, OMAC1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	msg := []byte("repeat this message across calls")
	first, err := mac.Sum(msg)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	second, err := mac.Sum(msg)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("non-deterministic MAC: %x vs %x", first, second)
	}
}

// NIST SP 800-38B Appendix D.2, driven through the incremental
// Update/Finalize pair five bytes at a time instead of one-shot Sum.
func TestUpdateFinalizeAES128KAT(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	cipher, err := aesblock.NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"empty", "", "bb1d6929e95937287fa37d129b756746"},
		{"oneBlock", block1, "070a16b46b4d4144f79bdd9dd04a287c"},
		{"twoAndAHalfBlocks", block1 + block2 + "30c81c46a35ce411", "dfa66747de9ae63030ca32611497c827"},
		{"fourBlocks", block1 + block2 + block3 + block4, "51f0bebf7e3b9d92fc49741779363cfe"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mac, err := New(cipher, OMAC1)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			message := mustHex(t, c.message)
			for len(message) > 0 {
				n := 5
				if n > len(message) {
					n = len(message)
				}
				if err := mac.Update(message[:n]); err != nil {
					t.Fatalf("Update: %v", err)
				}
				message = message[n:]
			}

			got, err := mac.Finalize(nil)
			if err != nil {
				t.Fatalf("Finalize: %v", err)
			}
			want := mustHex(t, c.want)
			if !bytes.Equal(got, want) {
				t.Fatalf("mac mismatch: got %x want %x", got, want)
			}
		})
	}
}

// Whether a message arrives as one Sum call or is trickled in through
// Update and closed out by Finalize must not change the tag.
func TestUpdateFinalizeMatchesSum(t *testing.T) {
	cipher, err := aesblock.NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	msg := mustHex(t, block1+block2+block3)
	oneShot, err := New(cipher, OMAC1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want, err := oneShot.Sum(msg)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}

	streamed, err := New(cipher, OMAC1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := streamed.Update(msg[:16]); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := streamed.Update(msg[16:40]); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := streamed.Finalize(msg[40:])
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("streamed mac mismatch: got %x want %x", got, want)
	}
}

// Sum must remain usable for independent messages on the same CMAC
// instance, resetting the streaming state each call.
func TestSumReusableAcrossMessages(t *testing.T) {
	cipher, err := aesblock.NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	mac, err := New(cipher, OMAC1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a, err := mac.Sum([]byte("first message"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	b, err := mac.Sum([]byte("second, different message"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	c, err := mac.Sum([]byte("first message"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}

	if bytes.Equal(a, b) {
		t.Fatalf("different messages produced the same tag")
	}
	if !bytes.Equal(a, c) {
		t.Fatalf("same message produced different tags across reuse: %x vs %x", a, c)
	}
}

func TestOMAC1AndOMAC2Differ(t *testing.T) {
	cipher, err := aesblock.NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	omac1, err := New(cipher, OMAC1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	omac2, err := New(cipher, OMAC2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	msg := mustHex(t, block1)[:10] // incomplete block forces the K2 path
	a, err := omac1.Sum(msg)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	b, err := omac2.Sum(msg)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("expected OMAC1 and OMAC2 to diverge on a message requiring K2")
	}
}
