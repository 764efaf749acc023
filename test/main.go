package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kagesiv/aessiv"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

type vector struct {
	name       string
	key        string
	ad         []string
	plaintext  string
	ciphertext string
}

// RFC 5297 Appendix A.1 and A.2.
var vectors = []vector{
	{
		name: "RFC5297_A1",
		key:  "fffefdfcfbfaf9f8f7f6f5f4f3f2f1f0f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff",
		ad: []string{
			"101112131415161718191a1b1c1d1e1f2021222324252627",
		},
		plaintext:  "112233445566778899aabbccddee",
		ciphertext: "85632d07c6e8f37f950acd320a2ecc9340c02b9690c4dc04daef7f6afe5c",
	},
	{
		name: "RFC5297_A2",
		key:  "7f7e7d7c7b7a79787776757473727170404142434445464748494a4b4c4d4e4f",
		ad: []string{
			"00112233445566778899aabbccddeeffdeaddadadeaddadaffeeddccbbaa99887766554433221100",
			"102030405060708090a0",
			"09f911029d74e35bd84156c5635688c0",
		},
		plaintext:  "7468697320697320736f6d6520706c61696e7465787420746f20656e6372797074207573696e67205349562d414553",
		ciphertext: "7bdb6e3b432667eb06f4d14bff2fbd0fcb900f2fddbe404326601965c889bf17dba77ceb094fa663b7a3f748ba8af829ea64ad544a272e9c485b62a3fd5c0d",
	},
}

func runVector(v vector) (bool, string) {
	key := mustHex(v.key)
	plaintext := mustHex(v.plaintext)
	wantCiphertext := mustHex(v.ciphertext)

	ad := make([][]byte, len(v.ad))
	for i, a := range v.ad {
		ad[i] = mustHex(a)
	}

	siv, err := aessiv.New(key)
	if err != nil {
		return false, fmt.Sprintf("New: %v", err)
	}

	ciphertext, err := siv.Encrypt(ad, plaintext)
	if err != nil {
		return false, fmt.Sprintf("Encrypt: %v", err)
	}
	if !bytes.Equal(ciphertext, wantCiphertext) {
		return false, fmt.Sprintf("ciphertext mismatch: got %x want %x", ciphertext, wantCiphertext)
	}

	recovered, err := siv.Decrypt(ad, ciphertext)
	if err != nil {
		return false, fmt.Sprintf("Decrypt: %v", err)
	}
	if !bytes.Equal(recovered, plaintext) {
		return false, fmt.Sprintf("plaintext mismatch: got %x want %x", recovered, plaintext)
	}

	return true, "ok"
}

func main() {
	fmt.Printf("Status\tVector\tDescription\n")

	allPassed := true
	for _, v := range vectors {
		ok, desc := runVector(v)
		if !ok {
			allPassed = false
		}
		fmt.Printf("%v\t%v\t%v\n", map[bool]string{true: "Passed", false: "Failed"}[ok], v.name, desc)
	}

	if !allPassed {
		os.Exit(1)
	}
}
