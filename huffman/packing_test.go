// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/chimbosonic/huffhex/huffman"
)

func randomBitString(maxLen int) huffman.BitString {
	n := rng.Intn(maxLen + 1)
	text := make([]byte, n)
	for i := range text {
		text[i] = '0' + byte(rng.Intn(2))
	}
	bs, err := huffman.ParseBitString(string(text))
	if err != nil {
		panic(err)
	}
	return bs
}

func TestPadUnpad(t *testing.T) {
	rng = rand.New(rand.NewSource(randSeed))

	for iteration := 0; iteration < 200; iteration++ {
		payload := randomBitString(100)
		packed := huffman.Pad(payload)

		if want := (payload.BitLength + 6) / 7; len(packed) != want {
			t.Fatalf("%v: %d octets, want %d", payload, len(packed), want)
		}
		for i, octet := range packed[:len(packed)-min(len(packed), 1)] {
			if octet&0x80 == 0 {
				t.Fatalf("%v: octet %d (%08b) lacks its marker", payload, i, octet)
			}
		}

		unpadded, err := huffman.Unpad(packed)
		if err != nil {
			t.Fatalf("%v: %v", payload, err)
		}
		if !unpadded.Equal(payload) {
			t.Fatalf("got %v back from %s, want %v", unpadded, showBinaryOctets(packed), payload)
		}
	}
}

func TestPadShortFinalGroup(t *testing.T) {
	cases := []struct {
		payload string
		packed  []byte
	}{
		{"", []byte{}},
		{"0", []byte{0x02}},
		{"1", []byte{0x03}},
		{"001", []byte{0x09}},
		{"100011", []byte{0x63}},
		{"0000000", []byte{0x80}},
		{"11111110", []byte{0xff, 0x02}},
		{"0000000000", []byte{0x80, 0x08}},
	}

	for _, c := range cases {
		payload, err := huffman.ParseBitString(c.payload)
		if err != nil {
			t.Fatal(err)
		}
		packed := huffman.Pad(payload)
		if !bytes.Equal(packed, c.packed) {
			t.Errorf("%q: got %s, want %s", c.payload, showBinaryOctets(packed), showBinaryOctets(c.packed))
			continue
		}

		// Leading zero payload bits of the last group survive the round trip.
		unpadded, err := huffman.Unpad(packed)
		if err != nil {
			t.Errorf("%q: %v", c.payload, err)
			continue
		}
		if unpadded.String() != c.payload {
			t.Errorf("%q: unpadded to %q", c.payload, unpadded.String())
		}
	}
}

func TestUnpadRejects(t *testing.T) {
	cases := []struct {
		name   string
		packed []byte
	}{
		{"zero octet", []byte{0x00}},
		{"zero octet inside", []byte{0x80, 0x00, 0x80}},
		{"short group first", []byte{0x63, 0x80}},
	}

	for _, c := range cases {
		if _, err := huffman.Unpad(c.packed); !errors.Is(err, huffman.ErrInvalidTransport) {
			t.Errorf("%s: got %v, want ErrInvalidTransport", c.name, err)
		}
	}
}

func TestBitStringText(t *testing.T) {
	bs, err := huffman.ParseBitString("1011001110")
	if err != nil {
		t.Fatal(err)
	}
	if bs.BitLength != 10 || !bytes.Equal(bs.Packed, []byte{0xb3, 0x80}) {
		t.Fatalf("got %v / %08b", bs.BitLength, bs.Packed)
	}

	text, err := bs.MarshalText()
	if err != nil || string(text) != "1011001110" {
		t.Fatalf("got %q, %v", text, err)
	}

	var back huffman.BitString
	if err := back.UnmarshalText([]byte("01x")); !errors.Is(err, huffman.ErrBitStringSyntax) {
		t.Fatalf("got %v, want ErrBitStringSyntax", err)
	}
}
