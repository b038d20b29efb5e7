// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffhex_test

import (
	"errors"
	"testing"

	"github.com/chimbosonic/huffhex/huffhex"
	"github.com/chimbosonic/huffhex/huffman"
)

const testMap = `{"101":"00","116":"1","115":"01"}`

func TestEncode(t *testing.T) {
	data, err := huffhex.Encode("test")
	if err != nil {
		t.Fatal(err)
	}
	want := huffhex.Huffdata{Data: "63", Map: `{"101":"00","115":"01","116":"1"}`}
	if data != want {
		t.Fatalf("got %+v, want %+v", data, want)
	}
}

func TestDecode(t *testing.T) {
	text, err := huffhex.Decode(huffhex.Huffdata{Data: "63", Map: testMap})
	if err != nil {
		t.Fatal(err)
	}
	if text != "test" {
		t.Fatalf("got %q, want %q", text, "test")
	}

	text, err = huffhex.Decode(huffhex.Huffdata{
		Data: "b6bcefa0bec4df94d157",
		Map: `{"77":"0110","103":"0111","32":"111","121":"1100","117":"11011","112":"11010",` +
			`"101":"000","110":"0101","116":"101","114":"001","105":"0100","115":"100"}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if text != "My super test string" {
		t.Fatalf("got %q", text)
	}
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"a",
		"this is a test string!",
		"héllo wörld, ünïcödé ✓",
		"line one\nline two\r\n\ttabbed\x00nul",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, text := range texts {
		data, err := huffhex.Encode(text)
		if err != nil {
			t.Errorf("%q: %v", text, err)
			continue
		}
		if len(data.Data)%2 != 0 {
			t.Errorf("%q: odd hex length %d", text, len(data.Data))
		}

		again, err := huffhex.Encode(text)
		if err != nil || again != data {
			t.Errorf("%q: second encoding differs: %+v vs %+v (%v)", text, again, data, err)
		}

		back, err := huffhex.Decode(data)
		if err != nil {
			t.Errorf("%q: decode: %v", text, err)
			continue
		}
		if back != text {
			t.Errorf("got %q back, want %q", back, text)
		}
	}
}

func TestEmpty(t *testing.T) {
	data, err := huffhex.Encode("")
	if err != nil {
		t.Fatal(err)
	}
	if data.Data != "" || data.Map != "{}" {
		t.Fatalf("got %+v", data)
	}

	text, err := huffhex.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Fatalf("got %q", text)
	}
}

func TestEncodeWithStats(t *testing.T) {
	_, stats, err := huffhex.EncodeWithStats("My super test string")
	if err != nil {
		t.Fatal(err)
	}
	want := huffman.Stats{Symbols: 20, Distinct: 12, PayloadBits: 69, PackedOctets: 10, MaxCodeLength: 5}
	if stats != want {
		t.Fatalf("got %+v, want %+v", stats, want)
	}
}

func TestEncodeWithMap(t *testing.T) {
	data, err := huffhex.EncodeWithMap("test", testMap, nil)
	if err != nil {
		t.Fatal(err)
	}
	if data.Data != "63" || data.Map != testMap {
		t.Fatalf("got %+v", data)
	}

	// 'x' has no code and is left out.
	data, err = huffhex.EncodeWithMap("texst", testMap, nil)
	if err != nil {
		t.Fatal(err)
	}
	if data.Data != "63" {
		t.Fatalf("skip policy: got %+v", data)
	}

	_, err = huffhex.EncodeWithMap("texst", testMap, &huffhex.Options{Absent: huffman.FailAbsent})
	if !errors.Is(err, huffman.ErrAbsentSymbol) {
		t.Fatalf("fail policy: got %v", err)
	}

	_, err = huffhex.EncodeWithMap("test", `{"101":"0","116":"01"}`, nil)
	if !errors.Is(err, huffman.ErrInvalidMap) {
		t.Fatalf("non-prefix-free map: got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data huffhex.Huffdata
		want error
	}{
		{"odd hex", huffhex.Huffdata{Data: "630", Map: testMap}, huffman.ErrInvalidTransport},
		{"non-hex", huffhex.Huffdata{Data: "zz", Map: testMap}, huffman.ErrInvalidTransport},
		{"no marker", huffhex.Huffdata{Data: "00", Map: testMap}, huffman.ErrInvalidTransport},
		{"not json", huffhex.Huffdata{Data: "63", Map: "not a map"}, huffman.ErrInvalidMap},
		{"null map", huffhex.Huffdata{Data: "63", Map: "null"}, huffman.ErrInvalidMap},
		{"array map", huffhex.Huffdata{Data: "63", Map: `["00"]`}, huffman.ErrInvalidMap},
		{"key out of range", huffhex.Huffdata{Data: "63", Map: `{"300":"0"}`}, huffman.ErrInvalidMap},
		{"non-numeric key", huffhex.Huffdata{Data: "63", Map: `{"e":"0"}`}, huffman.ErrInvalidMap},
		{"non-binary code", huffhex.Huffdata{Data: "63", Map: `{"101":"0x"}`}, huffman.ErrInvalidMap},
		{"empty code", huffhex.Huffdata{Data: "63", Map: `{"101":""}`}, huffman.ErrInvalidMap},
		{"not prefix-free", huffhex.Huffdata{Data: "63", Map: `{"101":"1","116":"10"}`}, huffman.ErrInvalidMap},
		{"map checked first", huffhex.Huffdata{Data: "zz", Map: "not a map"}, huffman.ErrInvalidMap},
		{"unmatched map", huffhex.Huffdata{Data: "63", Map: `{"97":"000"}`}, huffman.ErrUndecodable},
		{"mismatched map", huffhex.Huffdata{Data: "63", Map: `{"101":"00","116":"10","115":"01"}`}, huffman.ErrUndecodable},
	}

	for _, c := range cases {
		text, err := huffhex.Decode(c.data)
		if !errors.Is(err, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, err, c.want)
		}
		if text != "" {
			t.Errorf("%s: got partial text %q", c.name, text)
		}
	}
}
