// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"fmt"
)

// groupPayloadBits is the number of payload bits framed by each marker bit.
const groupPayloadBits = 7

// AbsentPolicy says what Pack does with input symbols that have no codeword.
type AbsentPolicy int

const (
	// SkipAbsent leaves such symbols out of the output.
	SkipAbsent AbsentPolicy = iota
	// FailAbsent makes Pack return an error wrapping ErrAbsentSymbol.
	FailAbsent
)

func (policy AbsentPolicy) String() string {
	switch policy {
	case SkipAbsent:
		return "skip"
	case FailAbsent:
		return "fail"
	default:
		return "???"
	}
}

// Concat concatenates the codewords for input in order.
func Concat(input []byte, codes EncodingMap, policy AbsentPolicy) (BitString, error) {
	sink := newBitSink()
	for i, b := range input {
		code, ok := codes[Symbol(b)]
		if !ok {
			if policy == FailAbsent {
				return BitString{}, fmt.Errorf("%w: symbol %d at offset %d", ErrAbsentSymbol, b, i)
			}
			continue
		}
		if err := sink.writeBitString(code); err != nil {
			return BitString{}, err
		}
	}
	return sink.bitString()
}

// Pad frames payload into octets.  Every run of seven payload bits is preceded by a 1 marker bit and the
// eight bits together form one octet.  A final run of k < 7 bits still gets its marker and is stored as
// the (k+1)-bit numeral it forms, so the marker is always the highest set bit of its octet.
func Pad(payload BitString) []byte {
	packed := make([]byte, 0, (payload.BitLength+groupPayloadBits-1)/groupPayloadBits)
	src := newBitSource(payload)
	for !src.empty() {
		bits, n, err := src.readBits(groupPayloadBits)
		if err != nil {
			// The source is an in-memory octet slice sized by BitLength.
			panic("huffman: short read from bit string: " + err.Error())
		}
		packed = append(packed, uint8(1)<<uint(n)|bits)
	}
	return packed
}

// Pack concatenates the codewords for input and frames them with Pad.
func Pack(input []byte, codes EncodingMap, policy AbsentPolicy) ([]byte, error) {
	payload, err := Concat(input, codes, policy)
	if err != nil {
		return nil, err
	}
	return Pad(payload), nil
}

// Stats summarizes one encoding.
type Stats struct {
	Symbols       int
	Distinct      int
	PayloadBits   int
	PackedOctets  int
	MaxCodeLength int
}

// Encoding is everything Encode produces.  Only Packed and Codes are needed to decode.
type Encoding struct {
	Packed []byte
	Codes  EncodingMap
	Stats  Stats
}

// Encode counts symbol frequencies in input, builds the code tree and code table, and packs input with it.
// Empty input gives empty Packed and Codes.
func Encode(input []byte) (*Encoding, error) {
	freqs := CountFrequencies(input)
	root := BuildTree(freqs)
	codes := BuildEncodingMap(root)

	payload, err := Concat(input, codes, FailAbsent)
	if err != nil {
		return nil, err
	}
	packed := Pad(payload)

	stats := Stats{
		Symbols:      len(input),
		Distinct:     len(codes),
		PayloadBits:  payload.BitLength,
		PackedOctets: len(packed),
	}
	for _, code := range codes {
		if code.BitLength > stats.MaxCodeLength {
			stats.MaxCodeLength = code.BitLength
		}
	}
	log.Debugf("encoded %d symbols (%d distinct) into %d payload bits, %d octets",
		stats.Symbols, stats.Distinct, stats.PayloadBits, stats.PackedOctets)

	return &Encoding{packed, codes, stats}, nil
}
